package core

import (
	"context"
	"fmt"
	"time"

	"timekeeper.app/timekeeper/attendance/model"
)

// SessionInvalidation tells the caller that tokens of the user issued before IssuedBefore are no longer valid.
type SessionInvalidation struct {
	UserID       int32
	Email        string
	IssuedBefore time.Time
}

type UserService struct {
	store RecordStore
}

func NewUserService(store RecordStore) *UserService {
	return &UserService{store: store}
}

// UpdateUserRole changes the role and moves the user's token watermark to now.
func (s *UserService) UpdateUserRole(ctx context.Context, userID int32, role model.Role, now time.Time) (*model.User, *SessionInvalidation, error) {
	if !role.Valid() {
		return nil, nil, newError(ErrPolicyViolation, fmt.Sprintf("unknown role %q", role))
	}

	var user *model.User
	err := s.store.Transaction(ctx, func(tx RecordStore) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to lock user %d: %w", userID, err)
		}
		u, err := tx.FindUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to find user %d: %w", userID, err)
		}
		if u == nil {
			return newError(ErrNotFound, "user not found")
		}
		u.Role = role
		u.TokensValidAfter = &now
		if err := tx.SaveUser(ctx, u); err != nil {
			return fmt.Errorf("failed to save user %d: %w", userID, err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	fmt.Printf("[INFO] user %s role changed to %s, sessions issued before %s revoked\n", user.Email, role, now.Format(time.RFC3339))
	return user, &SessionInvalidation{UserID: user.ID, Email: user.Email, IssuedBefore: now}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	return user, nil
}
