package core

import (
	"context"
	"fmt"

	"timekeeper.app/timekeeper/attendance/model"
)

type OfficeService struct {
	store RecordStore
}

func NewOfficeService(store RecordStore) *OfficeService {
	return &OfficeService{store: store}
}

// CreateOffice validates and stores a new office location.
func (s *OfficeService) CreateOffice(ctx context.Context, office *model.OfficeLocation) error {
	if err := office.Validate(); err != nil {
		return newError(ErrPolicyViolation, err.Error())
	}
	if err := s.store.SaveOffice(ctx, office); err != nil {
		return fmt.Errorf("failed to save office: %w", err)
	}
	return nil
}

func (s *OfficeService) ListOffices(ctx context.Context) ([]model.OfficeLocation, error) {
	offices, err := s.store.AllOffices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load offices: %w", err)
	}
	return offices, nil
}
