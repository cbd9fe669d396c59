package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
)

func TestUpdateUserRoleReturnsInvalidation(t *testing.T) {
	f := newFixture(t, nil)
	svc := core.NewUserService(f.store)
	now := at(5, 10, 0)

	user, invalidation, err := svc.UpdateUserRole(context.Background(), f.user.ID, model.RoleAdmin, now)
	require.NoError(t, err)

	assert.Equal(t, model.RoleAdmin, user.Role)
	require.NotNil(t, invalidation)
	assert.Equal(t, f.user.ID, invalidation.UserID)
	assert.Equal(t, f.user.Email, invalidation.Email)
	assert.Equal(t, now, invalidation.IssuedBefore)

	stored, err := f.store.FindUserByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, stored.Role)
	assert.Equal(t, now, *stored.TokensValidAfter)

	// other users keep their sessions
	other, err := f.store.FindUserByID(context.Background(), f.admin.ID)
	require.NoError(t, err)
	assert.Nil(t, other.TokensValidAfter)
}

func TestUpdateUserRoleFailures(t *testing.T) {
	f := newFixture(t, nil)
	svc := core.NewUserService(f.store)

	_, _, err := svc.UpdateUserRole(context.Background(), 999, model.RoleAdmin, at(5, 10, 0))
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, _, err = svc.UpdateUserRole(context.Background(), f.user.ID, model.Role("ROOT"), at(5, 10, 0))
	assert.ErrorIs(t, err, core.ErrPolicyViolation)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, model.RoleEmployee, users[0].Role)
}

func TestCreateOffice(t *testing.T) {
	f := newFixture(t, nil)
	svc := core.NewOfficeService(f.store)

	err := svc.CreateOffice(context.Background(), &model.OfficeLocation{Name: "Broken", AllowedRadius: 0, IsActive: true})
	assert.ErrorIs(t, err, core.ErrPolicyViolation)

	office := &model.OfficeLocation{Name: "Depot", Latitude: -27.5, Longitude: 153.0, AllowedRadius: 250, IsActive: true}
	require.NoError(t, svc.CreateOffice(context.Background(), office))
	assert.NotZero(t, office.ID)

	offices, err := svc.ListOffices(context.Background())
	require.NoError(t, err)
	assert.Len(t, offices, 2)
}
