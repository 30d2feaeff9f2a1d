package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/entities"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

func TestIdentityService_RegisterUser_CreatesApprovedUser(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)

	result, err := identity.Register(context.Background(), services.RegisterInput{
		Email:    "new@example.com",
		Password: "secret",
	})

	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Nil(t, result.Application)
	assert.Equal(t, entities.RoleUser, result.User.Role)
	assert.True(t, result.User.IsApproved)

	_, user, err := identity.Login(context.Background(), "new@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)
}

func TestIdentityService_RegisterDuplicateEmail(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)

	_, err := identity.Register(context.Background(), services.RegisterInput{
		Email:    "user@example.com",
		Password: "whatever",
	})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDuplicateEmail))
}

func TestIdentityService_RegisterManager_QueuesApplicationOnly(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)

	result, err := identity.Register(context.Background(), services.RegisterInput{
		Email:       "boss@newcorp.com",
		Password:    "secret",
		Role:        entities.RoleManager,
		ManagerName: "Jane Roe",
		CompanyName: "New Corp",
	})

	require.NoError(t, err)
	assert.Nil(t, result.User, "manager registration must not create a user row")
	require.NotNil(t, result.Application)
	assert.Equal(t, entities.ApplicationPending, result.Application.Status)

	// No session was issued and login reports the pending state.
	_, _, err = identity.Login(context.Background(), "boss@newcorp.com", "secret")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePendingApproval))
}

func TestIdentityService_Login(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)
	ctx := context.Background()

	t.Run("invalid credentials", func(t *testing.T) {
		_, _, err := identity.Login(ctx, "user@example.com", "wrong")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidCredentials))

		_, _, err = identity.Login(ctx, "nobody@example.com", "user123")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidCredentials))
	})

	t.Run("unapproved manager", func(t *testing.T) {
		_, _, err := identity.Login(ctx, "manager1@company.com", "manager123")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePendingApproval))
	})

	t.Run("success issues session", func(t *testing.T) {
		session, user, err := identity.Login(ctx, "user@example.com", "user123")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "user_1", user.ID)

		resolved := identity.CurrentUser(session.Token)
		require.NotNil(t, resolved)
		assert.Equal(t, "user_1", resolved.ID)
	})
}

func TestIdentityService_CurrentUser_NoSessionOutcomes(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)

	assert.Nil(t, identity.CurrentUser(""))
	assert.Nil(t, identity.CurrentUser("unknown-token"))
}

func TestIdentityService_Logout_IsIdempotent(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)
	ctx := context.Background()

	session, _, err := identity.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)

	require.NoError(t, identity.Logout(ctx, session.Token))
	assert.Nil(t, identity.CurrentUser(session.Token))

	// Second logout with the same token is a no-op.
	require.NoError(t, identity.Logout(ctx, session.Token))
}

func TestIdentityService_ApproveManager(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)
	ctx := context.Background()

	apps := identity.ManagerApplications()
	require.Len(t, apps, 1)

	user, company, err := identity.ApproveManager(ctx, apps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleManager, user.Role)
	assert.True(t, user.IsApproved)
	assert.Equal(t, company.ID, user.CompanyID)
	assert.Equal(t, "Tech Corp", company.Name)
	assert.Equal(t, user.ID, company.ManagerID)

	// The application left the queue and the new manager can log in.
	assert.Empty(t, identity.ManagerApplications())
	_, logged, err := identity.Login(ctx, "pending@manager.com", "manager123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestIdentityService_RejectManager(t *testing.T) {
	st, _, _ := newSeededStore(t)
	identity := services.NewIdentityService(st)
	ctx := context.Background()

	require.NoError(t, identity.RejectManager(ctx, "mapp_1"))
	assert.Empty(t, identity.ManagerApplications())

	err := identity.RejectManager(ctx, "mapp_1")
	assert.True(t, apperrors.IsNotFound(err))

	_, _, err = identity.ApproveManager(ctx, "mapp_1")
	assert.True(t, apperrors.IsNotFound(err))
}
