package account_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/storage/database/inmem"
)

func setup(t *testing.T) *account.Service {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return account.NewService(inmemdb.NewAccountRepository(db), nil)
}

func registerUser(t *testing.T, svc *account.Service, name, email, class string) account.User {
	usr, err := svc.RegisterUser(context.Background(), account.NewUser{
		Name:     name,
		Email:    email,
		Class:    class,
		Password: "Secret123",
	})
	require.NoError(t, err)
	return usr
}

func TestService_RegisterUser(t *testing.T) {
	svc := setup(t)

	usr := registerUser(t, svc, "Amina Yusuf", "amina@test.com", "8")
	assert.Equal(t, int64(1), usr.ID)
	assert.Equal(t, "user1", usr.UserID)
	assert.NotEmpty(t, usr.PasswordHash)

	usr2 := registerUser(t, svc, "Joseph Banda", "joe@test.com", "9")
	assert.Equal(t, "user2", usr2.UserID)
}

func TestService_emailUniqueAcrossVariants(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	registerUser(t, svc, "Amina Yusuf", "taken@test.com", "8")

	_, err := svc.RegisterUser(ctx, account.NewUser{Name: "Dup", Email: "taken@test.com", Class: "9", Password: "Secret123"})
	assert.Equal(t, account.ErrEmailExists, errors.Cause(err))

	_, err = svc.RegisterAdmin(ctx, account.NewAdmin{Email: "taken@test.com", Password: "Secret123"})
	assert.Equal(t, account.ErrEmailExists, errors.Cause(err))

	_, err = svc.RegisterSalesMan(ctx, account.NewSalesMan{Name: "Dup", Email: "taken@test.com", Password: "Secret123"})
	assert.Equal(t, account.ErrEmailExists, errors.Cause(err))

	_, err = svc.RegisterSchool(ctx, account.NewSchool{
		YourName: "Dup", SchoolName: "Dup High", SchoolEmail: "taken@test.com", Password: "Secret123",
	})
	assert.Equal(t, account.ErrEmailExists, errors.Cause(err))

	_, err = svc.RegisterCoordinator(ctx, account.NewCoordinator{FullName: "Dup", Email: "taken@test.com"})
	assert.Equal(t, account.ErrEmailExists, errors.Cause(err))
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	registerUser(t, svc, "Amina Yusuf", "amina@test.com", "8")
	_, err := svc.RegisterAdmin(ctx, account.NewAdmin{Email: "admin@test.com", Password: "Secret123"})
	require.NoError(t, err)

	t.Run("user login", func(t *testing.T) {
		auth, err := svc.Authenticate(ctx, "amina@test.com", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, account.KindUser, auth.Role)
		usr, ok := auth.Data.(account.User)
		require.True(t, ok)
		assert.Equal(t, "amina@test.com", usr.Email)
	})

	t.Run("admin login", func(t *testing.T) {
		auth, err := svc.Authenticate(ctx, "admin@test.com", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, account.KindAdmin, auth.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "amina@test.com", "nope")
		assert.Equal(t, account.ErrInvalidCredentials, errors.Cause(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost@test.com", "Secret123")
		assert.Equal(t, account.ErrInvalidCredentials, errors.Cause(err))
	})
}

func TestService_salesManStatus(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	sm, err := svc.RegisterSalesMan(ctx, account.NewSalesMan{Name: "Kwame", Email: "kwame@test.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, account.StatusActive, sm.Status)

	// active salesman can log in
	auth, err := svc.Authenticate(ctx, "kwame@test.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, account.KindSalesMan, auth.Role)

	// deactivated salesman is locked out
	sm, err = svc.SetSalesManStatus(ctx, sm.ID, account.SalesManStatusUpdate{Status: account.StatusInactive})
	require.NoError(t, err)
	assert.Equal(t, account.StatusInactive, sm.Status)

	_, err = svc.Authenticate(ctx, "kwame@test.com", "Secret123")
	assert.Equal(t, account.ErrAccountInactive, errors.Cause(err))
}

func TestService_schoolLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	sch, err := svc.RegisterSchool(ctx, account.NewSchool{
		YourName:    "Head Teacher",
		SchoolName:  "Hilltop High",
		SchoolEmail: "hilltop@test.com",
		Password:    "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, account.StatusInactive, sch.Status) // pending approval

	active, err := svc.QueryActiveSchools(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	sch, err = svc.ToggleSchoolStatus(ctx, sch.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusActive, sch.Status)

	active, err = svc.QueryActiveSchools(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	// toggle flips back
	sch, err = svc.ToggleSchoolStatus(ctx, sch.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusInactive, sch.Status)

	// deleting frees the email for reuse
	require.NoError(t, svc.DeleteSchool(ctx, sch.RegistrationID))
	_, err = svc.RegisterSchool(ctx, account.NewSchool{
		YourName:    "Head Teacher",
		SchoolName:  "Hilltop High",
		SchoolEmail: "hilltop@test.com",
		Password:    "Secret123",
	})
	assert.NoError(t, err)
}
