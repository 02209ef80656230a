package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func validSignup() SignupInput {
	return SignupInput{
		Username: "new_writer",
		Email:    "writer@example.com",
		Password: "Str0ng!Password",
	}
}

func TestSignup_Valid(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	var created *models.User
	users.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 8
		created = u
		return nil
	}
	svc := NewUserService(users)

	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.Equal(t, created, user)
	assert.NotEqual(t, "Str0ng!Password", user.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Str0ng!Password")))
}

func TestSignup_CollectsAllFieldErrors(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "x",
		Email:    "not-an-email",
		Password: "weak",
	})
	assertKind(t, err, models.KindValidation)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	fields := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"username", "email", "password"}, fields)
}

func TestSignup_DuplicateIdentity(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.createFn = func(_ context.Context, _ *models.User) error {
		return repository.ErrDuplicate
	}
	svc := NewUserService(users)

	_, err := svc.Signup(context.Background(), validSignup())
	assertKind(t, err, models.KindConflict)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Str0ng!Password"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &models.User{ID: 8, Username: "new_writer", Email: "writer@example.com", Password: string(hashed)}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return account, nil
		}
		svc := NewUserService(users)

		user, err := svc.Login(context.Background(), LoginInput{Email: "writer@example.com", Password: "Str0ng!Password"})
		require.NoError(t, err)
		assert.Equal(t, uint(8), user.ID)
	})

	// Both failure modes produce byte-identical errors so the endpoint
	// cannot be used to enumerate registered emails.
	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewUserService(users)

		_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "Str0ng!Password"})
		assertKind(t, err, models.KindUnauthenticated)
		assert.Equal(t, "Invalid email or password", err.Error())
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return account, nil
		}
		svc := NewUserService(users)

		_, err := svc.Login(context.Background(), LoginInput{Email: "writer@example.com", Password: "wrong"})
		assertKind(t, err, models.KindUnauthenticated)
		assert.Equal(t, "Invalid email or password", err.Error())
	})
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())

	_, err := svc.GetUserByUsername(context.Background(), "ghost")
	assertKind(t, err, models.KindNotFound)
	assert.Equal(t, "User not found", err.Error())
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("updates username and bio", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		var saved *models.User
		users.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(users)

		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: "renamed_user", Bio: "Writes about Go."})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "renamed_user", saved.Username)
		assert.Equal(t, "Writes about Go.", saved.Bio)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())

		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: "!!"})
		assertKind(t, err, models.KindValidation)
	})
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 1 {
			return &models.User{ID: 1, IsAdmin: true}, nil
		}
		if id == 2 {
			return &models.User{ID: 2}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewUserService(users)

	admin, err := svc.IsAdmin(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = svc.IsAdmin(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, admin)

	admin, err = svc.IsAdmin(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, admin)
}
