package user_services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iitigpt/go-campusgpt/internal/auth"
	"github.com/iitigpt/go-campusgpt/internal/domain"
	"github.com/iitigpt/go-campusgpt/internal/repository/user"
)

// fakeUserRepo is an in-memory UserRepository keyed by normalized email.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	u.Email = domain.NormalizeEmail(u.Email)
	if _, exists := f.users[u.Email]; exists {
		return nil, user.ErrDuplicateEmail
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(repo, "test-secret", nopLogger{}), repo
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, regToken, err := svc.Register(ctx, "Alice@X.edu", "pw123", "Alice")
	require.NoError(t, err)
	require.NotZero(t, registered.ID)
	require.Equal(t, "alice@x.edu", registered.Email)
	require.NotEmpty(t, regToken)
	require.NotEqual(t, "pw123", registered.Password, "password must not be stored in plaintext")

	// The issued token verifies and carries the subject.
	claims, err := svc.ValidateToken(regToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.UserID)
	require.Equal(t, "alice@x.edu", claims.Email)

	// Same credentials log in, with any casing.
	loggedIn, loginToken, err := svc.Login(ctx, "alice@X.EDU", "pw123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, loggedIn.ID)
	require.NotEmpty(t, loginToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "bob@x.edu", "pw", "Bob")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "BOB@x.edu", "other", "Bobby")
	require.ErrorIs(t, err, user.ErrDuplicateEmail)
	require.Len(t, repo.users, 1, "no second record may be created")
}

func TestLogin_SingleUndifferentiatedError(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "carol@x.edu", "right-password", "Carol")
	require.NoError(t, err)

	// Unknown email and wrong password fail identically.
	_, _, unknownErr := svc.Login(ctx, "nobody@x.edu", "whatever")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)

	_, _, wrongErr := svc.Login(ctx, "carol@x.edu", "wrong-password")
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)

	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestValidateToken_Rejections(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.ValidateToken("")
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.ValidateToken("garbage")
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	// Token signed with a different key.
	foreign, err := auth.GenerateToken(1, "x@x.edu", []byte("other-secret"), auth.TokenValidity)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "not-an-email", "pw", "X")
	require.Error(t, err)
	require.False(t, errors.Is(err, user.ErrDuplicateEmail))

	_, _, err = svc.Register(ctx, "ok@x.edu", "", "X")
	require.Error(t, err)
}
