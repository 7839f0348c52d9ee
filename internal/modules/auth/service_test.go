package auth

import (
	"context"
	"fmt"
	"testing"

	"gearshare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byID: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(userID int64) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokenIssuer{})
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{
		Email:    "  Aida@Example.com ",
		Password: "secret-pass",
		Name:     "Aida",
		City:     "Almaty",
	})
	require.NoError(t, err)
	assert.Equal(t, "aida@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
	assert.NotEqual(t, "secret-pass", res.User.PasswordHash)

	login, err := svc.Login(ctx, LoginRequest{Email: "aida@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokenIssuer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "aida@example.com", Password: "secret-pass", Name: "Aida"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "AIDA@example.com", Password: "other-pass", Name: "Imposter"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokenIssuer{})
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, RegisterRequest{Email: "aida@example.com", Password: "secret-pass", Name: "Aida"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "aida@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
