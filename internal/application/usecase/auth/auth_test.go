package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/infra/db/dbtest"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence"
)

type plainPasswords struct{}

func (plainPasswords) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

func (plainPasswords) VerifyPassword(hashed, password string) error {
	if hashed != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

// fakeTokens issues opaque tokens that embed the user id.
type fakeTokens struct {
	revoked map[string]bool
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{revoked: make(map[string]bool)}
}

func (f *fakeTokens) GenerateTokenPair(_ context.Context, principal entity.Principal) (*adapter.TokenPair, error) {
	suffix := uuid.NewString()
	return &adapter.TokenPair{
		AccessToken:  "access|" + principal.UserID.String() + "|" + suffix,
		RefreshToken: "refresh|" + principal.UserID.String() + "|" + suffix,
	}, nil
}

func (f *fakeTokens) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not used")
}

func (f *fakeTokens) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 || parts[0] != "refresh" || f.revoked[token] {
		return nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, err
	}
	return &adapter.TokenClaims{TokenID: parts[2], UserID: userID}, nil
}

func (f *fakeTokens) InvalidateRefreshToken(ctx context.Context, token string) error {
	if _, err := f.ValidateRefreshToken(ctx, token); err != nil {
		return err
	}
	f.revoked[token] = true
	return nil
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	users := persistence.NewUserRepository(dbtest.New(t))
	billing := adapter.NewMockBillingProvider(ctrl)
	uc := NewRegisterUserUseCase(users, plainPasswords{}, billing)

	t.Run("registers and attaches a billing customer", func(t *testing.T) {
		billing.EXPECT().
			CreateCustomer(gomock.Any(), "ana@example.com", "ana", gomock.Any()).
			Return("cus_123", nil)

		out, err := uc.Execute(ctx, RegisterUserInput{Username: " ana ", Email: "Ana@Example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, "ana", out.User.Username)
		assert.Equal(t, "hashed:s3cret-pass", out.User.PasswordHash)

		stored, err := users.FindByID(ctx, out.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "cus_123", stored.StripeCustomerID)
	})

	t.Run("billing failure does not block registration", func(t *testing.T) {
		billing.EXPECT().
			CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("stripe down"))

		out, err := uc.Execute(ctx, RegisterUserInput{Username: "bob", Email: "bob@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Empty(t, out.User.StripeCustomerID)
	})

	tests := []struct {
		name  string
		input RegisterUserInput
		want  error
	}{
		{"duplicate email", RegisterUserInput{Username: "ana2", Email: "ana@example.com", Password: "s3cret-pass"}, domainerror.ErrEmailAlreadyExists},
		{"duplicate username", RegisterUserInput{Username: "ana", Email: "other@example.com", Password: "s3cret-pass"}, domainerror.ErrUsernameAlreadyExists},
		{"invalid email", RegisterUserInput{Username: "carl", Email: "not-an-email", Password: "s3cret-pass"}, domainerror.ErrInvalidEmail},
		{"invalid username", RegisterUserInput{Username: "c", Email: "carl@example.com", Password: "s3cret-pass"}, domainerror.ErrInvalidUsername},
		{"weak password", RegisterUserInput{Username: "carl", Email: "carl@example.com", Password: "short"}, domainerror.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
		})
	}

	t.Run("missing fields", func(t *testing.T) {
		_, err := uc.Execute(ctx, RegisterUserInput{Email: "x@example.com"})
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})
}

func TestLoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	users := persistence.NewUserRepository(dbtest.New(t))
	tokens := newFakeTokens()

	_, err := NewRegisterUserUseCase(users, plainPasswords{}, nil).
		Execute(ctx, RegisterUserInput{Username: "ana", Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	login := NewLoginUserUseCase(users, plainPasswords{}, tokens)

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, errPassword := login.Execute(ctx, LoginUserInput{Email: "ana@example.com", Password: "nope"})
		_, errEmail := login.Execute(ctx, LoginUserInput{Email: "ghost@example.com", Password: "s3cret-pass"})
		assert.Equal(t, domainerror.KindUnauthorized, domainerror.KindOf(errPassword))
		assert.Equal(t, errPassword.Error(), errEmail.Error())
	})

	out, err := login.Execute(ctx, LoginUserInput{Email: " ANA@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	refresh := NewRefreshTokenUseCase(users, tokens)
	rotated, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: out.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, out.RefreshToken, rotated.RefreshToken)

	_, err = refresh.Execute(ctx, RefreshTokenInput{RefreshToken: out.RefreshToken})
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken, "rotated token must be revoked")

	_, err = NewLogoutUserUseCase(tokens).Execute(ctx, LogoutUserInput{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)

	_, err = refresh.Execute(ctx, RefreshTokenInput{RefreshToken: rotated.RefreshToken})
	assert.Equal(t, domainerror.KindUnauthorized, domainerror.KindOf(err))
}
