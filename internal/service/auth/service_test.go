package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/auth"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/jwt"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type fakeSettings struct {
	settings.SettingsService
	snap settings.Settings
}

func (f fakeSettings) Load(ctx context.Context) (settings.Settings, error) {
	return f.snap, nil
}

func newService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	snap := settings.Defaults()
	snap.Username = "admin"
	snap.PasswordHash = string(hash)

	jwtService := jwt.NewJWTService("test-secret", "15m")
	return NewAuthService(fakeSettings{snap: snap}, jwtService, nil), jwtService
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtService := newService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: "admin", Password: "secret"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.InDelta(t, 900, resp.ExpiresIn, 5)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", token.Subject())
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newService(t)

	cases := []auth.LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "secret"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestAuthService_Logout(t *testing.T) {
	svc, jwtService := newService(t)
	resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	// second logout is a no-op
	assert.NoError(t, svc.Logout(context.Background(), resp.AccessToken))
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	svc, _ := newService(t)

	assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-token"), auth.ErrInvalidToken)
}
