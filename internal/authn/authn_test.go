package authn

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/mvoronin/authgate/internal/logging"
	"github.com/mvoronin/authgate/internal/models"
	"github.com/mvoronin/authgate/internal/shadow"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeVerifier struct {
	id  uint32
	err error
}

func (f *fakeVerifier) VerifyLogin(ctx context.Context, token string) (uint32, error) {
	return f.id, f.err
}

type fakeRepo struct {
	shadow.Repository

	users       map[uint32]*models.ShadowUser
	createCalls int
}

func (r *fakeRepo) Find(ctx context.Context, c shadow.Criteria) (*models.ShadowUser, error) {
	if u, ok := r.users[c.ID]; ok {
		return u, nil
	}
	return nil, shadow.ErrNotFound
}

func (r *fakeRepo) CreateMinimal(ctx context.Context, id uint32) error {
	r.createCalls++
	return nil
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context, u *models.ShadowUser) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	u.Username = "refreshed"
	return nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticate_KnownUser(t *testing.T) {
	repo := &fakeRepo{users: map[uint32]*models.ShadowUser{7: {ID: 7, Username: "alice"}}}
	refresher := &fakeRefresher{}
	a := NewAuthenticator(&fakeVerifier{id: 7}, repo, refresher, testLogger())

	u, err := a.Authenticate(context.Background(), "token-abc")
	require.NoError(t, err)
	require.Equal(t, uint32(7), u.ID)
	require.Equal(t, "refreshed", u.Username)
	require.Zero(t, repo.createCalls)
	require.Equal(t, 1, refresher.calls)
}

func TestAuthenticate_FirstSightCreatesShadowRow(t *testing.T) {
	repo := &fakeRepo{users: map[uint32]*models.ShadowUser{}}
	a := NewAuthenticator(&fakeVerifier{id: 42}, repo, &fakeRefresher{}, testLogger())

	u, err := a.Authenticate(context.Background(), "token-abc")
	require.NoError(t, err)
	require.Equal(t, uint32(42), u.ID)
	require.Equal(t, 1, repo.createCalls)
}

func TestAuthenticate_VerifierFailure(t *testing.T) {
	repo := &fakeRepo{users: map[uint32]*models.ShadowUser{}}
	a := NewAuthenticator(&fakeVerifier{err: errors.New("token expired")}, repo, &fakeRefresher{}, testLogger())

	_, err := a.Authenticate(context.Background(), "stale")
	require.Error(t, err)
	require.Zero(t, repo.createCalls)
}

func TestAuthenticate_RefreshFailureDoesNotBlock(t *testing.T) {
	repo := &fakeRepo{users: map[uint32]*models.ShadowUser{7: {ID: 7, Username: "alice"}}}
	refresher := &fakeRefresher{err: errors.New("authority unreachable")}
	a := NewAuthenticator(&fakeVerifier{id: 7}, repo, refresher, testLogger())

	u, err := a.Authenticate(context.Background(), "token-abc")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
}

func TestAuthenticateLocal(t *testing.T) {
	repo := &fakeRepo{users: map[uint32]*models.ShadowUser{9: {ID: 9}}}
	a := NewAuthenticator(&fakeVerifier{}, repo, &fakeRefresher{}, testLogger())

	token := signToken(t, "shared-secret", jwt.MapClaims{
		"user_id": 9,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	u, err := a.AuthenticateLocal(context.Background(), token, "shared-secret")
	require.NoError(t, err)
	require.Equal(t, uint32(9), u.ID)
}

func TestTokenUserID(t *testing.T) {
	token := signToken(t, "s", jwt.MapClaims{"user_id": 123})

	id, err := TokenUserID(token, "s")
	require.NoError(t, err)
	require.Equal(t, uint32(123), id)
}

func TestTokenUserID_WrongSecret(t *testing.T) {
	token := signToken(t, "right", jwt.MapClaims{"user_id": 1})

	_, err := TokenUserID(token, "wrong")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenUserID_MissingClaim(t *testing.T) {
	token := signToken(t, "s", jwt.MapClaims{"sub": "alice"})

	_, err := TokenUserID(token, "s")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenUserID_ExpiredToken(t *testing.T) {
	token := signToken(t, "s", jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, err := TokenUserID(token, "s")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenUserID_Garbage(t *testing.T) {
	_, err := TokenUserID("not-a-token", "s")
	require.ErrorIs(t, err, ErrInvalidToken)
}
