// Package authn authenticates bearer tokens against the identity
// authority and resolves them to local shadow users. Binding into a
// particular request pipeline is the embedding service's concern.
package authn

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mvoronin/authgate/internal/logging"
	"github.com/mvoronin/authgate/internal/models"
	"github.com/mvoronin/authgate/internal/shadow"
)

// ErrInvalidToken is returned by the local decode path when the token is
// malformed, expired, or carries no user id.
var ErrInvalidToken = errors.New("invalid token")

// LoginVerifier is the slice of the authority client authn needs.
// *authority.Client satisfies it.
type LoginVerifier interface {
	VerifyLogin(ctx context.Context, token string) (uint32, error)
}

// Refresher refreshes a shadow user from the authority. *shadow.Reconciler
// satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, u *models.ShadowUser) error
}

// Authenticator resolves bearer tokens to shadow users. Token validity is
// decided by the authority; the shadow row is created on first sight of a
// valid user id.
type Authenticator struct {
	verifier  LoginVerifier
	repo      shadow.Repository
	refresher Refresher
	log       logging.Logger
}

func NewAuthenticator(verifier LoginVerifier, repo shadow.Repository, refresher Refresher, log logging.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, repo: repo, refresher: refresher, log: log}
}

// Authenticate verifies token with the authority and returns the matching
// shadow user, creating the row if this id has never been seen locally.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*models.ShadowUser, error) {
	id, err := a.verifier.VerifyLogin(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	return a.resolve(ctx, id)
}

// AuthenticateLocal decodes the token locally with the shared HMAC secret
// instead of a remote round trip, then resolves the embedded user id. Only
// usable when the deployment shares the authority's signing secret.
func (a *Authenticator) AuthenticateLocal(ctx context.Context, token, secret string) (*models.ShadowUser, error) {
	id, err := TokenUserID(token, secret)
	if err != nil {
		return nil, err
	}
	return a.resolve(ctx, id)
}

func (a *Authenticator) resolve(ctx context.Context, id uint32) (*models.ShadowUser, error) {
	u, err := a.repo.Find(ctx, shadow.Criteria{ID: id})
	if errors.Is(err, shadow.ErrNotFound) {
		if err := a.repo.CreateMinimal(ctx, id); err != nil {
			return nil, fmt.Errorf("create shadow row %d: %w", id, err)
		}
		u = &models.ShadowUser{ID: id}
	} else if err != nil {
		return nil, err
	}

	// best effort: an unreachable authority must not block a user whose
	// token already verified
	if err := a.refresher.Refresh(ctx, u); err != nil {
		a.log.Warn(ctx, "post-auth refresh failed", "user_id", id, "error", err)
	}

	return u, nil
}

// TokenUserID validates an HS256 token against secret and extracts the
// user_id claim.
func TokenUserID(token, secret string) (uint32, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("%w: user_id claim missing", ErrInvalidToken)
	}

	return uint32(id), nil
}
