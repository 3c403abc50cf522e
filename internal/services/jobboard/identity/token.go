package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
)

// MinSecretBytes is the shortest accepted HMAC signing secret.
const MinSecretBytes = 32

// TokenConfig configures session token signing.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Session is an issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies HS256 session tokens carrying a principal.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
}

// NewTokenIssuer validates cfg and builds an issuer.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) < MinSecretBytes {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretBytes)
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		return nil, errors.New("session issuer is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &TokenIssuer{secret: secret, issuer: issuer, ttl: cfg.TTL, now: now}, nil
}

// Issue signs a session token for principal.
func (i *TokenIssuer) Issue(principal Principal) (Session, error) {
	if !principal.Authenticated() {
		return Session{}, errors.New("cannot issue session for anonymous principal")
	}
	if !principal.Role.Valid() {
		return Session{}, fmt.Errorf("cannot issue session for role %q", principal.Role)
	}
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:      principal.Role.String(),
		CompanyID: principal.CompanyID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{Token: signed, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// Verify parses token and returns the principal it carries.
func (i *TokenIssuer) Verify(token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, apperrors.New(apperrors.CodeAuthInvalidToken, "session token is required")
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Principal{}, mapJWTError(err)
	}

	if strings.TrimSpace(parsed.Subject) == "" {
		return Principal{}, apperrors.New(apperrors.CodeAuthInvalidToken, "session subject is required")
	}
	role, ok := ParseRole(parsed.Role)
	if !ok {
		return Principal{}, apperrors.WithMetadata(
			apperrors.CodeAuthInvalidToken,
			"session role is invalid",
			map[string]string{"Role": parsed.Role},
		)
	}
	return Principal{
		UserID:    parsed.Subject,
		Role:      role,
		CompanyID: parsed.CompanyID,
	}, nil
}

// TTL returns the session lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.CodeAuthTokenExpired, "session is expired", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeAuthInvalidToken, "session signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return apperrors.Wrap(apperrors.CodeAuthInvalidToken, "session issuer mismatch", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(apperrors.CodeAuthInvalidToken, "session alg is invalid", err)
	default:
		return apperrors.Wrap(apperrors.CodeAuthInvalidToken, "session is malformed", err)
	}
}
