package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"room-meeting-backend/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Identity is the authenticated principal carried by an access token.
type Identity struct {
	AccountID int64
	Kind      model.AccountKind
	Role      model.Role
	TokenID   string
	ExpiresAt time.Time
}

// AccessToken is a signed token together with its expiry.
type AccessToken struct {
	Token     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret  []byte
	ttl     time.Duration
	revoked *Denylist
	now     func() time.Time
}

// NewIssuer creates an Issuer. revoked may be nil.
func NewIssuer(secret string, ttl time.Duration, revoked *Denylist) *Issuer {
	return &Issuer{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// Issue signs a token for the given account.
func (i *Issuer) Issue(accountID int64, kind model.AccountKind, role model.Role) (AccessToken, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(accountID, 10),
		"kind": string(kind),
		"role": string(role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return AccessToken{Token: signed, ExpiresAt: exp}, nil
}

// Verify parses raw and returns the identity it carries.
func (i *Issuer) Verify(raw string) (*Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	accountID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	kind, _ := claims["kind"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	if (kind != string(model.AccountUser) && kind != string(model.AccountAdmin)) || !model.Role(role).Valid() {
		return nil, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	if i.revoked != nil && i.revoked.Revoked(jti) {
		return nil, ErrRevokedToken
	}

	return &Identity{
		AccountID: accountID,
		Kind:      model.AccountKind(kind),
		Role:      model.Role(role),
		TokenID:   jti,
		ExpiresAt: exp.Time,
	}, nil
}

// Revoke blocks the identity's token until it expires.
func (i *Issuer) Revoke(id *Identity) {
	if i.revoked == nil || id.TokenID == "" {
		return
	}
	i.revoked.Revoke(id.TokenID, id.ExpiresAt.Sub(i.now()))
}
