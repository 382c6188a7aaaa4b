package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind selects the signing secret and TTL used for a token.
type TokenKind int

const (
	KindAccess TokenKind = iota
	KindRefresh
)

// Claims carried by both token kinds. The role flag minted into a refresh
// token is the one propagated into every pair minted from a refresh of it.
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Codec mints and verifies HS256 bearer tokens. Access and refresh tokens
// are signed with distinct secrets so a leaked refresh secret cannot forge
// access tokens and vice versa. The codec holds no mutable state.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("auth: access and refresh secrets must differ")
	}
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (c *Codec) secretFor(kind TokenKind) []byte {
	if kind == KindRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

func (c *Codec) ttlFor(kind TokenKind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Mint signs a token of the given kind. A uuid jti keeps two tokens minted
// in the same second distinct, which matters because the refresh token value
// is the session record's primary key.
func (c *Codec) Mint(isAdmin bool, kind TokenKind) (string, error) {
	now := time.Now()
	claims := &Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttlFor(kind))),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secretFor(kind))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// MintPair mints one access and one refresh token carrying the same role.
func (c *Codec) MintPair(isAdmin bool) (access, refresh string, err error) {
	if access, err = c.Mint(isAdmin, KindAccess); err != nil {
		return "", "", err
	}
	if refresh, err = c.Mint(isAdmin, KindRefresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify checks signature and expiry against the given kind's secret and
// returns the claims. Expiry is reported as ErrTokenExpired, everything else
// as ErrTokenInvalid.
func (c *Codec) Verify(tokenStr string, kind TokenKind) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secretFor(kind), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
