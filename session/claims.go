package session

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	crmerrors "github.com/jrsteele09/go-crm-workspace/internal/errors"
	"github.com/jrsteele09/go-crm-workspace/internal/utils"
	"golang.org/x/oauth2"
)

// User is the identity derived from a bearer token.
type User struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Claims are the parts of a token the client cares about. The signature is
// not checked here; see TokenVerifier.
type Claims struct {
	Subject   string
	Name      string
	Email     string
	Roles     []string
	ExpiresAt *time.Time // nil when the token has no exp claim
}

// ParseClaims decodes raw without verifying it. Roles come from
// resource_access.<clientID>.roles, falling back to realm_access.roles.
func ParseClaims(raw, clientID string) (*Claims, error) {
	if !strings.Contains(raw, ".") {
		return nil, crmerrors.ErrMalformedToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crmerrors.ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: error extracting claims", crmerrors.ErrInvalidToken)
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crmerrors.ErrInvalidToken, err)
	}

	sub, _ := mapClaims["sub"].(string)
	name, _ := mapClaims["name"].(string)
	email, _ := mapClaims["email"].(string)

	c := &Claims{
		Subject: sub,
		Name:    name,
		Email:   email,
		Roles:   rolesFromClaims(mapClaims, clientID),
	}
	if exp != nil {
		c.ExpiresAt = utils.Ptr(exp.Time)
	}
	return c, nil
}

func rolesFromClaims(claims jwtlib.MapClaims, clientID string) []string {
	paths := [][]string{
		{"resource_access", clientID, "roles"},
		{"realm_access", "roles"},
	}
	for _, path := range paths {
		if v, ok := utils.Lookup(claims, path...); ok {
			if list, ok := v.([]any); ok {
				return dedupe(utils.ToStringSlice(list))
			}
		}
	}
	return []string{}
}

func dedupe(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Expired reports whether the exp claim lies before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

func (c *Claims) User() *User {
	return &User{Name: c.Name, Email: c.Email, Roles: c.Roles}
}

// bearer is the outbound credential for raw.
func (c *Claims) bearer(raw string) *oauth2.Token {
	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if c.ExpiresAt != nil {
		tok.Expiry = *c.ExpiresAt
	}
	return tok
}

// DeriveUser is the single place a token becomes a user: it decodes the
// token, rejects it when expired at now, and extracts name, email and roles.
// The Manager derives its user through the same path.
func DeriveUser(raw string, now time.Time, clientID string) (*User, error) {
	claims, err := deriveClaims(raw, now, clientID)
	if err != nil {
		return nil, err
	}
	return claims.User(), nil
}

func deriveClaims(raw string, now time.Time, clientID string) (*Claims, error) {
	claims, err := ParseClaims(raw, clientID)
	if err != nil {
		return nil, err
	}
	if claims.Expired(now) {
		return nil, crmerrors.ErrTokenExpired
	}
	return claims, nil
}
