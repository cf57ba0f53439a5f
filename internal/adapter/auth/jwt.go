package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const userKey = "auth.user"

// Claims mirrors what the identity provider puts into an access token:
// the user id in sub, plus the email.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

// User is the authenticated caller attached to a request.
type User struct {
	ID    string
	Email string
}

// HMACVerifier checks HS256 access tokens signed with the project secret.
type HMACVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret), now: time.Now}
}

func (v *HMACVerifier) Verify(token string) (User, error) {
	if len(v.secret) == 0 {
		return User{}, ErrTokenInvalid
	}
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(v.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return User{}, ErrTokenExpired
		}
		return User{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.Subject == "" {
		return User{}, ErrTokenInvalid
	}
	return User{ID: c.Subject, Email: c.Email}, nil
}

// Sign issues a token for userID. Used by the CLI and tests.
func (v *HMACVerifier) Sign(userID, email string, ttl time.Duration) (string, error) {
	now := v.now().UTC()
	c := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(v.secret)
}

// Middleware rejects requests without a valid bearer token and stores the
// caller for CurrentUser.
func Middleware(v *HMACVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, ErrTokenMissing.Error())
		}
		u, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		c.Locals(userKey, u)
		return c.Next()
	}
}

// CurrentUser returns the caller set by Middleware.
func CurrentUser(c *fiber.Ctx) (User, bool) {
	u, ok := c.Locals(userKey).(User)
	return u, ok
}
