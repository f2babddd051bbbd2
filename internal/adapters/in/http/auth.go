package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const actorIDKey = "actor_id"

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies HS256 bearer tokens whose subject is the
// actor identifier. Roles are not carried in the token; they are looked up in
// the actor directory on every request.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for actorID valid for ttl.
func (s *TokenService) Issue(actorID kernel.UUID, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   actorID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify returns the actor identifier carried by tokenString.
func (s *TokenService) Verify(tokenString string) (kernel.UUID, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return kernel.UUID{}, errors.Join(ErrInvalidToken, err)
	}

	actorID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, errors.Join(ErrInvalidToken, err)
	}
	return actorID, nil
}

// Authenticate rejects requests without a valid "Authorization: Bearer"
// header and stores the actor identifier in the echo context.
func Authenticate(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "missing bearer token"})
			}

			actorID, err := tokens.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "unauthorized"})
			}

			c.Set(actorIDKey, actorID)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) kernel.UUID {
	id, _ := c.Get(actorIDKey).(kernel.UUID)
	return id
}
