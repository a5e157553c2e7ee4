package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName carries the signed session token in the browser.
const CookieName = "imovest_session"

var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieCodec issues and validates signed session cookies. The session
// ID travels as the JWT subject; signing keeps clients from forging or
// swapping IDs.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewCookieCodec builds a codec from the configured secret. An empty
// secret gets an ephemeral random one, which invalidates outstanding
// sessions on restart.
func NewCookieCodec(secret string, ttl time.Duration) (*CookieCodec, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret fallback: %w", err)
		}
		key = []byte(base64.RawURLEncoding.EncodeToString(buf))
		log.Print("session secret is not set; using ephemeral in-memory fallback secret")
	}
	return &CookieCodec{secret: key, ttl: ttl}, nil
}

// Issue creates a fresh session ID and the cookie that carries it.
func (c *CookieCodec) Issue() (string, *http.Cookie, error) {
	sessionID := uuid.New().String()

	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(c.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return sessionID, cookie, nil
}

// Decode validates a cookie value and returns the session ID.
func (c *CookieCodec) Decode(value string) (string, error) {
	token, err := jwt.Parse(value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCookie
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCookie
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", ErrInvalidCookie
	}
	if _, err := uuid.Parse(sub); err != nil {
		return "", ErrInvalidCookie
	}
	return sub, nil
}
