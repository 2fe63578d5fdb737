package auth

import (
	"time"

	"learnmart/apperrors"
	"learnmart/storage"

	"github.com/golang-jwt/jwt/v4"
)

const tokenKey = "token"

// TokenStore keeps the session JWT in durable local storage and refuses to
// hand out a token that has already expired, so callers fail before ever
// touching the network.
type TokenStore struct {
	store storage.KV
}

func NewTokenStore(kv storage.KV) *TokenStore {
	return &TokenStore{store: kv}
}

// Save persists the session token
func (t *TokenStore) Save(token string) error {
	return t.store.Set(tokenKey, token)
}

// Clear removes the persisted token entirely
func (t *TokenStore) Clear() error {
	return t.store.Delete(tokenKey)
}

// Token returns the stored session token. The signature is verified
// server-side; here we only inspect the expiry claim.
func (t *TokenStore) Token() (string, error) {
	var token string
	ok, err := t.store.Get(tokenKey, &token)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", apperrors.ErrTokenMissing
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", apperrors.ErrTokenMissing
	}
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < time.Now().Unix() {
		return "", apperrors.ErrTokenExpired
	}

	return token, nil
}
