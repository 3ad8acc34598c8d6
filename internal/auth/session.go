package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/DapP256/trabajo-final-uai/internal/models"
)

// SessionUser is the identity snapshot embedded in the session token. It is
// captured at issuance and is not re-checked against the live usuario row on
// every request; callers that need live status go through /api/auth/me.
type SessionUser struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Nombre   *string         `json:"nombre"`
	Apellido *string         `json:"apellido"`
	Rol      models.UserRole `json:"rol"`
	Estado   string          `json:"estado"`
}

// SessionPayload is the cookie body. Token is an opaque random string minted
// per login; it is not a revocation handle, the token stays valid until the
// cookie expires.
type SessionPayload struct {
	Token    string      `json:"token"`
	User     SessionUser `json:"user"`
	IssuedAt string      `json:"issuedAt"`
}

// EncodeSession serializes and signs a payload as
// base64url(json) + "." + base64url(HMAC-SHA256(json, secret)).
// The payload is readable by anyone holding the token; only integrity is
// guaranteed, so nothing secret may go into it.
func EncodeSession(payload *SessionPayload, secret string) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	mac := sign(raw, secret)
	return base64.RawURLEncoding.EncodeToString(raw) + "." + base64.RawURLEncoding.EncodeToString(mac), nil
}

// DecodeSession verifies and parses a serialized session token. It is total:
// any malformed, tampered or schema-drifted input yields (nil, false), never
// an error that distinguishes causes.
func DecodeSession(serialized, secret string) (*SessionPayload, bool) {
	idx := strings.LastIndex(serialized, ".")
	if idx <= 0 || idx == len(serialized)-1 {
		return nil, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(serialized[:idx])
	if err != nil {
		return nil, false
	}
	mac, err := base64.RawURLEncoding.DecodeString(serialized[idx+1:])
	if err != nil {
		return nil, false
	}
	if !hmac.Equal(sign(raw, secret), mac) {
		return nil, false
	}
	var payload SessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	// A valid signature is not enough: stale token shapes from older builds
	// must not produce half-empty sessions.
	if payload.User.ID == "" || payload.Token == "" {
		return nil, false
	}
	return &payload, true
}

func sign(raw []byte, secret string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(raw)
	return h.Sum(nil)
}
