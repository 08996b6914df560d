package webhooksec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Store holds the webhook shared secret established during handshake. The
// secret is absent at startup, set on every handshake (re-handshake always
// overwrites), and lost on restart. It is read on every delivery, so access
// is lock-guarded rather than living in a package variable.
type Store struct {
	mu     sync.RWMutex
	secret string
}

// NewStore creates an empty (unarmed) secret store
func NewStore() *Store {
	return &Store{}
}

// Set stores the handshake secret verbatim, overwriting any previous value
func (s *Store) Set(secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = secret
}

// Get returns the current secret and whether one has been established
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret, s.secret != ""
}

// Armed reports whether a handshake has established a secret
func (s *Store) Armed() bool {
	_, ok := s.Get()
	return ok
}

// Verify checks a delivery signature against the stored secret in constant
// time. Returns false when unarmed.
func (s *Store) Verify(body []byte, signature string) bool {
	secret, ok := s.Get()
	if !ok {
		return false
	}
	expected := Signature(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Signature computes hex(HMAC-SHA256(secret, body)), the signature scheme the
// upstream platform uses for webhook deliveries
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
