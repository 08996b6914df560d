package webhooksec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_StartsUnarmed(t *testing.T) {
	store := NewStore()

	assert.False(t, store.Armed())

	secret, ok := store.Get()
	assert.False(t, ok)
	assert.Empty(t, secret)
}

func TestStore_SetArms(t *testing.T) {
	store := NewStore()
	store.Set("hook-secret-1")

	assert.True(t, store.Armed())

	secret, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "hook-secret-1", secret)
}

func TestStore_RehandshakeOverwrites(t *testing.T) {
	store := NewStore()
	store.Set("first")
	store.Set("second")

	secret, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "second", secret)

	body := []byte(`{"events":[]}`)
	assert.False(t, store.Verify(body, Signature("first", body)))
	assert.True(t, store.Verify(body, Signature("second", body)))
}

func TestStore_VerifyRoundTrip(t *testing.T) {
	store := NewStore()
	store.Set("shared")

	body := []byte(`{"events":[{"action":"added"}]}`)
	assert.True(t, store.Verify(body, Signature("shared", body)))
}

func TestStore_VerifyRejectsTamperedBody(t *testing.T) {
	store := NewStore()
	store.Set("shared")

	signature := Signature("shared", []byte("original"))
	assert.False(t, store.Verify([]byte("tampered"), signature))
}

func TestStore_VerifyRejectsWhenUnarmed(t *testing.T) {
	store := NewStore()

	body := []byte("payload")
	assert.False(t, store.Verify(body, Signature("anything", body)))
}

func TestStore_VerifyRejectsEmptySignature(t *testing.T) {
	store := NewStore()
	store.Set("shared")

	assert.False(t, store.Verify([]byte("payload"), ""))
}
