package viewingkey

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmitrijs2005/remindkeeper/internal/common"
)

func TestNew_Deterministic(t *testing.T) {
	seed := []byte("seed")
	entropy := []byte("entropy")

	k1 := New(seed, entropy)
	k2 := New(seed, entropy)

	if k1 != k2 {
		t.Errorf("expected same key for same inputs, got %q and %q", k1, k2)
	}
}

func TestNew_DifferentInputs(t *testing.T) {
	seed := []byte("seed")

	k1 := New(seed, []byte("entropy-1"))
	k2 := New(seed, []byte("entropy-2"))
	k3 := New([]byte("other-seed"), []byte("entropy-1"))

	if k1 == k2 {
		t.Error("expected different keys for different entropy")
	}
	if k1 == k3 {
		t.Error("expected different keys for different seeds")
	}
}

func TestNew_Format(t *testing.T) {
	for i := 0; i < 10; i++ {
		k := New(common.GenerateRandByteArray(32), common.GenerateRandByteArray(16))

		if !strings.HasPrefix(string(k), "api_key_") {
			t.Errorf("expected api_key_ prefix, got %q", k)
		}
		// base64 of a 32-byte digest is 44 characters
		if len(k) != len("api_key_")+44 {
			t.Errorf("unexpected token length %d: %q", len(k), k)
		}
	}
}

func TestToHashed_OneWayAndStable(t *testing.T) {
	k := New([]byte("seed"), []byte("entropy"))

	h1 := k.ToHashed()
	h2 := k.ToHashed()

	if len(h1) != KeySize {
		t.Fatalf("expected %d-byte hash, got %d", KeySize, len(h1))
	}
	if !bytes.Equal(h1, h2) {
		t.Error("hash is not stable")
	}
	if bytes.Contains([]byte(k), h1) {
		t.Error("hash must not embed the token")
	}
}

func TestCheck(t *testing.T) {
	k := New([]byte("seed"), []byte("entropy"))
	other := New([]byte("seed"), []byte("different"))

	if !k.Check(k.ToHashed()) {
		t.Error("key must verify against its own hash")
	}
	if k.Check(other.ToHashed()) {
		t.Error("key must not verify against another key's hash")
	}
	if k.Check(make([]byte, KeySize)) {
		t.Error("key must not verify against the zero buffer")
	}
}
