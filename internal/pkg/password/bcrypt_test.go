package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "password1" {
		t.Fatalf("expected password to be hashed")
	}
	if !h.Compare("password1", digest) {
		t.Fatalf("expected match")
	}
	if h.Compare("wrong", digest) {
		t.Fatalf("expected mismatch")
	}
	if h.Compare("password1", "not-a-digest") {
		t.Fatalf("malformed digest must not match")
	}
}

func TestNewBcrypt_ClampsCost(t *testing.T) {
	if got := NewBcrypt(1).cost; got != bcrypt.MinCost {
		t.Fatalf("expected min cost, got %d", got)
	}
	if got := NewBcrypt(99).cost; got != bcrypt.MaxCost {
		t.Fatalf("expected max cost, got %d", got)
	}
}
