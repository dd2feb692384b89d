package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

func TestHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}

	hash, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "pw123" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash encoding: %q", hash)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Fatalf("cost = %d", cost)
	}
	if !h.Compare(hash, "pw123") {
		t.Fatal("correct password rejected")
	}
	if h.Compare(hash, "pw124") {
		t.Fatal("wrong password accepted")
	}
	if h.Compare("not-a-hash", "pw123") {
		t.Fatal("malformed hash accepted")
	}

	// must not panic
	h.CompareDummy("anything")
}

func TestHasher_SaltsEveryHash(t *testing.T) {
	t.Parallel()

	h, _ := NewHasher(bcrypt.MinCost)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatal("expected distinct salts")
	}
}

func TestHasher_TooLong(t *testing.T) {
	t.Parallel()

	h, _ := NewHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
}

func TestNewHasher_CostRange(t *testing.T) {
	t.Parallel()

	for _, cost := range []int{0, bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		if _, err := NewHasher(cost); err == nil {
			t.Fatalf("cost %d: expected error", cost)
		}
	}
}
