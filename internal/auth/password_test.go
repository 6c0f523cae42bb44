package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func TestNewPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewPasswordHasher(100)
	if hasher.cost != DefaultBcryptCost {
		t.Errorf("expected cost %d, got %d", DefaultBcryptCost, hasher.cost)
	}
}

func TestNewPasswordHasher_PrecomputesDummyHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost + 1)

	if len(hasher.dummyHash) == 0 {
		t.Fatal("expected dummy hash to exist before any comparison")
	}
	cost, err := bcrypt.Cost(hasher.dummyHash)
	if err != nil {
		t.Fatalf("dummy hash is not a bcrypt hash: %v", err)
	}
	if cost != bcrypt.MinCost+1 {
		t.Errorf("expected dummy hash at cost %d, got %d", bcrypt.MinCost+1, cost)
	}

	before := string(hasher.dummyHash)
	_ = hasher.CompareDummy("anything")
	if string(hasher.dummyHash) != before {
		t.Error("dummy hash must not change on comparison")
	}
}

func TestHashPassword(t *testing.T) {
	password := "securePassword123"

	hash, err := newTestHasher().Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "" {
		t.Error("expected non-empty hash")
	}

	if hash == password {
		t.Error("hash should not equal plaintext password")
	}
}

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	hash, err := NewPasswordHasher(bcrypt.MinCost + 1).Hash("securePassword123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("failed to read cost: %v", err)
	}
	if cost != bcrypt.MinCost+1 {
		t.Errorf("expected cost %d, got %d", bcrypt.MinCost+1, cost)
	}
}

func TestHashPassword_DifferentHashes(t *testing.T) {
	hasher := newTestHasher()
	password := "securePassword123"

	hash1, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash2, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("same password should produce different hashes due to salt")
	}
}

func TestComparePassword_Correct(t *testing.T) {
	hasher := newTestHasher()
	password := "securePassword123"

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := hasher.Compare(hash, password); err != nil {
		t.Errorf("expected correct password to match, got error: %v", err)
	}
}

func TestComparePassword_Incorrect(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("securePassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := hasher.Compare(hash, "wrongPassword456"); err == nil {
		t.Error("expected error for incorrect password")
	}
}

func TestComparePassword_EmptyPassword(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("securePassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if err := hasher.Compare(hash, ""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestComparePassword_InvalidHash(t *testing.T) {
	if err := newTestHasher().Compare("not-a-valid-bcrypt-hash", "password"); err == nil {
		t.Error("expected error for invalid hash format")
	}
}

func TestCompareDummy_AlwaysFails(t *testing.T) {
	hasher := newTestHasher()

	if err := hasher.CompareDummy("dummy-password-for-timing"); err == nil {
		t.Error("expected dummy comparison to fail even for the dummy plaintext")
	}
	if hasher.dummyHash == nil {
		t.Error("expected dummy hash to be generated")
	}
}
