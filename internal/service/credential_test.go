package service

import (
	"testing"

	"github.com/Payphone-Digital/videotube/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentialStoreHashVerify(t *testing.T) {
	store := NewCredentialStore(bcrypt.MinCost)

	first, err := store.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := store.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}
	if first == "s3cret" {
		t.Error("hash must not equal the plaintext")
	}

	for _, hashed := range []string{first, second} {
		ok, err := store.Verify("s3cret", hashed)
		if err != nil || !ok {
			t.Errorf("Verify(correct) = %v, %v", ok, err)
		}
	}

	ok, err := store.Verify("wrong", first)
	if err != nil {
		t.Errorf("wrong password must not be an error, got %v", err)
	}
	if ok {
		t.Error("Verify(wrong) = true")
	}
}

func TestCredentialStoreVerifyMalformedHash(t *testing.T) {
	store := NewCredentialStore(bcrypt.MinCost)

	ok, err := store.Verify("anything", "not-a-bcrypt-hash")
	if ok || err == nil {
		t.Errorf("Verify(malformed) = %v, %v; want false and an error", ok, err)
	}
}

func TestCredentialStoreApplyPassword(t *testing.T) {
	store := NewCredentialStore(bcrypt.MinCost)
	user := &model.User{}

	changed, err := store.ApplyPassword(user, "first")
	if err != nil || !changed {
		t.Fatalf("ApplyPassword(new) = %v, %v", changed, err)
	}
	hashed := user.Password

	changed, err = store.ApplyPassword(user, "first")
	if err != nil {
		t.Fatalf("ApplyPassword(same) error = %v", err)
	}
	if changed || user.Password != hashed {
		t.Error("re-applying the same password must not re-hash")
	}

	changed, err = store.ApplyPassword(user, "second")
	if err != nil || !changed {
		t.Fatalf("ApplyPassword(different) = %v, %v", changed, err)
	}
	if ok, _ := store.Verify("second", user.Password); !ok {
		t.Error("expected new password to verify")
	}

	if _, err := store.ApplyPassword(user, ""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestNewCredentialStoreClampsCost(t *testing.T) {
	if got := NewCredentialStore(99).cost; got != 10 {
		t.Errorf("cost = %d, want default 10", got)
	}
}
