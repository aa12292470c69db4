package crypto

import "testing"

func TestBcryptHasher_HashProducesDistinctDigests(t *testing.T) {
	h := NewBcryptHasher()

	first, err := h.Hash("pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second, err := h.Hash("pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}

	if first == "pw123456" || second == "pw123456" {
		t.Error("expected digest to differ from plaintext")
	}

	if err := h.Compare(first, "pw123456"); err != nil {
		t.Errorf("expected first digest to verify, got %v", err)
	}

	if err := h.Compare(second, "pw123456"); err != nil {
		t.Errorf("expected second digest to verify, got %v", err)
	}
}

func TestBcryptHasher_CompareWrongPassword(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("correct-password1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := h.Compare(digest, "wrong-password1"); err == nil {
		t.Error("expected comparison with the wrong password to fail")
	}
}

func TestBcryptHasher_CompareMalformedDigest(t *testing.T) {
	h := NewBcryptHasher()

	if err := h.Compare("not-a-bcrypt-digest", "whatever"); err == nil {
		t.Error("expected comparison against a malformed digest to fail")
	}
}
