package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("adminpass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "adminpass" {
		t.Fatal("hash should not equal plaintext")
	}

	if !CheckPasswordHash("adminpass", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Error("wrong password accepted")
	}
}
