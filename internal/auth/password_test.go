package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := HashPassword("sup3r-secret", bcryptTestCost)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		if hash == "sup3r-secret" {
			t.Fatal("hash equals plaintext")
		}
		if !CheckPassword("sup3r-secret", hash) {
			t.Fatal("expected password to verify against its own hash")
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		hash, err := HashPassword("sup3r-secret", bcryptTestCost)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		if CheckPassword("not-the-password", hash) {
			t.Fatal("wrong password verified")
		}
	})

	t.Run("malformed hash rejected", func(t *testing.T) {
		if CheckPassword("anything", "not-a-bcrypt-hash") {
			t.Fatal("malformed hash verified")
		}
	})

	t.Run("hashes are salted", func(t *testing.T) {
		first, err := HashPassword("same-input", bcryptTestCost)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		second, err := HashPassword("same-input", bcryptTestCost)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		if first == second {
			t.Fatal("expected distinct hashes for repeated input")
		}
	})
}

// Minimum cost keeps the suite fast without changing verification behavior.
const bcryptTestCost = 4
