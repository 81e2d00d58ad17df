package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("compilers-1952")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "compilers-1952" {
		t.Fatal("hash must differ from the plaintext")
	}
	if !CheckPassword(hash, "compilers-1952") {
		t.Error("correct password must verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password must not verify")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"compilers-1952", true},
		{"abcdefgh", true},
		{"short", false},
		{"", false},
		{"12345678", false},
		{"123456789012345", false},
		{"1234567a", true},
	}
	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.valid && err != nil {
			t.Errorf("%q: expected valid, got %v", tc.password, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%q: expected rejection", tc.password)
		}
	}
}
