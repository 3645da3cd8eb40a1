package config

import (
	"strings"
	"testing"
)

func TestNewPasswordConfig_CostRange(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{name: "default when unset", cost: "", wantCost: 12},
		{name: "minimum", cost: "10", wantCost: 10},
		{name: "maximum", cost: "14", wantCost: 14},
		{name: "below minimum", cost: "9", wantErr: true},
		{name: "above maximum", cost: "15", wantErr: true},
		{name: "non-numeric", cost: "invalid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", "")

			config, err := NewPasswordConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPasswordConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && config.BcryptCost != tt.wantCost {
				t.Errorf("BcryptCost = %d, want %d", config.BcryptCost, tt.wantCost)
			}
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	// Minimum allowed cost keeps bcrypt fast in tests.
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	config, err := NewPasswordConfig()
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	password := "test-password-123"
	hash, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !config.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should accept the correct password")
	}
	if config.VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword() should reject an incorrect password")
	}
	if config.VerifyPassword(password, "not-a-hash") {
		t.Error("VerifyPassword() should reject a malformed hash")
	}

	// Salted: hashing the same password twice must differ
	hash2, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should salt each hash")
	}
}

func TestPasswordConfig_PepperBindsHash(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper-one")

	peppered, err := NewPasswordConfig()
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	password := "test-password-123"
	hash, err := peppered.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !peppered.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should accept the password under the same pepper")
	}

	t.Setenv("PASSWORD_PEPPER", "")
	unpeppered, err := NewPasswordConfig()
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	if unpeppered.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should fail once the pepper is removed")
	}
}

func TestPasswordConfig_BcryptLengthLimit(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	config, err := NewPasswordConfig()
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	// bcrypt accepts up to 72 bytes of password+pepper and errors beyond that
	atLimit := strings.Repeat("a", 72)
	hash, err := config.HashPassword(atLimit)
	if err != nil {
		t.Fatalf("HashPassword() at the 72-byte limit should succeed: %v", err)
	}
	if !config.VerifyPassword(atLimit, hash) {
		t.Error("VerifyPassword() should accept a 72-byte password")
	}

	if _, err := config.HashPassword(strings.Repeat("a", 73)); err == nil {
		t.Error("HashPassword() should error when password exceeds 72 bytes")
	}
}
