package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Username != "alice" {
		t.Errorf("Expected username alice, got %s", user.Username)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", user.Email)
	}
	if user.IsAdmin {
		t.Error("Expected new user to not be an admin")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"empty username", "", "alice@example.com", "password123", ErrEmptyUsername},
		{"username too long", strings.Repeat("a", 151), "alice@example.com", "password123", ErrUsernameTooLong},
		{"empty email", "alice", "", "password123", ErrEmptyEmail},
		{"malformed email", "alice", "not-an-email", "password123", ErrInvalidEmailFormat},
		{"empty password", "alice", "alice@example.com", "", ErrEmptyPassword},
		{"password too short", "alice", "alice@example.com", "short", ErrPasswordTooShort},
		{"password too long", "alice", "alice@example.com", strings.Repeat("p", 73), ErrPasswordTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewUser(tc.username, tc.email, tc.password); err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUserValidateWithHashOnly(t *testing.T) {
	// Users loaded from the store carry only the hash
	user := User{
		ID:             uuid.New(),
		Username:       "bob",
		Email:          "bob@example.com",
		HashedPassword: "$2a$10$somethinghashed",
	}

	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
