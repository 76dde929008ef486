package auth

import (
	"errors"
	"testing"
)

func TestIdentityStoreRegister(t *testing.T) {
	t.Run("new_username_and_email_succeeds", func(t *testing.T) {
		s := NewIdentityStore()
		id, err := s.Register("alice", "alice@example.com", "hunter22")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if id.Username != "alice" || id.Email != "alice@example.com" {
			t.Errorf("identity = %+v", id)
		}
		if id.CreatedAt.IsZero() {
			t.Error("CreatedAt not set")
		}
		if id.passwordHash == "" || id.passwordHash == "hunter22" {
			t.Error("password not stored as a digest")
		}
	})

	t.Run("duplicate_username_fails", func(t *testing.T) {
		s := NewIdentityStore()
		if _, err := s.Register("alice", "alice@example.com", "hunter22"); err != nil {
			t.Fatalf("Register: %v", err)
		}
		_, err := s.Register("alice", "other@example.com", "hunter22")
		if !errors.Is(err, ErrUsernameExists) {
			t.Errorf("err = %v, want ErrUsernameExists", err)
		}
	})

	t.Run("duplicate_email_fails", func(t *testing.T) {
		s := NewIdentityStore()
		if _, err := s.Register("alice", "alice@example.com", "hunter22"); err != nil {
			t.Fatalf("Register: %v", err)
		}
		_, err := s.Register("bob", "Alice@Example.com", "hunter22")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("err = %v, want ErrEmailExists", err)
		}
	})

	t.Run("empty_fields_rejected", func(t *testing.T) {
		s := NewIdentityStore()
		if _, err := s.Register("", "a@b.com", "pw"); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
		if _, err := s.Register("alice", "a@b.com", ""); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
	})
}

func TestIdentityStoreAuthenticate(t *testing.T) {
	s := NewIdentityStore()
	if _, err := s.Register("alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("valid_credentials", func(t *testing.T) {
		id, err := s.Authenticate("alice", "hunter22")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if id.Username != "alice" {
			t.Errorf("Username = %q", id.Username)
		}
	})

	t.Run("wrong_password_uniform_error", func(t *testing.T) {
		_, err := s.Authenticate("alice", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown_user_uniform_error", func(t *testing.T) {
		_, err := s.Authenticate("mallory", "hunter22")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}
