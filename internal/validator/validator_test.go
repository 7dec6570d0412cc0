package validator_test

import (
	"fmt"
	"strings"
	"testing"

	"chatcore-backend/internal/validator"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		expectedError error
	}{
		{
			name:          "Valid: Standard email",
			email:         "user@gmail.com",
			expectedError: nil,
		},
		{
			name:          "Valid: Dot in local part",
			email:         "first.last@yahoo.com",
			expectedError: nil,
		},
		{
			name:          "Valid: Digits in local part",
			email:         "stvnnguyen69@hotmail.com",
			expectedError: nil,
		},

		{
			name:          "Error: Too long",
			email:         strings.Repeat("a", 60) + "@web.de",
			expectedError: fmt.Errorf("long_email"),
		},

		{
			name:          "Error: Missing @ sign",
			email:         "userexample.com",
			expectedError: fmt.Errorf("bad_format"),
		},
		{
			name:          "Error: Missing domain part",
			email:         "user@",
			expectedError: fmt.Errorf("bad_format"),
		},
		{
			name:          "Error: Missing TLD",
			email:         "user@domain",
			expectedError: fmt.Errorf("bad_format"),
		},
		{
			name:          "Error: Uppercase local part",
			email:         "User@example.com",
			expectedError: fmt.Errorf("bad_format"),
		},
		{
			name:          "Error: TLD too long",
			email:         "user@example.info",
			expectedError: fmt.Errorf("bad_format"),
		},
		{
			name:          "Error: Empty string",
			email:         "",
			expectedError: fmt.Errorf("bad_format"),
		},
		{
			name:          "Error: Whitespace only",
			email:         "          ",
			expectedError: fmt.Errorf("bad_format"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Email(tc.email)

			if tc.expectedError == nil {
				if err != nil {
					t.Errorf("Email(%q) failed unexpectedly: got error %v, want nil", tc.email, err)
				}
				return
			}

			if err == nil {
				t.Errorf("Email(%q) passed unexpectedly: got nil, want error %v", tc.email, tc.expectedError)
				return
			}

			if err.Error() != tc.expectedError.Error() {
				t.Errorf("Email(%q) got error %q, want error %q", tc.email, err.Error(), tc.expectedError.Error())
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{
			name:          "Valid: Minimum length",
			password:      "abc123",
			expectedError: nil,
		},
		{
			name:          "Valid: Typical password",
			password:      "p@ssw0rd",
			expectedError: nil,
		},
		{
			name:          "Valid: Six multi-byte runes",
			password:      strings.Repeat("á", 6),
			expectedError: nil,
		},
		{
			name:          "Error: Too short",
			password:      "12345",
			expectedError: fmt.Errorf("short_password"),
		},
		{
			name:          "Error: Five multi-byte runes",
			password:      strings.Repeat("á", 5),
			expectedError: fmt.Errorf("short_password"),
		},
		{
			name:          "Error: Too long",
			password:      strings.Repeat("x", 65),
			expectedError: fmt.Errorf("long_password"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Password(tc.password)

			if tc.expectedError == nil {
				if err != nil {
					t.Errorf("Password(%q) failed unexpectedly: got error %v, want nil", tc.password, err)
				}
				return
			}

			if err == nil || err.Error() != tc.expectedError.Error() {
				t.Errorf("Password(%q) got error %v, want error %q", tc.password, err, tc.expectedError.Error())
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError error
	}{
		{
			name:          "Valid: Single character",
			input:         "A",
			expectedError: nil,
		},
		{
			name:          "Valid: Exactly 50 characters",
			input:         strings.Repeat("x", 50),
			expectedError: nil,
		},
		{
			name:          "Error: Empty",
			input:         "",
			expectedError: fmt.Errorf("short_name"),
		},
		{
			name:          "Error: 51 characters",
			input:         strings.Repeat("a", 51),
			expectedError: fmt.Errorf("long_name"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Name(tc.input)

			if tc.expectedError == nil {
				if err != nil {
					t.Errorf("Name(%q) failed unexpectedly: got error %v, want nil", tc.input, err)
				}
				return
			}

			if err == nil || err.Error() != tc.expectedError.Error() {
				t.Errorf("Name(%q) got error %v, want error %q", tc.input, err, tc.expectedError.Error())
			}
		})
	}
}

func TestHandle(t *testing.T) {
	if err := validator.Handle("ab"); err != nil {
		t.Errorf("Handle(\"ab\") failed unexpectedly: %v", err)
	}
	if err := validator.Handle(strings.Repeat("h", 20)); err != nil {
		t.Errorf("Handle of 20 characters failed unexpectedly: %v", err)
	}
	if err := validator.Handle("a"); err == nil || err.Error() != "short_handle" {
		t.Errorf("Handle(\"a\") got %v, want short_handle", err)
	}
	if err := validator.Handle(strings.Repeat("h", 21)); err == nil || err.Error() != "long_handle" {
		t.Errorf("Handle of 21 characters got %v, want long_handle", err)
	}
}
