package validator

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9]+[._]?[a-z0-9]+[@]\w+[.]\w{2,3}$`)

func Email(email string) error {
	const maxLength = 64

	if len(email) > maxLength {
		return fmt.Errorf("long_email")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("bad_format")
	}

	return nil
}

func Password(password string) error {
	length := len([]rune(password))
	if length < 6 {
		return fmt.Errorf("short_password")
	} else if length > 64 {
		return fmt.Errorf("long_password")
	}
	return nil
}

func Name(name string) error {
	length := len([]rune(name))
	if length < 1 {
		return fmt.Errorf("short_name")
	} else if length > 50 {
		return fmt.Errorf("long_name")
	}
	return nil
}

// Handle checks a user-chosen display handle. Generated handles are
// always within these bounds already.
func Handle(handle string) error {
	length := len([]rune(handle))
	if length < 2 {
		return fmt.Errorf("short_handle")
	} else if length > 20 {
		return fmt.Errorf("long_handle")
	}
	return nil
}
