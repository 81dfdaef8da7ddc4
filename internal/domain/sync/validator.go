package sync

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxUsernameLen - ограничение длины ключа раздела в общем документе
const MaxUsernameLen = 64

// validateUsername проверяет ключ раздела: непустой, без управляющих символов
// и пробелов по краям
func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}

	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return fmt.Errorf("%w: username must be at most %d characters", ErrValidation, MaxUsernameLen)
	}

	if strings.TrimSpace(username) != username {
		return fmt.Errorf("%w: username must not start or end with spaces", ErrValidation)
	}

	for _, r := range username {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return fmt.Errorf("%w: username contains invalid characters", ErrValidation)
		}
	}

	return nil
}
