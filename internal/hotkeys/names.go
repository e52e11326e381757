package hotkeys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"moonwalk/internal/core/macro"
)

// ErrUnsupportedKey is matched with errors.Is on every grammar failure.
var ErrUnsupportedKey = errors.New("unsupported key")

type unsupportedKeyError struct {
	name string
}

func (e *unsupportedKeyError) Error() string {
	return fmt.Sprintf("Unsupported key: %s", e.name)
}

func (e *unsupportedKeyError) Is(target error) bool {
	return target == ErrUnsupportedKey
}

// ParseName accepts f1..f12, a..z and 0..9 in ASCII upper or lower case.
func ParseName(name string) (macro.Key, error) {
	trimmed := strings.TrimSpace(name)
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] >= utf8.RuneSelf {
			return macro.KeyNone, &unsupportedKeyError{name: trimmed}
		}
	}
	normalized := strings.ToLower(trimmed)

	if len(normalized) == 1 {
		r := rune(normalized[0])
		if r >= '0' && r <= '9' {
			key, _ := macro.DigitKey(int(r - '0'))
			return key, nil
		}
		if key, ok := macro.LetterKey(r); ok {
			return key, nil
		}
	}

	if rest, ok := strings.CutPrefix(normalized, "f"); ok && len(rest) > 0 && len(rest) <= 2 {
		if n, err := strconv.Atoi(rest); err == nil && rest[0] >= '1' && rest[0] <= '9' {
			if key, ok := macro.FunctionKey(n); ok {
				return key, nil
			}
		}
	}

	return macro.KeyNone, &unsupportedKeyError{name: normalized}
}
