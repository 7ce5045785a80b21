// README: Dealership context for conversations (name, WhatsApp number, active flag).
package dealership

import (
	"errors"
	"strings"
	"unicode"
)

var ErrNotFound = errors.New("dealership not found")

type Dealership struct {
	ID             int64
	Name           string
	WhatsAppNumber string
	Active         bool
}

// DigitsOnly strips everything but digits so "+55 (11) 9999-0000" compares equal to "551199990000".
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
