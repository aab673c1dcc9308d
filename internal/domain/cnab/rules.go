package cnab

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// Limits of the CNAB fields
const (
	MinYear            = 1900
	SubjectIDLength    = 11
	MaxCardRefLength   = 12
	MaxOwnerNameLength = entity.MaxOwnerNameLength
	MaxStoreNameLength = entity.MaxStoreNameLength
)

// The helpers below are shared by Decoder and Validator; each returns "" when the value passes.

func checkTypeCode(code int) string {
	if code < 1 || code > 9 {
		return fmt.Sprintf("invalid transaction type %d: must be between 1 and 9", code)
	}
	return ""
}

func checkDate(date time.Time, now time.Time) string {
	if date.IsZero() {
		return "date is required"
	}
	maxYear := now.Year() + 1
	if date.Year() < MinYear || date.Year() > maxYear {
		return fmt.Sprintf("date year %d out of range [%d, %d]", date.Year(), MinYear, maxYear)
	}
	return ""
}

func checkAmount(amount int64) string {
	if amount <= 0 {
		return "amount must be greater than zero"
	}
	return ""
}

func checkSubjectID(id string) string {
	if len(id) != SubjectIDLength || !isDigits(id) {
		return fmt.Sprintf("invalid subject id %q: must be exactly %d digits", id, SubjectIDLength)
	}
	return ""
}

func checkCardRef(card string) string {
	if card == "" {
		return "card reference is required"
	}
	if len(card) > MaxCardRefLength {
		return fmt.Sprintf("card reference must have at most %d characters", MaxCardRefLength)
	}
	for i := 0; i < len(card); i++ {
		c := card[i]
		if !isAlphanumeric(c) && c != '*' {
			return fmt.Sprintf("invalid card reference %q: only letters, digits and '*' are allowed", card)
		}
	}
	return ""
}

func checkTimeOfDay(t entity.TimeOfDay) string {
	if !t.IsValid() {
		return fmt.Sprintf("invalid time %02d%02d%02d: hour, minute or second out of range", t.Hour, t.Minute, t.Second)
	}
	return ""
}

func checkName(field, value string, maxLength int) string {
	if value == "" {
		return fmt.Sprintf("%s is required", field)
	}
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Sprintf("%s must have at most %d characters", field, maxLength)
	}
	return ""
}

func checkSafety(field, value string) string {
	if !IsSafeText(value) {
		return fmt.Sprintf("field %s contains unsafe content", field)
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func lineError(lineNumber int, message string) string {
	return fmt.Sprintf("line %d: %s", lineNumber, message)
}
