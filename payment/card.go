package payment

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// CardDetails is the client-entered card form. Only the masked number is
// ever persisted; validation happens before any network activity.
type CardDetails struct {
	Number     string `json:"number"`
	NameOnCard string `json:"nameOnCard"`
	Expiry     string `json:"expiry"` // MM/YY
	CVV        string `json:"cvv"`
}

// Card validation failures, each its own message so the form can point at
// the offending field.
var (
	ErrCardNumberLength = errors.New("card number must be 16 digits")
	ErrCardName         = errors.New("name on card must not be blank")
	ErrCardExpiryFormat = errors.New("expiry must be in MM/YY format")
	ErrCardExpiryMonth  = errors.New("expiry month must be between 01 and 12")
	ErrCardExpired      = errors.New("card expiry must not be in the past")
	ErrCardCVV          = errors.New("CVV must be exactly 3 digits")
)

// NormalizeCardNumber strips spaces and dashes from a card number.
func NormalizeCardNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber groups a normalized number in 4s for display.
func FormatCardNumber(number string) string {
	digits := NormalizeCardNumber(number)
	var groups []string
	for len(digits) > 4 {
		groups = append(groups, digits[:4])
		digits = digits[4:]
	}
	groups = append(groups, digits)
	return strings.Join(groups, " ")
}

// MaskCardNumber keeps only the last four digits.
func MaskCardNumber(number string) string {
	digits := NormalizeCardNumber(number)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// ValidateCard applies every card rule against now, returning the first
// failing rule's error. A failing card never reaches the network.
func ValidateCard(card CardDetails, now time.Time) error {
	if len(NormalizeCardNumber(card.Number)) != 16 {
		return ErrCardNumberLength
	}
	if strings.TrimSpace(card.NameOnCard) == "" {
		return ErrCardName
	}

	parts := strings.Split(card.Expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return ErrCardExpiryFormat
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return ErrCardExpiryFormat
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return ErrCardExpiryFormat
	}
	if month < 1 || month > 12 {
		return ErrCardExpiryMonth
	}
	// expiry year is two digits in the card's century
	expYear := 2000 + year
	if expYear < now.Year() || (expYear == now.Year() && month < int(now.Month())) {
		return ErrCardExpired
	}

	if len(card.CVV) != 3 {
		return ErrCardCVV
	}
	for _, r := range card.CVV {
		if !unicode.IsDigit(r) {
			return ErrCardCVV
		}
	}
	return nil
}
