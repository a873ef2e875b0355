package payment

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

func validCard() CardDetails {
	return CardDetails{
		Number:     "4111 1111 1111 1111",
		NameOnCard: "Asha Verma",
		Expiry:     "11/27",
		CVV:        "123",
	}
}

func TestValidateCardAccepts(t *testing.T) {
	if err := ValidateCard(validCard(), testNow); err != nil {
		t.Fatalf("valid card rejected: %v", err)
	}
}

func TestValidateCardRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CardDetails)
		want   error
	}{
		{"15 digit number", func(c *CardDetails) { c.Number = "411111111111111" }, ErrCardNumberLength},
		{"17 digit number", func(c *CardDetails) { c.Number = "41111111111111111" }, ErrCardNumberLength},
		{"blank name", func(c *CardDetails) { c.NameOnCard = "   " }, ErrCardName},
		{"month 13", func(c *CardDetails) { c.Expiry = "13/25" }, ErrCardExpiryMonth},
		{"month 00", func(c *CardDetails) { c.Expiry = "00/27" }, ErrCardExpiryMonth},
		{"past month same year", func(c *CardDetails) { c.Expiry = "02/26" }, ErrCardExpired},
		{"past year", func(c *CardDetails) { c.Expiry = "12/25" }, ErrCardExpired},
		{"bad format", func(c *CardDetails) { c.Expiry = "2027-11" }, ErrCardExpiryFormat},
		{"2 digit cvv", func(c *CardDetails) { c.CVV = "12" }, ErrCardCVV},
		{"4 digit cvv", func(c *CardDetails) { c.CVV = "1234" }, ErrCardCVV},
		{"letters in cvv", func(c *CardDetails) { c.CVV = "12a" }, ErrCardCVV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)
			if err := ValidateCard(card, testNow); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateCardCurrentMonthAccepted(t *testing.T) {
	card := validCard()
	card.Expiry = "03/26"
	if err := ValidateCard(card, testNow); err != nil {
		t.Errorf("card expiring this month rejected: %v", err)
	}
}

func TestFormatCardNumber(t *testing.T) {
	got := FormatCardNumber("4111111111111111")
	if got != "4111 1111 1111 1111" {
		t.Errorf("FormatCardNumber = %q", got)
	}
}

func TestMaskCardNumber(t *testing.T) {
	got := MaskCardNumber("4111 1111 1111 1234")
	if got != "************1234" {
		t.Errorf("MaskCardNumber = %q", got)
	}
}
