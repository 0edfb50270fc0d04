package fixtures

import "github.com/kevin07696/pxpost/internal/domain"

// ValidBankcard returns a Visa card that passes request validation.
func ValidBankcard() domain.Bankcard {
	return domain.Bankcard{
		HolderName: "Frankie",
		Number:     CardVisa,
		ExpiryDate: "1015",
		StartDate:  "1010",
		CVV:        "123",
	}
}
