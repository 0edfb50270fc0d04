package domain

import "strings"

// Bankcard holds the cardholder-supplied details for a new-card transaction.
// ExpiryDate and StartDate use the MMYY shape the gateway expects.
type Bankcard struct {
	HolderName  string
	Number      string
	ExpiryDate  string
	StartDate   string // optional issue date
	IssueNumber string // optional, some debit cards only
	CVV         string
}

// ObfuscatedNumber returns the card number with all but the last four digits masked
func (c Bankcard) ObfuscatedNumber() string {
	n := strings.ReplaceAll(c.Number, " ", "")
	if len(n) <= 4 {
		return strings.Repeat("X", len(n))
	}
	return strings.Repeat("X", len(n)-4) + n[len(n)-4:]
}
