package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBankcard_ObfuscatedNumber(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "XXXXXXXXXXXX1111"},
		{"4111 1111 1111 1111", "XXXXXXXXXXXX1111"},
		{"1234", "XXXX"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, Bankcard{Number: tt.number}.ObfuscatedNumber())
		})
	}
}
