package pxpost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/pxpost/internal/domain"
	"github.com/kevin07696/pxpost/internal/testutil/fixtures"
)

func TestParseResponse_Successful(t *testing.T) {
	resp, err := ParseResponse(fixtures.SuccessfulResponse)
	require.NoError(t, err)

	assert.True(t, resp.Present)
	assert.Equal(t, 1, resp.Success)
	assert.Equal(t, "00", resp.ResponseCode)
	assert.Equal(t, "APPROVED", resp.ResponseText)
	assert.Equal(t, 1, resp.Authorized)
	assert.Equal(t, "105430", resp.AuthCode)
	assert.Equal(t, "inv1278", resp.TxnRef)
	assert.Equal(t, fixtures.SuccessDpsTxnRef, resp.DpsTxnRef)
	assert.Equal(t, fixtures.SuccessDpsBillingID, resp.DpsBillingID)
	assert.Equal(t, "The Transaction was approved", resp.CardHolderHelpText)
	assert.Equal(t, "Transaction Approved", resp.HelpText)
	assert.Equal(t, "APPROVED", resp.CardHolderResponseText)
	assert.Equal(t, fixtures.SuccessfulResponse, resp.RawXML)

	assert.True(t, resp.IsSuccessful())
	assert.False(t, resp.IsDeclined())
	assert.Equal(t, "The Transaction was approved", resp.Message())
}

func TestParseResponse_Declined(t *testing.T) {
	resp, err := ParseResponse(fixtures.DeclinedResponse)
	require.NoError(t, err)

	assert.True(t, resp.Present)
	assert.Equal(t, 0, resp.Success)
	assert.Equal(t, "05", resp.ResponseCode)
	assert.Equal(t, "DO NOT HONOUR", resp.ResponseText)
	assert.Equal(t, 0, resp.Authorized)
	assert.Empty(t, resp.AuthCode)
	assert.Equal(t, "DECLINED (05)", resp.CardHolderResponseText)
	assert.Equal(t, "The transaction was not approved", resp.CardHolderHelpText)
	assert.Equal(t, "0000080023225598", resp.DpsBillingID)

	assert.False(t, resp.IsSuccessful())
	assert.True(t, resp.IsDeclined())
}

func TestParseResponse_Error(t *testing.T) {
	resp, err := ParseResponse(fixtures.ErrorResponse)
	require.NoError(t, err)

	assert.True(t, resp.Present)
	assert.False(t, resp.IsSuccessful())
	assert.False(t, resp.IsDeclined())
	assert.Empty(t, resp.DpsTxnRef)
	assert.Equal(t, "An Invalid Card Number was entered. Check the card number", resp.Message())
}

func TestParseResponse_Absent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", " \n\t "},
		{"bare declaration", `<?xml version="1.0" ?>`},
		{"bare declaration padded", "\n<?xml version=\"1.0\" ?>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.raw)
			require.NoError(t, err)
			assert.False(t, resp.Present)
			assert.False(t, resp.IsSuccessful())
			assert.False(t, resp.IsDeclined())
			assert.Equal(t, NoResponseMessage, resp.Message())
			assert.Equal(t, tt.raw, resp.RawXML)
		})
	}
}

func TestParseResponse_PresentButEmpty(t *testing.T) {
	resp, err := ParseResponse("<Txn></Txn>")
	require.NoError(t, err)

	assert.True(t, resp.Present)
	assert.Equal(t, 0, resp.Success)
	assert.Equal(t, 0, resp.Authorized)
	assert.Empty(t, resp.DpsTxnRef)
	assert.Equal(t, NoResponseMessage, resp.Message())
}

func TestParseResponse_NonNumericFlags(t *testing.T) {
	resp, err := ParseResponse(`<Txn><Transaction success="yes"><Authorized>maybe</Authorized></Transaction></Txn>`)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Success)
	assert.Equal(t, 0, resp.Authorized)
}

func TestParseResponse_FirstOccurrenceWins(t *testing.T) {
	raw := `<Txn>
		<Transaction success="1"><DpsTxnRef>first</DpsTxnRef><HelpText>inner</HelpText></Transaction>
		<DpsTxnRef>second</DpsTxnRef>
		<HelpText>outer</HelpText>
	</Txn>`

	resp, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "first", resp.DpsTxnRef)
	assert.Equal(t, "inner", resp.HelpText)
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"mismatched tags", "<Txn><Success>1</Txn>"},
		{"unclosed root", "<Txn><Success>1</Success>"},
		{"broken attribute", `<Txn><Transaction success=1></Transaction></Txn>`},
		{"plain text body", "Service Unavailable"},
		{"second root element", "<Txn></Txn><Txn></Txn>"},
		{"text after root", "<Txn><Success>1</Success></Txn>trailing junk"},
		{"text before root", "error: <Txn></Txn>"},
		{"declaration only with encoding", `<?xml version="1.0" encoding="utf-8"?>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.raw)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
		})
	}
}
