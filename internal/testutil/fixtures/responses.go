// Package fixtures provides canned gateway documents and test data builders.
package fixtures

// Card numbers accepted by the PXPost UAT environment
const (
	CardVisa       = "4111111111111111"
	CardMastercard = "5431111111111111"
)

// Gateway references carried by SuccessfulResponse
const (
	SuccessDpsTxnRef    = "000000030884cdc6"
	SuccessDpsBillingID = "0000080023225598"
)

// SuccessfulResponse is an approved purchase with a billing id assigned
const SuccessfulResponse = `
<Txn>
    <Transaction success="1" reco="00" responseText="APPROVED" pxTxn="true">
        <Authorized>1</Authorized>
        <ReCo>00</ReCo>
        <RxDate>20090610225432</RxDate>
        <MerchantReference>Test Transaction</MerchantReference>
        <CardName>Visa</CardName>
        <AuthCode>105430</AuthCode>
        <Amount>1.23</Amount>
        <InputCurrencyName>AUD</InputCurrencyName>
        <CardHolderName>A ANDERSON</CardHolderName>
        <TxnType>Purchase</TxnType>
        <CardNumber>411111........11</CardNumber>
        <DateExpiry>1010</DateExpiry>
        <ProductId/>
        <AcquirerReCo/>
        <CardHolderResponseText>APPROVED</CardHolderResponseText>
        <CardHolderHelpText>The Transaction was approved</CardHolderHelpText>
        <CardHolderResponseDescription>
            The Transaction was approved
        </CardHolderResponseDescription>
        <MerchantResponseText>APPROVED</MerchantResponseText>
        <MerchantHelpText>The Transaction was approved</MerchantHelpText>
        <DpsTxnRef>000000030884cdc6</DpsTxnRef>
        <AllowRetry>1</AllowRetry>
        <DpsBillingId>0000080023225598</DpsBillingId>
        <BillingId/>
        <TransactionId>0884cdc6</TransactionId>
    </Transaction>
    <ReCo>00</ReCo>
    <ResponseText>APPROVED</ResponseText>
    <HelpText>Transaction Approved</HelpText>
    <Success>1</Success>
    <DpsTxnRef>000000030884cdc6</DpsTxnRef>
    <TxnRef>inv1278</TxnRef>
</Txn>
`

// DeclinedResponse is a purchase the issuer refused
const DeclinedResponse = `
<Txn>
    <Transaction success="0" reco="05" responseText="DO NOT HONOUR"
        pxTxn="true">
        <Authorized>0</Authorized>
        <ReCo>05</ReCo>
        <MerchantReference>25dc87c1be3053207d27003a5c2ccc7f</MerchantReference>
        <CardName>Visa</CardName>
        <AuthCode/>
        <Amount>23.99</Amount>
        <InputCurrencyName>AUD</InputCurrencyName>
        <CardHolderName>CLARE WATER</CardHolderName>
        <TxnType>Purchase</TxnType>
        <CardNumber>456472........83</CardNumber>
        <DateExpiry>0714</DateExpiry>
        <AcquirerReCo>04</AcquirerReCo>
        <AcquirerResponseText>DECLINED 04</AcquirerResponseText>
        <CardHolderResponseText>DECLINED (05)</CardHolderResponseText>
        <CardHolderHelpText>
            The transaction was not approved
        </CardHolderHelpText>
        <MerchantResponseText>DO NOT HONOUR</MerchantResponseText>
        <MerchantHelpText>The transaction was not approved</MerchantHelpText>
        <Cvc2ResultCode>NotUsed</Cvc2ResultCode>
        <DpsTxnRef>000000080985f6b6</DpsTxnRef>
        <AllowRetry>1</AllowRetry>
        <DpsBillingId>0000080023225598</DpsBillingId>
        <BillingId/>
    </Transaction>
    <ReCo>05</ReCo>
    <ResponseText>DO NOT HONOUR</ResponseText>
    <HelpText>The transaction was not approved</HelpText>
    <Success>0</Success>
    <DpsTxnRef>000000080985f6b6</DpsTxnRef>
    <TxnRef/>
</Txn>
`

// ErrorResponse is a request the gateway rejected without a card decline
const ErrorResponse = `
<Txn>
    <Transaction success="0" reco="QK" responseText="INVALID CARD NUMBER" pxTxn="true">
        <Authorized>0</Authorized>
        <ReCo>QK</ReCo>
        <CardHolderResponseText>INVALID CARD NUMBER</CardHolderResponseText>
        <CardHolderHelpText>An Invalid Card Number was entered. Check the card number</CardHolderHelpText>
        <DpsTxnRef/>
    </Transaction>
    <ReCo>QK</ReCo>
    <ResponseText>INVALID CARD NUMBER</ResponseText>
    <HelpText>An Invalid Card Number was entered</HelpText>
    <Success>0</Success>
</Txn>
`

// PurchaseRequest is a new-card purchase as sent to the gateway
const PurchaseRequest = `<Txn>` +
	`<PostUsername>TestUsername</PostUsername>` +
	`<PostPassword>TestPassword</PostPassword>` +
	`<CardHolderName>A Anderson</CardHolderName>` +
	`<CardNumber>4111111111111111</CardNumber>` +
	`<Amount>1.23</Amount>` +
	`<DateExpiry>1010</DateExpiry>` +
	`<Cvc2>3456</Cvc2>` +
	`<InputCurrency>NZD</InputCurrency>` +
	`<TxnType>Purchase</TxnType>` +
	`<TxnId>inv1278</TxnId>` +
	`<MerchantReference>Test Transaction</MerchantReference>` +
	`</Txn>`
