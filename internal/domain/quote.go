package domain

// OrderParameters is the raw quote returned by the order-book pricing service.
// Amounts are decimal strings in token atoms. For SELL orders buyAmount has
// the protocol fee already subtracted; for BUY orders sellAmount has it added.
// feeAmount is the network cost, denominated in the sell token.
type OrderParameters struct {
	SellToken         string    `json:"sellToken"`
	BuyToken          string    `json:"buyToken"`
	Receiver          string    `json:"receiver,omitempty"`
	SellAmount        string    `json:"sellAmount"`
	BuyAmount         string    `json:"buyAmount"`
	FeeAmount         string    `json:"feeAmount"`
	ValidTo           uint32    `json:"validTo"`
	AppData           string    `json:"appData"`
	Kind              OrderKind `json:"kind"`
	PartiallyFillable bool      `json:"partiallyFillable"`
	SellTokenBalance  string    `json:"sellTokenBalance,omitempty"`
	BuyTokenBalance   string    `json:"buyTokenBalance,omitempty"`
	SigningScheme     string    `json:"signingScheme,omitempty"`
}

// OrderQuoteRequest is the body of POST /api/v1/quote on the order-book API.
// Exactly one of SellAmountBeforeFee / BuyAmountAfterFee is set, matching the
// order kind.
type OrderQuoteRequest struct {
	From                string    `json:"from"`
	SellToken           string    `json:"sellToken"`
	BuyToken            string    `json:"buyToken"`
	Receiver            string    `json:"receiver,omitempty"`
	Kind                OrderKind `json:"kind"`
	SellAmountBeforeFee string    `json:"sellAmountBeforeFee,omitempty"`
	BuyAmountAfterFee   string    `json:"buyAmountAfterFee,omitempty"`
	ValidFor            uint32    `json:"validFor,omitempty"`
	AppData             string    `json:"appData,omitempty"`
	AppDataHash         string    `json:"appDataHash,omitempty"`
	PriceQuality        string    `json:"priceQuality,omitempty"`
	SigningScheme       string    `json:"signingScheme,omitempty"`
}

type OrderQuoteResponse struct {
	Quote      OrderParameters `json:"quote"`
	From       string          `json:"from,omitempty"`
	Expiration string          `json:"expiration"`
	ID         int64           `json:"id,omitempty"`
	Verified   bool            `json:"verified"`
}

type NativePriceResponse struct {
	Price float64 `json:"price"`
}

// TokenInfo is the metadata the engine needs about a traded token.
type TokenInfo struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol,omitempty"`
	Decimals uint8  `json:"decimals"`
}
