package domain

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

type OrderKind string

const (
	OrderKindSell OrderKind = "sell"
	OrderKindBuy  OrderKind = "buy"
)

func (k OrderKind) IsSell() bool {
	return k == OrderKindSell
}

func (k OrderKind) Valid() bool {
	return k == OrderKindSell || k == OrderKindBuy
}

var ErrInvalidTokenAmount = errors.New("invalid token amount")

// ParseTokenAmount parses a decimal-string token amount in atoms. Amounts must
// be non-negative and fit an unsigned 256-bit integer, matching on-chain
// token balances.
func ParseTokenAmount(s string) (*big.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, ErrInvalidTokenAmount
	}
	return v.ToBig(), nil
}

// AmountPair is a sell/buy amount snapshot at one stage of the fee pipeline.
type AmountPair struct {
	SellAmount *big.Int `json:"sellAmount"`
	BuyAmount  *big.Int `json:"buyAmount"`
}

// QuoteParameters is the immutable input of the amounts engine. The raw
// amounts are exactly what the pricing service returned: for SELL orders
// BuyAmountRaw already has the protocol fee subtracted, for BUY orders
// SellAmountRaw already has it added.
type QuoteParameters struct {
	Kind              OrderKind
	SellAmountRaw     *big.Int
	BuyAmountRaw      *big.Int
	NetworkCostRaw    *big.Int
	SellTokenDecimals uint8
	BuyTokenDecimals  uint8
	ProtocolFeeBps    BasisPoints
	PartnerFeeBps     BasisPoints
	SlippageBps       BasisPoints
}

type NetworkFee struct {
	AmountInSellCurrency *big.Int `json:"amountInSellCurrency"`
	AmountInBuyCurrency  *big.Int `json:"amountInBuyCurrency"`
}

// FeeWithBps reports a fee both as an absolute amount in the surplus currency
// and as the rate it was derived from.
type FeeWithBps struct {
	Amount *big.Int    `json:"amount"`
	Bps    BasisPoints `json:"bps"`
}

type CostBreakdown struct {
	NetworkFee  NetworkFee `json:"networkFee"`
	PartnerFee  FeeWithBps `json:"partnerFee"`
	ProtocolFee FeeWithBps `json:"protocolFee"`
}

// QuoteAmountsAndCosts is the full amount ladder of a quote. Each pair is the
// state after one more deduction (SELL orders) or addition (BUY orders) on the
// surplus side; the fixed side never changes past network-cost attribution.
type QuoteAmountsAndCosts struct {
	IsSell bool          `json:"isSell"`
	Costs  CostBreakdown `json:"costs"`

	BeforeAllFees      AmountPair `json:"beforeAllFees"`
	BeforeNetworkCosts AmountPair `json:"beforeNetworkCosts"`
	AfterNetworkCosts  AmountPair `json:"afterNetworkCosts"`
	AfterPartnerFees   AmountPair `json:"afterPartnerFees"`
	AfterSlippage      AmountPair `json:"afterSlippage"`
}

// UnsignedOrder is the order struct that gets hashed and signed. Amounts are
// the after-slippage pair, so the signed order is fillable at the worst
// accepted price.
type UnsignedOrder struct {
	SellToken         string    `json:"sellToken"`
	BuyToken          string    `json:"buyToken"`
	Receiver          string    `json:"receiver"`
	SellAmount        string    `json:"sellAmount"`
	BuyAmount         string    `json:"buyAmount"`
	ValidTo           uint32    `json:"validTo"`
	AppData           string    `json:"appData"`
	FeeAmount         string    `json:"feeAmount"`
	Kind              OrderKind `json:"kind"`
	PartiallyFillable bool      `json:"partiallyFillable"`
	SellTokenBalance  string    `json:"sellTokenBalance"`
	BuyTokenBalance   string    `json:"buyTokenBalance"`
}

type SignedOrder struct {
	UnsignedOrder
	From          string `json:"from"`
	Signature     string `json:"signature"`
	SigningScheme string `json:"signingScheme"`
	OrderUID      string `json:"orderUid"`
}
