// Package signing hashes and signs orders with the settlement contract's
// EIP-712 domain, and derives the deterministic order UID the order book
// indexes orders by.
package signing

import (
	"crypto/ecdsa"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

const (
	domainName    = "Gnosis Protocol"
	domainVersion = "v2"

	// SettlementContract is the same address on every supported chain.
	SettlementContract = "0x9008D19f58AAbD9eD0D60971565AA8510560ab41"

	SchemeEIP712 = "eip712"

	BalanceERC20 = "erc20"
)

var (
	ErrInvalidReceiver = errors.New("invalid receiver address")
	ErrMissingAmounts  = errors.New("order amounts are required")
)

var orderTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Order": {
		{Name: "sellToken", Type: "address"},
		{Name: "buyToken", Type: "address"},
		{Name: "receiver", Type: "address"},
		{Name: "sellAmount", Type: "uint256"},
		{Name: "buyAmount", Type: "uint256"},
		{Name: "validTo", Type: "uint32"},
		{Name: "appData", Type: "bytes32"},
		{Name: "feeAmount", Type: "uint256"},
		{Name: "kind", Type: "string"},
		{Name: "partiallyFillable", Type: "bool"},
		{Name: "sellTokenBalance", Type: "string"},
		{Name: "buyTokenBalance", Type: "string"},
	},
}

// Domain returns the EIP-712 domain used for order signing on a chain.
func Domain(chainID int64) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              domainName,
		Version:           domainVersion,
		ChainId:           ethmath.NewHexOrDecimal256(chainID),
		VerifyingContract: SettlementContract,
	}
}

func typedData(order domain.UnsignedOrder, chainID int64) apitypes.TypedData {
	sellTokenBalance := order.SellTokenBalance
	if sellTokenBalance == "" {
		sellTokenBalance = BalanceERC20
	}
	buyTokenBalance := order.BuyTokenBalance
	if buyTokenBalance == "" {
		buyTokenBalance = BalanceERC20
	}

	return apitypes.TypedData{
		Types:       orderTypes,
		PrimaryType: "Order",
		Domain:      Domain(chainID),
		Message: apitypes.TypedDataMessage{
			"sellToken":         order.SellToken,
			"buyToken":          order.BuyToken,
			"receiver":          order.Receiver,
			"sellAmount":        order.SellAmount,
			"buyAmount":         order.BuyAmount,
			"validTo":           strconv.FormatUint(uint64(order.ValidTo), 10),
			"appData":           order.AppData,
			"feeAmount":         order.FeeAmount,
			"kind":              string(order.Kind),
			"partiallyFillable": order.PartiallyFillable,
			"sellTokenBalance":  sellTokenBalance,
			"buyTokenBalance":   buyTokenBalance,
		},
	}
}

// OrderDigest returns the EIP-712 hash of the order for the given chain.
func OrderDigest(order domain.UnsignedOrder, chainID int64) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData(order, chainID))
	if err != nil {
		return nil, fmt.Errorf("hash order: %w", err)
	}
	return hash, nil
}

// OrderUID is digest ++ owner ++ validTo, the 56-byte identifier the order
// book uses.
func OrderUID(digest []byte, owner ethcommon.Address, validTo uint32) string {
	uid := make([]byte, 0, 56)
	uid = append(uid, digest...)
	uid = append(uid, owner.Bytes()...)
	uid = binary.BigEndian.AppendUint32(uid, validTo)
	return hexutil.Encode(uid)
}

// SignOrder signs the order and returns it together with the signature and
// order UID, ready to be posted to the order book.
func SignOrder(order domain.UnsignedOrder, chainID int64, key *ecdsa.PrivateKey) (*domain.SignedOrder, error) {
	if order.SellAmount == "" || order.BuyAmount == "" {
		return nil, ErrMissingAmounts
	}
	if !ethcommon.IsHexAddress(order.Receiver) {
		return nil, ErrInvalidReceiver
	}

	digest, err := OrderDigest(order, chainID)
	if err != nil {
		return nil, err
	}

	sig, err := ethcrypto.Sign(digest, key)
	if err != nil {
		return nil, fmt.Errorf("sign order: %w", err)
	}
	// on-chain verification expects the legacy 27/28 recovery id
	sig[64] += 27

	owner := ethcrypto.PubkeyToAddress(key.PublicKey)

	return &domain.SignedOrder{
		UnsignedOrder: order,
		From:          owner.Hex(),
		Signature:     hexutil.Encode(sig),
		SigningScheme: SchemeEIP712,
		OrderUID:      OrderUID(digest, owner, order.ValidTo),
	}, nil
}
