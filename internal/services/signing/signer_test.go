package signing

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

func testOrder() domain.UnsignedOrder {
	return domain.UnsignedOrder{
		SellToken:         "0x6810e776880C02933D47DB1b9fc05908e5386b96",
		BuyToken:          "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Receiver:          "0x1111111111111111111111111111111111111111",
		SellAmount:        "160000000000000000",
		BuyAmount:         "18632013982",
		ValidTo:           1893456000,
		AppData:           "0x0000000000000000000000000000000000000000000000000000000000000000",
		FeeAmount:         "0",
		Kind:              domain.OrderKindSell,
		PartiallyFillable: false,
	}
}

func TestSignOrderRecoversSigner(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	owner := ethcrypto.PubkeyToAddress(key.PublicKey)

	signed, err := SignOrder(testOrder(), 1, key)
	require.NoError(t, err)
	require.Equal(t, owner.Hex(), signed.From)
	require.Equal(t, SchemeEIP712, signed.SigningScheme)

	sig, err := hexutil.Decode(signed.Signature)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	require.Contains(t, []byte{27, 28}, sig[64])

	digest, err := OrderDigest(testOrder(), 1)
	require.NoError(t, err)

	recSig := make([]byte, 65)
	copy(recSig, sig)
	recSig[64] -= 27
	pub, err := ethcrypto.SigToPub(digest, recSig)
	require.NoError(t, err)
	require.Equal(t, owner, ethcrypto.PubkeyToAddress(*pub))
}

func TestOrderDigestDeterministic(t *testing.T) {
	a, err := OrderDigest(testOrder(), 1)
	require.NoError(t, err)
	b, err := OrderDigest(testOrder(), 1)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 32)
}

func TestOrderDigestChangesWithOrder(t *testing.T) {
	base, err := OrderDigest(testOrder(), 1)
	require.NoError(t, err)

	bumped := testOrder()
	bumped.BuyAmount = "18632013983"
	changed, err := OrderDigest(bumped, 1)
	require.NoError(t, err)
	require.NotEqual(t, base, changed)

	otherChain, err := OrderDigest(testOrder(), 100)
	require.NoError(t, err)
	require.NotEqual(t, base, otherChain)
}

func TestOrderUIDLayout(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	order := testOrder()
	signed, err := SignOrder(order, 1, key)
	require.NoError(t, err)

	uid, err := hexutil.Decode(signed.OrderUID)
	require.NoError(t, err)
	require.Len(t, uid, 56)

	digest, err := OrderDigest(order, 1)
	require.NoError(t, err)
	require.Equal(t, digest, uid[:32])
	require.Equal(t, ethcommon.HexToAddress(signed.From).Bytes(), uid[32:52])
	require.Equal(t, []byte{0x70, 0xdb, 0xd8, 0x80}, uid[52:])
}

func TestSignOrderRejectsBadInput(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	noReceiver := testOrder()
	noReceiver.Receiver = "not-an-address"
	_, err = SignOrder(noReceiver, 1, key)
	require.ErrorIs(t, err, ErrInvalidReceiver)

	noAmounts := testOrder()
	noAmounts.SellAmount = ""
	_, err = SignOrder(noAmounts, 1, key)
	require.ErrorIs(t, err, ErrMissingAmounts)
}
