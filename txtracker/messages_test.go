package txtracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeType(t *testing.T) {
	assert.Equal(t, "Swap", HumanizeType("swap"))
	assert.Equal(t, "Pool Add Liquidity", HumanizeType("pool_add_liquidity"))
	assert.Equal(t, "Nft Mint", HumanizeType("nft_mint"))
	assert.Equal(t, "Transaction", HumanizeType(""))
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Swap Completed", TitleFor("swap", StatusCompleted))
	assert.Equal(t, "Swap Rejected", TitleFor("swap", StatusValidationFailed))
	assert.Equal(t, "Swap Failed", TitleFor("swap", StatusFailed))
	assert.Equal(t, "Swap", TitleFor("swap", StatusSteemConfirmed))
}

func TestMessageForCompleted(t *testing.T) {
	cases := []struct {
		name string
		st   TransactionStatus
		want string
	}{
		{
			"collection created",
			TransactionStatus{Status: StatusCompleted, Type: "nft_create_collection",
				Result: map[string]interface{}{"symbol": "PUNKS"}},
			`NFT collection "PUNKS" created successfully`,
		},
		{
			"minted",
			TransactionStatus{Status: StatusCompleted, Type: "nft_mint",
				Result: map[string]interface{}{"collectionSymbol": "PUNKS"}},
			`NFT minted successfully in collection "PUNKS"`,
		},
		{
			"listed",
			TransactionStatus{Status: StatusCompleted, Type: "nft_list",
				Result: map[string]interface{}{"price": "10", "paymentTokenSymbol": "MEER"}},
			"NFT listed for 10 MEER",
		},
		{
			"buy with bid amount is a bid",
			TransactionStatus{Status: StatusCompleted, Type: "nft_buy",
				Result: map[string]interface{}{"bidAmount": "5 MEER"}},
			"Bid placed for 5 MEER",
		},
		{
			"buy without bid amount is a purchase",
			TransactionStatus{Status: StatusCompleted, Type: "nft_buy_item"},
			"NFT purchased successfully",
		},
		{
			"delisted",
			TransactionStatus{Status: StatusCompleted, Type: "nft_delist"},
			"NFT delisted successfully",
		},
		{
			"transferred",
			TransactionStatus{Status: StatusCompleted, Type: "nft_transfer",
				Result: map[string]interface{}{"to": "bob"}},
			"NFT transferred to bob",
		},
		{
			"bid accepted",
			TransactionStatus{Status: StatusCompleted, Type: "nft_accept_bid"},
			"Bid accepted successfully",
		},
		{
			"auction closed",
			TransactionStatus{Status: StatusCompleted, Type: "nft_close_auction"},
			"Auction closed successfully",
		},
		{
			"batch counts operations",
			TransactionStatus{Status: StatusCompleted, Type: "nft_batch_operations",
				Result: map[string]interface{}{"operations": []interface{}{1, 2, 3}}},
			"Batch operation completed (3 operations)",
		},
		{
			"generic completion",
			TransactionStatus{Status: StatusCompleted, Type: "token_transfer"},
			"Transaction completed successfully",
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, MessageFor(&c.st), c.name)
	}
}

func TestMessageForFailures(t *testing.T) {
	st := TransactionStatus{Status: StatusFailed, Type: "swap", Error: "insufficient balance"}
	assert.Equal(t, "insufficient balance", MessageFor(&st))

	st = TransactionStatus{Status: StatusValidationFailed, Type: "swap"}
	assert.Equal(t, "Transaction failed", MessageFor(&st))
}

func TestMessageForNumericResults(t *testing.T) {
	// json decoding hands numbers over as float64
	st := TransactionStatus{Status: StatusCompleted, Type: "nft_list",
		Result: map[string]interface{}{"price": float64(10), "paymentTokenSymbol": "MEER"}}
	assert.Equal(t, "NFT listed for 10 MEER", MessageFor(&st))
}
