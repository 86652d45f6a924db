package marketops

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeray/market-go/refreshbus"
	"github.com/meeray/market-go/steemauth"
	"github.com/meeray/market-go/txtracker"
)

func newTestService(t *testing.T) (*Service, *steemauth.SimSigner) {
	t.Helper()
	signer := steemauth.NewSimSigner("alice")
	tracker := txtracker.NewTracker(nil, signer, nil, nil, refreshbus.New())
	return NewService(tracker, signer), signer
}

func lastPayload(t *testing.T, signer *steemauth.SimSigner) (string, map[string]interface{}) {
	t.Helper()
	subs := signer.Submissions()
	require.NotEmpty(t, subs)
	last := subs[len(subs)-1]
	var env struct {
		Contract string                 `json:"contract"`
		Payload  map[string]interface{} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(last.Op.Json), &env))
	return env.Contract, env.Payload
}

func TestCreateCollectionFillsCreator(t *testing.T) {
	svc, signer := newTestService(t)

	h, err := svc.CreateCollection(CreateCollection{Symbol: "PUNKS", Name: "Punks"})
	require.NoError(t, err)
	assert.NotEmpty(t, h.Id)

	contract, payload := lastPayload(t, signer)
	assert.Equal(t, "nft_create_collection", contract)
	assert.Equal(t, "alice", payload["creator"])
	assert.Equal(t, "PUNKS", payload["symbol"])
	assert.Equal(t, h.Id, payload["_trackingId"])
}

func TestCreateCollectionValidation(t *testing.T) {
	svc, signer := newTestService(t)

	_, err := svc.CreateCollection(CreateCollection{Name: "no symbol"})
	assert.Error(t, err)

	_, err = svc.CreateCollection(CreateCollection{Symbol: "punks", Name: "lowercase symbol"})
	assert.Error(t, err)

	_, err = svc.CreateCollection(CreateCollection{Symbol: "PUNKS", Name: "Punks", RoyaltyBps: 20000})
	assert.Error(t, err)

	// nothing was broadcast
	assert.Empty(t, signer.Submissions())
}

func TestListNFTDefaultsToFixedPrice(t *testing.T) {
	svc, signer := newTestService(t)

	_, err := svc.ListNFT(ListNFT{
		CollectionSymbol:   "PUNKS",
		InstanceId:         "punk-1",
		Price:              "10.5",
		PaymentTokenSymbol: "MEER",
	})
	require.NoError(t, err)

	contract, payload := lastPayload(t, signer)
	assert.Equal(t, "nft_list_item", contract)
	assert.Equal(t, "FIXED_PRICE", payload["listingType"])
}

func TestListNFTRejectsBadAmounts(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListNFT(ListNFT{
		CollectionSymbol:   "PUNKS",
		InstanceId:         "punk-1",
		Price:              "ten",
		PaymentTokenSymbol: "MEER",
	})
	assert.Error(t, err)

	_, err = svc.ListNFT(ListNFT{
		CollectionSymbol:   "PUNKS",
		InstanceId:         "punk-1",
		Price:              "10",
		PaymentTokenSymbol: "MEER",
		ListingType:        "DUTCH",
	})
	assert.Error(t, err)
}

func TestBuyNFTDerivesBidType(t *testing.T) {
	svc, signer := newTestService(t)

	_, err := svc.BuyNFT(BuyNFT{ListingId: "l1", BidAmount: "5"})
	require.NoError(t, err)
	_, payload := lastPayload(t, signer)
	assert.Equal(t, "BID", payload["bidType"])

	_, err = svc.BuyNFT(BuyNFT{ListingId: "l2"})
	require.NoError(t, err)
	_, payload = lastPayload(t, signer)
	assert.Equal(t, "FULL_PRICE", payload["bidType"])
	_, hasBid := payload["bidAmount"]
	assert.False(t, hasBid)
}

func TestTransferRequiresRecipient(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.TransferNFT(TransferNFT{CollectionSymbol: "PUNKS", InstanceId: "punk-1"})
	assert.Error(t, err)

	_, err = svc.TransferNFT(TransferNFT{CollectionSymbol: "PUNKS", InstanceId: "punk-1", To: "bob"})
	assert.NoError(t, err)
}

func TestBatchOperations(t *testing.T) {
	svc, signer := newTestService(t)

	_, err := svc.BatchOperations(nil, true)
	assert.Error(t, err)

	_, err = svc.BatchOperations([]BatchOperation{
		{Operation: "LIST", Data: map[string]interface{}{"instanceId": "punk-1"}},
		{Operation: "TRANSFER", Data: map[string]interface{}{"to": "bob"}},
	}, true)
	require.NoError(t, err)

	contract, payload := lastPayload(t, signer)
	assert.Equal(t, "nft_batch_operations", contract)
	assert.Equal(t, true, payload["atomic"])
	ops, ok := payload["operations"].([]interface{})
	require.True(t, ok)
	assert.Len(t, ops, 2)

	_, err = svc.BatchOperations([]BatchOperation{
		{Operation: "BURN", Data: map[string]interface{}{}},
	}, false)
	assert.Error(t, err)
}

func TestDelistAndAuctionOps(t *testing.T) {
	svc, signer := newTestService(t)

	_, err := svc.DelistNFT("l1")
	require.NoError(t, err)
	contract, _ := lastPayload(t, signer)
	assert.Equal(t, "nft_delist_item", contract)

	_, err = svc.AcceptBid(AcceptBid{BidId: "b1", ListingId: "l1"})
	require.NoError(t, err)

	_, err = svc.CloseAuction(CloseAuction{ListingId: "l1", Force: true})
	require.NoError(t, err)
	contract, payload := lastPayload(t, signer)
	assert.Equal(t, "nft_close_auction", contract)
	assert.Equal(t, true, payload["force"])

	_, err = svc.CloseAuction(CloseAuction{})
	assert.Error(t, err)
}
