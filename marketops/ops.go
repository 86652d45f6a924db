// Typed payloads for the NFT market contracts. Each payload validates
// itself before it is handed to the signer.

package marketops

import (
	"regexp"

	"github.com/jellydator/validation"
)

const (
	ContractCreateCollection = "nft_create_collection"
	ContractUpdateCollection = "nft_update_collection"
	ContractMint             = "nft_mint"
	ContractList             = "nft_list_item"
	ContractBuy              = "nft_buy_item"
	ContractDelist           = "nft_delist_item"
	ContractTransfer         = "nft_transfer"
	ContractAcceptBid        = "nft_accept_bid"
	ContractCloseAuction     = "nft_close_auction"
	ContractBatch            = "nft_batch_operations"
)

const (
	ListingFixedPrice     = "FIXED_PRICE"
	ListingAuction        = "AUCTION"
	ListingReserveAuction = "RESERVE_AUCTION"

	BidTypeBid       = "BID"
	BidTypeFullPrice = "FULL_PRICE"
)

var (
	amountRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	symbolRe = regexp.MustCompile(`^[A-Z0-9]{1,20}$`)
)

type CreateCollection struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Creator      string `json:"creator,omitempty"`
	MaxSupply    int64  `json:"maxSupply,omitempty"`
	RoyaltyBps   int64  `json:"royaltyBps,omitempty"`
	Description  string `json:"description,omitempty"`
	LogoUrl      string `json:"logoUrl,omitempty"`
	Transferable bool   `json:"transferable"`
	Burnable     bool   `json:"burnable"`
}

func (c CreateCollection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Symbol, validation.Required, validation.Match(symbolRe)),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&c.MaxSupply, validation.Min(int64(0))),
		validation.Field(&c.RoyaltyBps, validation.Min(int64(0)), validation.Max(int64(10000))),
	)
}

type UpdateCollection struct {
	CollectionSymbol string `json:"collectionSymbol"`
	Name             string `json:"name,omitempty"`
	Description      string `json:"description,omitempty"`
	LogoUrl          string `json:"logoUrl,omitempty"`
}

func (u UpdateCollection) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.CollectionSymbol, validation.Required, validation.Match(symbolRe)),
	)
}

type MintNFT struct {
	CollectionSymbol string                 `json:"collectionSymbol"`
	Owner            string                 `json:"owner"`
	Properties       map[string]interface{} `json:"properties,omitempty"`
	CoverUrl         string                 `json:"coverUrl,omitempty"`
}

func (m MintNFT) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CollectionSymbol, validation.Required, validation.Match(symbolRe)),
		validation.Field(&m.Owner, validation.Required),
	)
}

type ListNFT struct {
	CollectionSymbol   string `json:"collectionSymbol"`
	InstanceId         string `json:"instanceId"`
	Price              string `json:"price"`
	PaymentTokenSymbol string `json:"paymentTokenSymbol"`
	PaymentTokenIssuer string `json:"paymentTokenIssuer,omitempty"`
	// FIXED_PRICE when empty.
	ListingType         string `json:"listingType,omitempty"`
	AuctionEndTime      string `json:"auctionEndTime,omitempty"`
	ReservePrice        string `json:"reservePrice,omitempty"`
	AllowBuyNow         bool   `json:"allowBuyNow,omitempty"`
	MinimumBidIncrement string `json:"minimumBidIncrement,omitempty"`
}

func (l ListNFT) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.CollectionSymbol, validation.Required, validation.Match(symbolRe)),
		validation.Field(&l.InstanceId, validation.Required),
		validation.Field(&l.Price, validation.Required, validation.Match(amountRe)),
		validation.Field(&l.PaymentTokenSymbol, validation.Required, validation.Match(symbolRe)),
		validation.Field(&l.ListingType,
			validation.In(ListingFixedPrice, ListingAuction, ListingReserveAuction)),
		validation.Field(&l.ReservePrice, validation.Match(amountRe)),
		validation.Field(&l.MinimumBidIncrement, validation.Match(amountRe)),
	)
}

type BuyNFT struct {
	ListingId string `json:"listingId"`
	// Empty for a full-price purchase.
	BidAmount string `json:"bidAmount,omitempty"`
	// Derived from BidAmount when empty.
	BidType string `json:"bidType,omitempty"`
}

func (b BuyNFT) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.ListingId, validation.Required),
		validation.Field(&b.BidAmount, validation.Match(amountRe)),
		validation.Field(&b.BidType, validation.In(BidTypeBid, BidTypeFullPrice)),
	)
}

type DelistNFT struct {
	ListingId string `json:"listingId"`
}

func (d DelistNFT) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ListingId, validation.Required),
	)
}

type TransferNFT struct {
	CollectionSymbol string `json:"collectionSymbol"`
	InstanceId       string `json:"instanceId"`
	To               string `json:"to"`
}

func (t TransferNFT) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.CollectionSymbol, validation.Required, validation.Match(symbolRe)),
		validation.Field(&t.InstanceId, validation.Required),
		validation.Field(&t.To, validation.Required),
	)
}

type AcceptBid struct {
	BidId     string `json:"bidId"`
	ListingId string `json:"listingId"`
}

func (a AcceptBid) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.BidId, validation.Required),
		validation.Field(&a.ListingId, validation.Required),
	)
}

type CloseAuction struct {
	ListingId    string `json:"listingId"`
	WinningBidId string `json:"winningBidId,omitempty"`
	// Close before the end time regardless of bids.
	Force bool `json:"force,omitempty"`
}

func (c CloseAuction) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ListingId, validation.Required),
	)
}

type BatchOperation struct {
	// One of LIST, DELIST, BUY, BID, TRANSFER.
	Operation string                 `json:"operation"`
	Data      map[string]interface{} `json:"data"`
}

func (b BatchOperation) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Operation, validation.Required,
			validation.In("LIST", "DELIST", "BUY", "BID", "TRANSFER")),
		validation.Field(&b.Data, validation.Required),
	)
}

type BatchOperations struct {
	Operations []BatchOperation `json:"operations"`
	// All-or-nothing execution on the sidechain.
	Atomic bool `json:"atomic"`
}

func (b BatchOperations) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Operations, validation.Required, validation.Length(1, 50)),
	)
}
