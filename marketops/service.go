package marketops

import (
	"encoding/json"
	"fmt"

	"github.com/jellydator/validation"

	"github.com/meeray/market-go/steemauth"
	"github.com/meeray/market-go/txtracker"
)

// Service builds, validates and submits market operations through the
// transaction tracker.
type Service struct {
	tracker *txtracker.Tracker
	signer  steemauth.Signer
}

func NewService(tracker *txtracker.Tracker, signer steemauth.Signer) *Service {
	return &Service{tracker: tracker, signer: signer}
}

func (s *Service) CreateCollection(op CreateCollection) (*txtracker.Handle, error) {
	if op.Creator == "" {
		op.Creator = s.signer.Username()
	}
	return s.submit(ContractCreateCollection, op)
}

func (s *Service) UpdateCollection(op UpdateCollection) (*txtracker.Handle, error) {
	return s.submit(ContractUpdateCollection, op)
}

func (s *Service) MintNFT(op MintNFT) (*txtracker.Handle, error) {
	if op.Owner == "" {
		op.Owner = s.signer.Username()
	}
	return s.submit(ContractMint, op)
}

func (s *Service) ListNFT(op ListNFT) (*txtracker.Handle, error) {
	if op.ListingType == "" {
		op.ListingType = ListingFixedPrice
	}
	return s.submit(ContractList, op)
}

// BuyNFT places a bid when BidAmount is set and a full-price purchase
// otherwise.
func (s *Service) BuyNFT(op BuyNFT) (*txtracker.Handle, error) {
	if op.BidType == "" {
		if op.BidAmount != "" {
			op.BidType = BidTypeBid
		} else {
			op.BidType = BidTypeFullPrice
		}
	}
	return s.submit(ContractBuy, op)
}

func (s *Service) DelistNFT(listingId string) (*txtracker.Handle, error) {
	return s.submit(ContractDelist, DelistNFT{ListingId: listingId})
}

func (s *Service) TransferNFT(op TransferNFT) (*txtracker.Handle, error) {
	return s.submit(ContractTransfer, op)
}

func (s *Service) AcceptBid(op AcceptBid) (*txtracker.Handle, error) {
	return s.submit(ContractAcceptBid, op)
}

func (s *Service) CloseAuction(op CloseAuction) (*txtracker.Handle, error) {
	return s.submit(ContractCloseAuction, op)
}

func (s *Service) BatchOperations(ops []BatchOperation, atomic bool) (*txtracker.Handle, error) {
	return s.submit(ContractBatch, BatchOperations{Operations: ops, Atomic: atomic})
}

func (s *Service) submit(contract string, op validation.Validatable) (*txtracker.Handle, error) {
	if err := op.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", contract, err)
	}
	payload, err := payloadMap(op)
	if err != nil {
		return nil, err
	}
	return s.tracker.Submit(contract, payload, contract)
}

// payloadMap flattens the typed payload into the generic form the
// envelope carries.
func payloadMap(op interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	m := make(map[string]interface{})
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return m, nil
}
