package txtracker

import (
	"strings"

	"github.com/meeray/market-go/streamsync"
)

// Explicit lifecycle markers sent by the sidechain processor.
const (
	evTransactionExecuted         = "TRANSACTION_EXECUTED"
	evTransactionFailed           = "TRANSACTION_FAILED"
	evTransactionError            = "TRANSACTION_ERROR"
	evTransactionValidationFailed = "TRANSACTION_VALIDATION_FAILED"
	evTransactionStarted          = "TRANSACTION_STARTED"
	evSteemConfirmed              = "STEEM_CONFIRMED"
)

// Domain actions that conclude an operation. An event carrying one of
// these is the operation's success signal even without an explicit
// TRANSACTION_EXECUTED marker.
var completionMarkers = map[string]bool{
	"nft_create_collection": true,
	"nft_update_collection": true,
	"nft_mint":              true,
	"nft_transfer":          true,
	"nft_list_item":         true,
	"nft_list":              true,
	"nft_delist_item":       true,
	"nft_delist":            true,
	"nft_buy_item":          true,
	"nft_buy":               true,
	"nft_bid":               true,
	"nft_accept_bid":        true,
	"nft_close_auction":     true,
	"nft_batch_operations":  true,

	"token_create":   true,
	"token_issue":    true,
	"token_transfer": true,
	"token_stake":    true,
	"token_unstake":  true,
	"token_burn":     true,

	"market_swap":         true,
	"market_buy":          true,
	"market_sell":         true,
	"market_cancel_order": true,

	"pool_swap":             true,
	"pool_create":           true,
	"pool_add_liquidity":    true,
	"pool_remove_liquidity": true,

	"farm_create":        true,
	"farm_stake":         true,
	"farm_unstake":       true,
	"farm_claim_rewards": true,

	"witness_vote":     true,
	"witness_unvote":   true,
	"witness_register": true,
	"witness_update":   true,

	// generic completion verbs some producers emit
	"listed":   true,
	"delisted": true,
	"swapped":  true,
	"minted":   true,
	"sold":     true,
	"bought":   true,
}

// Classify maps an inbound event to the status it implies, independent of
// any registry state. Pure, so the transition table is testable without a
// stream.
func Classify(ev *streamsync.Event) Status {
	marker := ev.Type
	if marker == "" {
		marker = ev.Action
	}

	switch marker {
	case evTransactionExecuted:
		return StatusCompleted
	case evTransactionValidationFailed:
		return StatusValidationFailed
	case evTransactionFailed, evTransactionError:
		return StatusFailed
	case evSteemConfirmed:
		return StatusSteemConfirmed
	case evTransactionStarted:
		return StatusSidechainProcessing
	}

	action := ev.Action
	if action == "" {
		action = ev.Type
	}
	lower := strings.ToLower(action)

	if strings.Contains(lower, "validation") && strings.Contains(lower, "fail") {
		return StatusValidationFailed
	}
	if strings.Contains(lower, "fail") || strings.Contains(lower, "error") {
		return StatusFailed
	}
	if completionMarkers[lower] {
		return StatusCompleted
	}

	// generic forward progress, no terminal conclusion
	return StatusSidechainProcessing
}
