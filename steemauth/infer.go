package steemauth

import "encoding/json"

// Contracts mapped to the operation types used for refresh routing and
// titles. Market and pool swaps collapse into one "swap" type.
var contractTypes = map[string]string{
	"token_create":   "token_create",
	"token_issue":    "token_issue",
	"token_transfer": "token_transfer",
	"token_stake":    "token_stake",
	"token_unstake":  "token_unstake",
	"token_burn":     "token_burn",

	"market_swap":         "swap",
	"market_buy":          "market_buy",
	"market_sell":         "market_sell",
	"market_cancel_order": "market_cancel_order",

	"pool_swap":             "swap",
	"pool_create":           "pool_create",
	"pool_add_liquidity":    "pool_add_liquidity",
	"pool_remove_liquidity": "pool_remove_liquidity",

	"farm_create":        "farm_create",
	"farm_stake":         "farm_stake",
	"farm_unstake":       "farm_unstake",
	"farm_claim_rewards": "farm_claim_rewards",

	"nft_create_collection": "nft_create_collection",
	"nft_mint":              "nft_mint",
	"nft_transfer":          "nft_transfer",
	"nft_list":              "nft_list",
	"nft_delist":            "nft_delist",
	"nft_buy":               "nft_buy",
	"nft_bid":               "nft_bid",

	"witness_vote":     "witness_vote",
	"witness_unvote":   "witness_unvote",
	"witness_register": "witness_register",
	"witness_update":   "witness_update",
}

// InferType derives the operation type of a broadcast operation. Plain
// base chain operations keep their name; custom_json operations map via
// the embedded contract.
func InferType(opKind string, op *CustomJsonOperation) string {
	if opKind != "custom_json" || op == nil {
		return opKind
	}

	var env sidechainEnvelope
	if err := json.Unmarshal([]byte(op.Json), &env); err != nil || env.Contract == "" {
		return "custom_json"
	}
	if t, ok := contractTypes[env.Contract]; ok {
		return t
	}
	return env.Contract
}
