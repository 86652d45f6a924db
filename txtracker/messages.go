package txtracker

import (
	"fmt"
	"strings"
)

// TitleFor renders "swap" + COMPLETED as "Swap Completed" etc.
func TitleFor(opType string, status Status) string {
	name := HumanizeType(opType)
	switch status {
	case StatusCompleted:
		return name + " Completed"
	case StatusValidationFailed:
		return name + " Rejected"
	case StatusFailed:
		return name + " Failed"
	default:
		return name
	}
}

// HumanizeType turns "pool_add_liquidity" into "Pool Add Liquidity".
func HumanizeType(opType string) string {
	if opType == "" {
		return "Transaction"
	}
	words := strings.Split(strings.ReplaceAll(opType, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// MessageFor derives the user-facing message of a terminal record from
// the operation type and the concluding event payload.
func MessageFor(st *TransactionStatus) string {
	if st.Status != StatusCompleted {
		if st.Error != "" {
			return st.Error
		}
		return "Transaction failed"
	}

	r := st.Result
	switch st.Type {
	case "nft_create_collection":
		return fmt.Sprintf("NFT collection %q created successfully", resultStr(r, "symbol"))
	case "nft_mint":
		return fmt.Sprintf("NFT minted successfully in collection %q", resultStr(r, "collectionSymbol"))
	case "nft_list", "nft_list_item":
		return fmt.Sprintf("NFT listed for %s %s", resultStr(r, "price"), resultStr(r, "paymentTokenSymbol"))
	case "nft_buy", "nft_buy_item":
		if bid := resultStr(r, "bidAmount"); bid != "" {
			return "Bid placed for " + bid
		}
		return "NFT purchased successfully"
	case "nft_delist", "nft_delist_item":
		return "NFT delisted successfully"
	case "nft_transfer":
		return "NFT transferred to " + resultStr(r, "to")
	case "nft_accept_bid":
		return "Bid accepted successfully"
	case "nft_close_auction":
		return "Auction closed successfully"
	case "nft_batch_operations":
		n := 0
		if r != nil {
			if ops, ok := r["operations"].([]interface{}); ok {
				n = len(ops)
			}
		}
		return fmt.Sprintf("Batch operation completed (%d operations)", n)
	default:
		return "Transaction completed successfully"
	}
}

func resultStr(r map[string]interface{}, key string) string {
	if r == nil {
		return ""
	}
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		s := fmt.Sprintf("%f", v)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
