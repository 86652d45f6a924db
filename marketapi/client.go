// Read-only client of the sidechain REST api: accounts, tokens, NFT
// collections and instances, market listings, blocks.

package marketapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/meeray/market-go/common"
)

var ErrNotFound = errors.New("not found")

type Client struct {
	cfg  *Config
	http *http.Client

	// Token precision cache for the amount formatting helpers.
	mu         sync.RWMutex
	precisions map[string]int
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:        cfg,
		http:       &http.Client{Timeout: cfg.Timeout},
		precisions: make(map[string]int),
	}
}

// ===== Accounts =====

func (c *Client) GetAccount(name string) (*Account, error) {
	var out struct {
		Success bool    `json:"success"`
		Account Account `json:"account"`
	}
	if err := c.getJSON("/accounts/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

func (c *Client) GetAccounts(q *AccountQuery) (*AccountPage, error) {
	v := url.Values{}
	if q != nil {
		q.PageQuery.apply(v)
		setIf(v, "hasToken", q.HasToken)
		setIf(v, "isWitness", q.IsWitness)
		setIf(v, "sortBy", q.SortBy)
		setIf(v, "sortDirection", q.SortDirection)
	}
	var out AccountPage
	if err := c.getJSON("/accounts", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAccountHistory(name string, q *PageQuery) (*TransactionPage, error) {
	var out TransactionPage
	if err := c.getJSON("/accounts/"+url.PathEscape(name)+"/transactions", pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAccountTokens(name string) ([]TokenBalance, error) {
	var out struct {
		Success bool           `json:"success"`
		Account string         `json:"account"`
		Tokens  []TokenBalance `json:"tokens"`
	}
	if err := c.getJSON("/accounts/"+url.PathEscape(name)+"/tokens", nil, &out); err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// ===== Tokens =====

func (c *Client) GetTokens(q *PageQuery) (*TokenPage, error) {
	var out TokenPage
	if err := c.getJSON("/tokens", pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetToken(symbol string) (*Token, error) {
	var out Token
	if err := c.getJSON("/tokens/"+url.PathEscape(symbol), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchTokensByName(name string, q *PageQuery) (*TokenPage, error) {
	var out TokenPage
	if err := c.getJSON("/tokens/name/"+url.PathEscape(name), pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Precision resolves the display precision of a token, consulting the
// native defaults first, then the api, caching the answer.
func (c *Client) Precision(symbol string) (int, error) {
	if p, ok := common.DefaultPrecisions[symbol]; ok {
		return p, nil
	}

	c.mu.RLock()
	p, ok := c.precisions[symbol]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	tok, err := c.GetToken(symbol)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.precisions[symbol] = tok.Precision
	c.mu.Unlock()
	return tok.Precision, nil
}

// ===== NFT collections =====

func (c *Client) GetCollections(q *CollectionQuery) (*CollectionPage, error) {
	v := url.Values{}
	if q != nil {
		q.PageQuery.apply(v)
		setIf(v, "creator", q.Creator)
		setIf(v, "sortBy", q.SortBy)
		setIf(v, "sortDirection", q.SortDirection)
	}
	var out CollectionPage
	if err := c.getJSON("/nfts/collections", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCollection(symbol string) (*NFTCollection, error) {
	var out NFTCollection
	if err := c.getJSON("/nfts/collections/"+url.PathEscape(symbol), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCollectionsByCreator(creator string, q *PageQuery) (*CollectionPage, error) {
	var out CollectionPage
	if err := c.getJSON("/nfts/collections/creator/"+url.PathEscape(creator), pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ===== NFT instances =====

func (c *Client) GetInstances(q *InstanceQuery) (*InstancePage, error) {
	v := url.Values{}
	if q != nil {
		q.PageQuery.apply(v)
		setIf(v, "collectionSymbol", q.CollectionSymbol)
		setIf(v, "owner", q.Owner)
		setIf(v, "sortBy", q.SortBy)
		setIf(v, "sortDirection", q.SortDirection)
	}
	var out InstancePage
	if err := c.getJSON("/nfts/instances", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInstancesByCollection(symbol string, q *PageQuery) (*InstancePage, error) {
	var out InstancePage
	if err := c.getJSON("/nfts/instances/collection/"+url.PathEscape(symbol), pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInstancesByOwner(owner string, q *PageQuery) (*InstancePage, error) {
	var out InstancePage
	if err := c.getJSON("/nfts/instances/owner/"+url.PathEscape(owner), pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInstance(nftId string) (*NFTInstance, error) {
	var out NFTInstance
	if err := c.getJSON("/nfts/instances/id/"+url.PathEscape(nftId), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInstanceHistory(nftId string, q *PageQuery) (*HistoryPage, error) {
	var out HistoryPage
	if err := c.getJSON("/nfts/instances/id/"+url.PathEscape(nftId)+"/history", pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInstanceDelegations(nftId string) (*NFTDelegation, error) {
	var out NFTDelegation
	if err := c.getJSON("/nfts/instances/id/"+url.PathEscape(nftId)+"/delegations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetInstancesDelegatedTo(user string, q *PageQuery) (*InstancePage, error) {
	var out InstancePage
	if err := c.getJSON("/nfts/instances/delegatedto/"+url.PathEscape(user), pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ===== Market listings =====

func (c *Client) GetListings(q *ListingQuery) (*ListingPage, error) {
	v := url.Values{}
	if q != nil {
		q.PageQuery.apply(v)
		setIf(v, "collectionSymbol", q.CollectionSymbol)
		setIf(v, "seller", q.Seller)
		setIf(v, "paymentTokenSymbol", q.PaymentTokenSymbol)
		setIf(v, "status", q.Status)
		setIf(v, "sortBy", q.SortBy)
		setIf(v, "sortDirection", q.SortDirection)
	}
	var out ListingPage
	if err := c.getJSON("/nfts/listings", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetListingByNft(nftId string) (*NFTListing, error) {
	var out NFTListing
	if err := c.getJSON("/nfts/listings/nft/"+url.PathEscape(nftId), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetListingsBySeller(seller string, q *PageQuery) (*ListingPage, error) {
	var out ListingPage
	if err := c.getJSON("/nfts/listings/seller/"+url.PathEscape(seller), pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetListingsByCollection(symbol string, q *PageQuery) (*ListingPage, error) {
	var out ListingPage
	if err := c.getJSON("/nfts/listings/collection/"+url.PathEscape(symbol), pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ===== Blocks =====

func (c *Client) GetBlocks(q *PageQuery) (*BlockPage, error) {
	var out BlockPage
	if err := c.getJSON("/blocks", pageValues(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLatestBlock() (*Block, error) {
	var out struct {
		Success bool  `json:"success"`
		Block   Block `json:"block"`
	}
	if err := c.getJSON("/blocks/latest", nil, &out); err != nil {
		return nil, err
	}
	return &out.Block, nil
}

func (c *Client) GetBlockByHeight(height int64) (*Block, error) {
	var out struct {
		Success bool  `json:"success"`
		Block   Block `json:"block"`
	}
	if err := c.getJSON("/blocks/height/"+strconv.FormatInt(height, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out.Block, nil
}

func (c *Client) GetBlockByHash(hash string) (*Block, error) {
	var out struct {
		Success bool  `json:"success"`
		Block   Block `json:"block"`
	}
	if err := c.getJSON("/blocks/hash/"+url.PathEscape(hash), nil, &out); err != nil {
		return nil, err
	}
	return &out.Block, nil
}

func (c *Client) GetBlockTransactions(height int64) ([]Transaction, error) {
	var out struct {
		Success      bool          `json:"success"`
		BlockHeight  int64         `json:"blockHeight"`
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.getJSON("/blocks/"+strconv.FormatInt(height, 10)+"/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// ===== Plumbing =====

func (c *Client) getJSON(path string, query url.Values, out interface{}) error {
	u := strings.TrimRight(c.cfg.BaseUrl, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := c.http.Get(u)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (q PageQuery) apply(v url.Values) {
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
}

func pageValues(q *PageQuery) url.Values {
	v := url.Values{}
	if q != nil {
		q.apply(v)
	}
	return v
}

func setIf(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}
