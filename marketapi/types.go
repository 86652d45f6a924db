package marketapi

// Entities served by the sidechain REST api. The api returns more fields
// than the client needs; unknown ones are dropped on decode.

type Account struct {
	Name             string  `json:"name"`
	TotalVoteWeight  float64 `json:"totalVoteWeight,omitempty"`
	WitnessPublicKey string  `json:"witnessPublicKey,omitempty"`
}

type TokenBalance struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

type Token struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Issuer    string `json:"issuer"`
	Precision int    `json:"precision"`
}

type NFTCollection struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Creator      string `json:"creator"`
	MaxSupply    int64  `json:"maxSupply,omitempty"`
	Mintable     bool   `json:"mintable"`
	Burnable     bool   `json:"burnable,omitempty"`
	Transferable bool   `json:"transferable,omitempty"`
	CreatorFee   int64  `json:"creatorFee,omitempty"`
	Description  string `json:"description,omitempty"`
	LogoUrl      string `json:"logoUrl,omitempty"`
	WebsiteUrl   string `json:"websiteUrl,omitempty"`
	BannerImage  string `json:"bannerImage,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type NFTInstance struct {
	Id               string                 `json:"_id"`
	CollectionSymbol string                 `json:"collectionSymbol"`
	InstanceId       string                 `json:"instanceId"`
	Owner            string                 `json:"owner"`
	Properties       map[string]interface{} `json:"properties,omitempty"`
	Uri              string                 `json:"uri,omitempty"`
	CreatedAt        string                 `json:"createdAt,omitempty"`
}

type NFTListing struct {
	Id                 string  `json:"_id"`
	CollectionSymbol   string  `json:"collectionSymbol"`
	InstanceId         string  `json:"instanceId"`
	Seller             string  `json:"seller"`
	Price              float64 `json:"price"`
	PaymentTokenSymbol string  `json:"paymentTokenSymbol"`
	PaymentTokenIssuer string  `json:"paymentTokenIssuer,omitempty"`
	ListedAt           string  `json:"listedAt,omitempty"`
	// ACTIVE, SOLD or CANCELLED.
	Status string `json:"status"`
}

type NFTHistoryEntry struct {
	EventType     string `json:"eventType"`
	From          string `json:"from,omitempty"`
	To            string `json:"to,omitempty"`
	Timestamp     string `json:"timestamp"`
	TransactionId string `json:"transactionId"`
}

type NFTDelegation struct {
	NftId       string `json:"nftId"`
	DelegatedTo string `json:"delegatedTo"`
	DelegatedAt string `json:"delegatedAt"`
}

type Transaction struct {
	Id        string `json:"_id"`
	Sender    string `json:"sender"`
	Type      int    `json:"type"`
	Timestamp string `json:"timestamp"`
}

type Block struct {
	Height    int64  `json:"height"`
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
}

// Paged responses all share the {data, total, limit, skip} layout.

type AccountPage struct {
	Data  []Account `json:"data"`
	Total int       `json:"total"`
	Limit int       `json:"limit"`
	Skip  int       `json:"skip"`
}

type TransactionPage struct {
	Data  []Transaction `json:"data"`
	Total int           `json:"total"`
	Limit int           `json:"limit"`
	Skip  int           `json:"skip"`
}

type TokenPage struct {
	Data  []Token `json:"data"`
	Total int     `json:"total"`
	Limit int     `json:"limit"`
	Skip  int     `json:"skip"`
}

type CollectionPage struct {
	Data  []NFTCollection `json:"data"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
	Skip  int             `json:"skip"`
}

type InstancePage struct {
	Data  []NFTInstance `json:"data"`
	Total int           `json:"total"`
	Limit int           `json:"limit"`
	Skip  int           `json:"skip"`
}

type HistoryPage struct {
	Data  []NFTHistoryEntry `json:"data"`
	Total int               `json:"total"`
	Limit int               `json:"limit"`
	Skip  int               `json:"skip"`
}

type ListingPage struct {
	Data  []NFTListing `json:"data"`
	Total int          `json:"total"`
	Limit int          `json:"limit"`
	Skip  int          `json:"skip"`
}

type BlockPage struct {
	Data  []Block `json:"data"`
	Total int     `json:"total"`
	Limit int     `json:"limit"`
	Skip  int     `json:"skip"`
}

// PageQuery is the common limit/offset pair of the paged endpoints.
type PageQuery struct {
	Limit  int
	Offset int
}

type AccountQuery struct {
	PageQuery
	HasToken      string
	IsWitness     string
	SortBy        string
	SortDirection string
}

type CollectionQuery struct {
	PageQuery
	Creator       string
	SortBy        string
	SortDirection string
}

type InstanceQuery struct {
	PageQuery
	CollectionSymbol string
	Owner            string
	SortBy           string
	SortDirection    string
}

type ListingQuery struct {
	PageQuery
	CollectionSymbol   string
	Seller             string
	PaymentTokenSymbol string
	Status             string
	SortBy             string
	SortDirection      string
}
