package core

// TokenTag identifies a fungible token type
type TokenTag string

const (
	// TokenWrappedETH wrapped eth
	TokenWrappedETH TokenTag = "WrappedETH"
	// TokenWrappedUSDC wrapped usdc
	TokenWrappedUSDC TokenTag = "WrappedUSDC"
	// TokenFlow flow
	TokenFlow TokenTag = "FlowToken"
)

func (t TokenTag) String() string {
	return string(t)
}

// Token token config
type Token struct {
	Tag     TokenTag `json:"tag" valid:"required"`
	Symbol  string   `json:"symbol" valid:"required"`
	Name    string   `json:"name"`
	AssetID string   `json:"asset_id"`
}

// Tokens supported tokens
type Tokens []Token

// DefaultTokens the vaults opened by default
func DefaultTokens() Tokens {
	return Tokens{
		{Tag: TokenWrappedETH, Symbol: "WETH", Name: "Wrapped ETH"},
		{Tag: TokenWrappedUSDC, Symbol: "USDC", Name: "USDC"},
		{Tag: TokenFlow, Symbol: "FLOW", Name: "FLOW"},
	}
}

// Find find token by tag
func (ts Tokens) Find(tag TokenTag) (Token, bool) {
	for _, t := range ts {
		if t.Tag == tag {
			return t, true
		}
	}

	return Token{}, false
}

// FindByAsset find token by asset id
func (ts Tokens) FindByAsset(assetID string) (Token, bool) {
	for _, t := range ts {
		if t.AssetID != "" && t.AssetID == assetID {
			return t, true
		}
	}

	return Token{}, false
}

// Tags all token tags
func (ts Tokens) Tags() []TokenTag {
	tags := make([]TokenTag, 0, len(ts))
	for _, t := range ts {
		tags = append(tags, t.Tag)
	}

	return tags
}
