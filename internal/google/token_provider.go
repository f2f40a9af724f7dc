package google

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-oauth/storage"
)

// DefaultAccount is the account key the single presenter session stores its token under
const DefaultAccount = "default"

// TokenProvider stores Google OAuth tokens in an mcp-oauth TokenStore
type TokenProvider struct {
	store storage.TokenStore
}

// NewTokenProvider creates a new token provider from an mcp-oauth TokenStore.
func NewTokenProvider(store storage.TokenStore) *TokenProvider {
	return &TokenProvider{
		store: store,
	}
}

// GetTokenForAccount retrieves the token stored for the account
func (p *TokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	return p.store.GetToken(ctx, account)
}

// HasTokenForAccount checks if a token exists for the specified account.
func (p *TokenProvider) HasTokenForAccount(account string) bool {
	_, err := p.store.GetToken(context.Background(), account)
	return err == nil
}

// SaveToken stores the token for the account, replacing any previous one.
// Used both after the code exchange and whenever a token is refreshed.
func (p *TokenProvider) SaveToken(ctx context.Context, account string, token *oauth2.Token) error {
	return p.store.SaveToken(ctx, account, token)
}

// savingTokenSource writes refreshed tokens back to the provider
type savingTokenSource struct {
	ctx      context.Context
	base     oauth2.TokenSource
	provider *TokenProvider
	account  string
	last     string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.last {
		if err := s.provider.SaveToken(s.ctx, s.account, token); err != nil {
			return nil, err
		}
		s.last = token.AccessToken
	}
	return token, nil
}
