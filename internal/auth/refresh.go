package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// refreshMargin is how close to expiry a token may get before we
// refresh it preemptively.
const refreshMargin = 60 * time.Second

// TokenSource is an oauth2.TokenSource that persists refreshed tokens.
// Strava access tokens last six hours, so any long-lived process will
// cross a refresh boundary eventually.
type TokenSource struct {
	mu      sync.Mutex
	config  *oauth2.Config
	token   *oauth2.Token
	persist func(*oauth2.Token) error
}

// NewTokenSource wraps a stored token. persist is called with every
// newly refreshed token before it is used, so the store never lags
// behind what Strava considers current.
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, persist func(*oauth2.Token) error) *TokenSource {
	return &TokenSource{
		config:  cfg,
		token:   token,
		persist: persist,
	}
}

// Token returns a valid token, refreshing and persisting if necessary
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > refreshMargin {
		return ts.token, nil
	}

	src := ts.config.TokenSource(context.Background(), ts.token)
	fresh, err := src.Token()
	if err != nil {
		return nil, err
	}

	if ts.persist != nil {
		if err := ts.persist(fresh); err != nil {
			return nil, err
		}
	}

	ts.token = fresh
	return fresh, nil
}
