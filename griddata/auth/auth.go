// Package auth holds an OAuth2 client-credentials token for the signal API.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCred caches an access token obtained through the client-credentials
// grant and refreshes it once it expires. Safe for concurrent use.
type ClientCred struct {
	conf clientcredentials.Config

	mu    sync.Mutex
	token *oauth2.Token
}

// NewClientCred creates a token holder for the given credentials.
func NewClientCred(conf Conf) *ClientCred {
	return &ClientCred{conf: conf.toOauth2Config()}
}

// GetToken returns a valid access token, requesting a new one only when the
// cached token is missing or expired.
func (c *ClientCred) GetToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refreshLocked(ctx); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// ForceRefresh discards the cached token and requests a fresh one.
func (c *ClientCred) ForceRefresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
	if err := c.refreshLocked(ctx); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// SetAuthHeader stamps the Authorization header on r, fetching or refreshing
// the token first when needed. The request's context bounds the fetch.
func (c *ClientCred) SetAuthHeader(r *http.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refreshLocked(r.Context()); err != nil {
		return err
	}
	c.token.SetAuthHeader(r)
	return nil
}

func (c *ClientCred) refreshLocked(ctx context.Context) error {
	if c.token != nil && c.token.Valid() {
		return nil
	}
	token, err := c.conf.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}
	c.token = token
	return nil
}
