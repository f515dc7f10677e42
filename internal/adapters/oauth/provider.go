// Package oauth implements the OAuthProvider port against a standard
// authorization-code provider (Google by default, any OIDC-shaped endpoint
// via configuration).
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"brandexpo/config"
	"brandexpo/internal/domain"
)

type provider struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewProvider creates an OAuthProvider from the configured endpoints.
func NewProvider(cfg config.OAuthConfig) domain.OAuthProvider {
	return &provider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

// userInfo matches the OIDC userinfo response; "id" covers providers that
// predate the "sub" claim.
type userInfo struct {
	Sub   string `json:"sub"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (p *provider) ExchangeCode(ctx context.Context, code string) (*domain.OAuthIdentity, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	resp, err := p.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	subject := info.Sub
	if subject == "" {
		subject = info.ID
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: provider did not return an email", domain.ErrInvalidInput)
	}
	return &domain.OAuthIdentity{
		Subject: subject,
		Email:   info.Email,
		Name:    info.Name,
	}, nil
}
