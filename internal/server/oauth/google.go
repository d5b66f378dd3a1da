package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	GoogleName            = "google"
	googleUserInfoURL     = "https://openidconnect.googleapis.com/v1/userinfo"
	maxUserInfoBodyLength = 1 << 20
)

var ErrEmailNotVerified = errors.New("oauth: provider email not verified")

// Google signs users in with Google's OpenID Connect userinfo.
type Google struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g *Google) Name() string { return GoogleName }

func (g *Google) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// Exchange trades the code for a token and reads the userinfo endpoint.
func (g *Google) Exchange(ctx context.Context, code string) (Identity, error) {
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("oauth: code exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return Identity{}, err
	}
	resp, err := g.config.Client(ctx, tok).Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("oauth: userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("oauth: userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBodyLength)).Decode(&info); err != nil {
		return Identity{}, fmt.Errorf("oauth: userinfo decode: %w", err)
	}
	if !info.EmailVerified {
		return Identity{}, ErrEmailNotVerified
	}

	return Identity{
		Provider:   GoogleName,
		Subject:    info.Sub,
		Email:      info.Email,
		Name:       info.Name,
		GivenName:  info.GivenName,
		FamilyName: info.FamilyName,
	}, nil
}
