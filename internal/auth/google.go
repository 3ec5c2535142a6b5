package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"net/http"
	"strings"
)

const userInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Challenge is what the login redirect needs to remember until the callback.
type Challenge struct {
	State    string
	Verifier string
	URL      string
}

type Provider interface {
	// Begin starts a login and returns the consent page URL.
	Begin() *Challenge
	// Complete exchanges the authorization code and returns the user it belongs to.
	Complete(ctx context.Context, code, verifier string) (*Session, error)
}

type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: userInfoURL,
	}
}

func (p *GoogleProvider) Begin() *Challenge {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	return &Challenge{
		State:    state,
		Verifier: verifier,
		URL:      p.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)),
	}
}

type userInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

func (p *GoogleProvider) Complete(ctx context.Context, code, verifier string) (*Session, error) {
	token, err := p.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, errors.Wrap(err, "exchange code")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch userinfo")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}

	var info userInfo
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.Wrap(err, "decode userinfo")
	}

	if strings.TrimSpace(info.Email) == "" {
		return nil, ErrMissingEmail
	}

	return &Session{Email: info.Email, Name: info.Name}, nil
}
