package auth

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/wsatriyadi/blogger-auto-post/internal/blogger"
)

// Scope required to manage posts on the user's blogs.
const Scope = "https://www.googleapis.com/auth/blogger"

// Flow obtains a token interactively when no stored credential works.
type Flow interface {
	Obtain(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// Authenticator produces an authorized Blogger API client, persisting the
// OAuth2 token between runs so consent is only needed once.
type Authenticator struct {
	credentialsFile string
	tokenFile       string
	flow            Flow
}

// New creates an Authenticator. A nil flow defaults to the local-server
// browser consent flow.
func New(credentialsFile, tokenFile string, flow Flow) *Authenticator {
	if flow == nil {
		flow = &LocalServerFlow{}
	}
	return &Authenticator{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
		flow:            flow,
	}
}

// Client authenticates and returns a resty client authorized for the Blogger
// API. Any failure here is fatal to the run; there is no retry beyond the
// single silent refresh attempt.
func (a *Authenticator) Client(ctx context.Context) (*resty.Client, error) {
	cfg, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := a.token(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Successfully authenticated with Blogger API")

	return resty.NewWithClient(cfg.Client(ctx, tok)).SetBaseURL(blogger.BaseURL), nil
}

func (a *Authenticator) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(a.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", a.credentialsFile, err)
	}

	return cfg, nil
}

// token loads, refreshes or interactively obtains an OAuth2 token. Newly
// issued tokens are persisted to the token file before returning.
func (a *Authenticator) token(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	tok, err := loadToken(a.tokenFile)
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring stored token: %v", err)
	}

	if tok != nil {
		if tok.Valid() {
			return tok, nil
		}

		if tok.RefreshToken != "" {
			refreshed, rerr := cfg.TokenSource(ctx, tok).Token()
			if rerr == nil {
				if err := saveToken(a.tokenFile, refreshed); err != nil {
					return nil, err
				}
				return refreshed, nil
			}
			log.Printf("Failed to refresh token: %v", rerr)
		}
	}

	tok, err = a.flow.Obtain(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("oauth2 consent flow: %w", err)
	}

	if err := saveToken(a.tokenFile, tok); err != nil {
		return nil, err
	}

	return tok, nil
}
