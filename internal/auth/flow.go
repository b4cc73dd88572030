package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net"
	"os/exec"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
)

const defaultConsentTimeout = 5 * time.Minute

// LocalServerFlow runs the installed-app OAuth2 consent flow: it serves the
// redirect URI on a loopback port, opens the consent page in the user's
// browser and waits for the authorization code.
type LocalServerFlow struct {
	// Timeout bounds the wait for user consent. Zero means 5 minutes.
	Timeout time.Duration
}

type callbackResult struct {
	code string
	err  error
}

func (f *LocalServerFlow) Obtain(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting callback listener: %w", err)
	}

	// Copy the config so the caller keeps its own redirect URL.
	consent := *cfg
	consent.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())

	state, err := randomState()
	if err != nil {
		ln.Close()
		return nil, err
	}

	results := make(chan callbackResult, 1)
	app := callbackApp(state, results)

	go func() {
		if err := app.Listener(ln); err != nil {
			results <- callbackResult{err: fmt.Errorf("callback server: %w", err)}
		}
	}()
	defer func() { _ = app.Shutdown() }()

	authURL := consent.AuthCodeURL(state, oauth2.AccessTypeOffline)
	log.Printf("Visit this URL to authorize the application: %s", authURL)
	openBrowser(authURL)

	timeout := f.Timeout
	if timeout == 0 {
		timeout = defaultConsentTimeout
	}

	var result callbackResult
	select {
	case result = <-results:
	case <-time.After(timeout):
		return nil, errors.New("timed out waiting for authorization")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if result.err != nil {
		return nil, result.err
	}

	tok, err := consent.Exchange(ctx, result.code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	return tok, nil
}

// callbackApp builds the one-route app that receives the OAuth2 redirect and
// reports the outcome on results.
func callbackApp(state string, results chan<- callbackResult) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/callback", func(c *fiber.Ctx) error {
		switch {
		case c.Query("error") != "":
			results <- callbackResult{err: fmt.Errorf("consent declined: %s", c.Query("error"))}
			return c.SendString("Authorization failed. You can close this window.")
		case c.Query("state") != state:
			results <- callbackResult{err: errors.New("oauth2 state mismatch")}
			return c.Status(fiber.StatusBadRequest).SendString("State mismatch. You can close this window.")
		case c.Query("code") == "":
			results <- callbackResult{err: errors.New("authorization response carried no code")}
			return c.Status(fiber.StatusBadRequest).SendString("Missing authorization code.")
		default:
			results <- callbackResult{code: c.Query("code")}
			return c.SendString("Authorization received. You can close this window.")
		}
	})

	return app
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// openBrowser opens the given URL in the user's default browser. Failures
// are harmless because the URL is also printed.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
