package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const (
	// ClientSecretsFile is the Google API credentials.json downloaded from the
	// Cloud Console, stored in the kairos config directory.
	ClientSecretsFile = "credentials.json"

	// TokenFile holds the OAuth token (access + refresh) in the config directory.
	TokenFile = "token.json"

	// LocalhostAuthPort is where the local server waits for the OAuth redirect.
	LocalhostAuthPort = "6789"

	xdgAppName = "kairos"
)

// CalendarScopes are the scopes kairos asks for. Free/busy computation only
// needs to read events.
var CalendarScopes = []string{calendar.CalendarReadonlyScope}

// ErrNotAuthenticated is returned when no token is stored and an interactive
// flow was not requested.
var ErrNotAuthenticated = errors.New("not authenticated with Google Calendar, run 'kairos auth'")

// GetConfig creates an oauth2.Config from the client secrets file and specified scopes.
func GetConfig(scopes []string) (*oauth2.Config, error) {
	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return nil, err
	}

	clientSecretsFile := filepath.Join(xdgConfigBase, ClientSecretsFile)
	b, err := os.ReadFile(clientSecretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", clientSecretsFile, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	config.RedirectURL = normalizeRedirectURL(config.RedirectURL)
	return config, nil
}

// normalizeRedirectURL forces localhost and out-of-band redirects onto
// LocalhostAuthPort, where getTokenFromWeb listens.
func normalizeRedirectURL(redirect string) string {
	if redirect == "urn:ietf:wg:oauth:2.0:oob" {
		return fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
	}

	parsedURL, err := url.Parse(redirect)
	if err != nil {
		log.Warn().Err(err).Str("redirect_url", redirect).Msg("could not parse redirect URL, using it as is")
		return redirect
	}
	if parsedURL.Hostname() != "localhost" && parsedURL.Hostname() != "127.0.0.1" {
		log.Warn().Str("redirect_url", redirect).Msg("redirect URL is not a localhost callback")
		return redirect
	}
	if port := parsedURL.Port(); port != "" && port != LocalhostAuthPort {
		log.Warn().Str("port", port).Str("expected", LocalhostAuthPort).Msg("forcing localhost redirect port")
	}
	parsedURL.Host = net.JoinHostPort(parsedURL.Hostname(), LocalhostAuthPort)
	return parsedURL.String()
}

// GetClient returns an authenticated *http.Client from the stored token. It
// fails with ErrNotAuthenticated when there is no token; Authenticate runs the
// interactive flow.
func GetClient(ctx context.Context, scopes []string) (*http.Client, error) {
	config, err := GetConfig(scopes)
	if err != nil {
		return nil, err
	}

	tokenFile, err := tokenPath()
	if err != nil {
		return nil, err
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	// The source refreshes expired access tokens through the refresh token.
	return oauth2.NewClient(ctx, persistingSource(ctx, config, tok, tokenFile)), nil
}

// Authenticate runs the browser flow and stores the new token, replacing any
// existing one.
func Authenticate(ctx context.Context, scopes []string) error {
	config, err := GetConfig(scopes)
	if err != nil {
		return err
	}
	tokenFile, err := tokenPath()
	if err != nil {
		return err
	}

	tok, err := getTokenFromWeb(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to get token from web: %w", err)
	}
	return saveToken(tokenFile, tok)
}

// persistingSource re-saves the token whenever the underlying source refreshes it.
func persistingSource(ctx context.Context, config *oauth2.Config, tok *oauth2.Token, path string) oauth2.TokenSource {
	return &savingTokenSource{
		base: oauth2.ReuseTokenSource(tok, config.TokenSource(ctx, tok)),
		last: tok,
		path: path,
	}
}

type savingTokenSource struct {
	base oauth2.TokenSource
	last *oauth2.Token
	path string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last.AccessToken || tok.RefreshToken != s.last.RefreshToken {
		log.Debug().Str("path", s.path).Msg("token refreshed, saving")
		if err := saveToken(s.path, tok); err != nil {
			log.Warn().Err(err).Msg("could not save refreshed token")
		}
		s.last = tok
	}
	return tok, nil
}

// getTokenFromWeb runs the authorization code flow, capturing the redirect on
// a local web server.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", LocalhostAuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		log.Info().Str("redirect_url", config.RedirectURL).Msg("waiting for OAuth2 redirect")
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	defer server.Shutdown(context.Background())

	// AccessTypeOffline makes Google return a refresh token.
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Please open the following URL in your browser to authorize kairos:\n%s\n", authURL)

	select {
	case authCode := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := config.Exchange(exchangeCtx, authCode)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("authorization timed out. Please try again")
	}
}

// tokenFromFile reads an oauth2.Token from a JSON file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

// saveToken saves an oauth2.Token to a JSON file readable only by the owner.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func tokenPath() (string, error) {
	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgConfigBase, TokenFile), nil
}

func GetXdgHome() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}
