package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	// CallbackPort is the port for the OAuth callback server.
	// Must match the redirect URL registered with the Strava app.
	CallbackPort = 8723

	// authTimeout is how long to wait for the user to finish in the browser
	authTimeout = 5 * time.Minute
)

type callbackOutcome struct {
	code string
	err  error
}

// Authenticate runs the browser OAuth flow against a local callback
// server and exchanges the resulting code for tokens.
func Authenticate(ctx context.Context, cfg *oauth2.Config) (*Result, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	outcome := make(chan callbackOutcome, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			outcome <- callbackOutcome{err: fmt.Errorf("state mismatch in callback")}
			http.Error(w, "State mismatch", http.StatusBadRequest)
		case q.Get("error") != "":
			outcome <- callbackOutcome{err: fmt.Errorf("authorization denied: %s", q.Get("error"))}
			http.Error(w, "Authorization failed", http.StatusBadRequest)
		case q.Get("code") == "":
			outcome <- callbackOutcome{err: fmt.Errorf("callback carried no authorization code")}
			http.Error(w, "No authorization code", http.StatusBadRequest)
		default:
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, callbackPage)
			outcome <- callbackOutcome{code: q.Get("code")}
		}
	})

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", CallbackPort))
	if err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}

	server := &http.Server{Handler: mux}
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	defer shutdownServer(server)

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Println()
	fmt.Println("To connect your Strava account, open this URL in your browser:")
	fmt.Println()
	fmt.Printf("  %s\n", authURL)
	fmt.Println()
	fmt.Println("Waiting for authorization...")

	var code string
	select {
	case result := <-outcome:
		if result.err != nil {
			return nil, result.err
		}
		code = result.code
	case err := <-serverErr:
		return nil, fmt.Errorf("callback server: %w", err)
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("no authorization after %v", authTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code for token: %w", err)
	}

	return &Result{
		Token:     token,
		AthleteID: ExtractAthleteID(token),
	}, nil
}

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>Connected</title></head>
<body style="font-family: system-ui; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0;">
<div style="text-align: center;">
<h1 style="color: #FC4C02;">Connected!</h1>
<p>Strava is linked. You can close this window and return to the terminal.</p>
</div>
</body>
</html>`

// generateState creates a random state string for CSRF protection
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}
