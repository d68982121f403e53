// Package callback implements the interactive user-agent collaborator for
// the authorization flow. It serves the OAuth redirect target on localhost,
// opens the authorization URL in the user's browser, and reports the final
// redirect back to the lifecycle core.
package callback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lumiskin/lumiskin-cli/internal/auth"
	"github.com/lumiskin/lumiskin-cli/internal/browser"
	log "github.com/sirupsen/logrus"
)

const successHTML = `<html><body><h1>Authorization complete</h1>` +
	`<p>You can close this window and return to LumiSkin.</p></body></html>`

// UserAgent is a browser-plus-local-server implementation of
// auth.UserAgent. Each Authorize call starts a throwaway HTTP server on the
// redirect URI's address and tears it down once a result arrives.
type UserAgent struct{}

// NewUserAgent returns a browser-backed user agent.
func NewUserAgent() *UserAgent {
	return &UserAgent{}
}

// Authorize opens authURL in a browser and waits for the provider to
// redirect the user to redirectURI. The wait is human-timescale and bounded
// only by ctx; cancelling ctx reports the attempt as dismissed.
func (ua *UserAgent) Authorize(ctx context.Context, authURL, redirectURI string) auth.AuthorizationResult {
	target, err := url.Parse(redirectURI)
	if err != nil || target.Host == "" {
		log.Errorf("invalid redirect uri %q: %v", redirectURI, err)
		return auth.AuthorizationResult{Outcome: auth.OutcomeFailed}
	}
	callbackPath := target.Path
	if callbackPath == "" {
		callbackPath = "/"
	}

	resultChan := make(chan auth.AuthorizationResult, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if errParam := query.Get("error"); errParam != "" {
			outcome := auth.OutcomeFailed
			if errParam == "access_denied" {
				outcome = auth.OutcomeCancelled
			}
			_, _ = fmt.Fprintf(w, "Authorization failed: %s", errParam)
			sendResult(resultChan, auth.AuthorizationResult{Outcome: outcome})
			return
		}
		if query.Get("code") == "" {
			http.Error(w, "Authorization code missing from redirect", http.StatusBadRequest)
			sendResult(resultChan, auth.AuthorizationResult{Outcome: auth.OutcomeFailed})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(successHTML))
		sendResult(resultChan, auth.AuthorizationResult{
			Outcome:     auth.OutcomeSuccess,
			RedirectURL: redirectURI + "?" + r.URL.RawQuery,
		})
	})

	server := &http.Server{
		Addr:         target.Host,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errChan <- errServe
		}
	}()
	defer ua.shutdown(server)

	if errOpen := browser.OpenURL(authURL); errOpen != nil {
		log.Warnf("Failed to open browser: %v", errOpen)
		log.Infof("Open this URL to continue authorization:\n\n%s\n", authURL)
	}

	select {
	case result := <-resultChan:
		return result
	case errServe := <-errChan:
		log.Errorf("callback server failed: %v", errServe)
		return auth.AuthorizationResult{Outcome: auth.OutcomeFailed}
	case <-ctx.Done():
		log.Warn("Authorization attempt abandoned before completion")
		return auth.AuthorizationResult{Outcome: auth.OutcomeDismissed}
	}
}

func (ua *UserAgent) shutdown(server *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Debugf("callback server shutdown: %v", err)
	}
}

func sendResult(ch chan auth.AuthorizationResult, result auth.AuthorizationResult) {
	select {
	case ch <- result:
	default:
	}
}
