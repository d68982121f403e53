package auth

import "context"

// Outcome describes how an interactive authorization attempt ended.
type Outcome int

const (
	// OutcomeSuccess means the user completed consent and the provider
	// redirected back with an authorization response.
	OutcomeSuccess Outcome = iota

	// OutcomeCancelled means the user actively declined consent.
	OutcomeCancelled

	// OutcomeDismissed means the attempt was abandoned before completion.
	OutcomeDismissed

	// OutcomeFailed means the attempt broke down for technical reasons.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "failed"
	}
}

// AuthorizationResult is the outcome of one interactive authorization
// attempt. RedirectURL is only populated on success.
type AuthorizationResult struct {
	Outcome     Outcome
	RedirectURL string
}

// UserAgent is the interactive collaborator that presents the authorization
// URL to the user and waits for the provider redirect. It blocks on a
// human-timescale event; the only application-level bound is ctx.
type UserAgent interface {
	Authorize(ctx context.Context, authURL, redirectURI string) AuthorizationResult
}
