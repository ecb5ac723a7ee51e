// Package captcha verifies human-verification tokens sent with a submission.
package captcha

import (
	"context"
	"errors"
)

// ErrVerify wraps every failure to reach or understand the verification service.
var ErrVerify = errors.New("captcha verification error")

// Verdict is the outcome of verifying one token.
type Verdict struct {
	Accepted bool
	// Score is nil when the service does not return one (v2 checkbox keys)
	Score *float64
	// ErrorCodes are the service's reasons for a rejection, for logs only
	ErrorCodes []string
}

// Verifier checks a CAPTCHA token.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (Verdict, error)
	Name() string
}

// NullVerifier accepts everything. It is selected when no secret is
// configured so local development works without a CAPTCHA account.
type NullVerifier struct{}

func (NullVerifier) Verify(context.Context, string, string) (Verdict, error) {
	return Verdict{Accepted: true}, nil
}

func (NullVerifier) Name() string {
	return "none"
}
