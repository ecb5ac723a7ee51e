package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultVerifyURL is Google's siteverify endpoint
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

var tracer = otel.Tracer("github.com/ashcraft-tech/contact-api/internal/captcha")

// RecaptchaConfig configures a RecaptchaVerifier
type RecaptchaConfig struct {
	Secret    string
	VerifyURL string
	MinScore  float64
	Timeout   time.Duration
}

// RecaptchaVerifier handles reCAPTCHA verification
type RecaptchaVerifier struct {
	secretKey string
	verifyURL string
	minScore  float64
	client    *http.Client
}

// NewRecaptchaVerifier creates a new reCAPTCHA verifier
func NewRecaptchaVerifier(cfg RecaptchaConfig) *RecaptchaVerifier {
	if cfg.VerifyURL == "" {
		cfg.VerifyURL = DefaultVerifyURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &RecaptchaVerifier{
		secretKey: cfg.Secret,
		verifyURL: cfg.VerifyURL,
		minScore:  cfg.MinScore,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// New picks the verifier for cfg: reCAPTCHA when a secret is set, otherwise
// the fail-open NullVerifier.
func New(cfg RecaptchaConfig) Verifier {
	if cfg.Secret == "" {
		return NullVerifier{}
	}
	return NewRecaptchaVerifier(cfg)
}

func (s *RecaptchaVerifier) Name() string {
	return "recaptcha"
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       *float64 `json:"score,omitempty"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify checks token against the siteverify API. A token is accepted when
// the API reports success and, if it returned a score, the score is at
// least the configured minimum.
func (s *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (Verdict, error) {
	ctx, span := tracer.Start(ctx, "captcha.Verify")
	defer span.End()

	if token == "" {
		return Verdict{}, fmt.Errorf("%w: token is required", ErrVerify)
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if remoteIP != "" && remoteIP != "unknown" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: failed to create request: %v", ErrVerify, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "siteverify request failed")
		return Verdict{}, fmt.Errorf("%w: failed to verify reCAPTCHA: %v", ErrVerify, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, "siteverify returned non-200")
		return Verdict{}, fmt.Errorf("%w: siteverify returned status %d", ErrVerify, resp.StatusCode)
	}

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		span.RecordError(err)
		return Verdict{}, fmt.Errorf("%w: failed to parse reCAPTCHA response: %v", ErrVerify, err)
	}

	verdict := Verdict{
		Accepted:   result.Success,
		Score:      result.Score,
		ErrorCodes: result.ErrorCodes,
	}
	if result.Score != nil {
		span.SetAttributes(attribute.Float64("captcha.score", *result.Score))
		if *result.Score < s.minScore {
			verdict.Accepted = false
		}
	}
	span.SetAttributes(attribute.Bool("captcha.accepted", verdict.Accepted))

	return verdict, nil
}
