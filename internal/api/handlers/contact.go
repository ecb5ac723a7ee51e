package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ashcraft-tech/contact-api/internal/antispam"
	"github.com/ashcraft-tech/contact-api/internal/api/constants"
	"github.com/ashcraft-tech/contact-api/internal/api/dto/common"
	"github.com/ashcraft-tech/contact-api/internal/api/dto/v1/contact"
	"github.com/ashcraft-tech/contact-api/internal/api/validation"
	"github.com/ashcraft-tech/contact-api/internal/captcha"
	"github.com/ashcraft-tech/contact-api/internal/logging"
	"github.com/ashcraft-tech/contact-api/internal/mail"
	"github.com/ashcraft-tech/contact-api/internal/ratelimit"
	"github.com/ashcraft-tech/contact-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Dispatcher sends an accepted submission
type Dispatcher interface {
	Dispatch(ctx context.Context, s mail.Submission) error
}

// ContactHandler runs a submission through the spam filters, validation,
// CAPTCHA and dispatch. Rate limiting happens earlier in the route chain.
type ContactHandler struct {
	gate       *antispam.Gate
	validator  *validation.ContactValidator
	verifier   captcha.Verifier
	dispatcher Dispatcher
	now        func() time.Time
}

// ContactOption configures a ContactHandler
type ContactOption func(*ContactHandler)

// WithNow replaces the clock used by the timing check
func WithNow(now func() time.Time) ContactOption {
	return func(h *ContactHandler) {
		h.now = now
	}
}

func NewContactHandler(gate *antispam.Gate, verifier captcha.Verifier, dispatcher Dispatcher, opts ...ContactOption) *ContactHandler {
	if verifier == nil {
		verifier = captcha.NullVerifier{}
	}
	h := &ContactHandler{
		gate:       gate,
		validator:  validation.NewContactValidator(),
		verifier:   verifier,
		dispatcher: dispatcher,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// respondSent is the single success shape. Spam that was silently dropped
// gets exactly the same answer.
func respondSent(c *gin.Context) {
	utils.HandleMessage(c, contact.MessageSent)
}

func (h *ContactHandler) Submit(c *gin.Context) {
	logger := logging.GetGlobalLogger()
	clientID := c.GetString(constants.ContextKeyClientID)
	if clientID == "" {
		clientID = utils.GetRealIP(c)
	}

	// The spam fields are decoded on their own first so a bot that fills
	// them with odd types still gets the silent success
	var spam contact.SpamFields
	if err := c.ShouldBindBodyWith(&spam, binding.JSON); err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.MessageUnexpected)
		return
	}

	verdict := h.gate.Inspect(antispam.Input{
		Honeypot:     spam.Website,
		FormLoadedAt: antispam.ParseFormLoadedAt(spam.FormLoadedAt),
	}, h.now())
	if verdict.Discard {
		logger.Info("Discarding contact submission from %s: %s (elapsed %s)", clientID, verdict.Reason, verdict.Elapsed)
		respondSent(c)
		return
	}

	var req contact.SubmissionRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.MessageUnexpected)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		logger.Debug("Rejected contact submission from %s: %v", clientID, err)
		utils.HandleClientError(c, http.StatusBadRequest, validation.PublicMessage(err))
		return
	}

	if req.RecaptchaToken != "" {
		result, err := h.verifier.Verify(c.Request.Context(), req.RecaptchaToken, clientID)
		if err != nil {
			utils.HandleAPIError(c, err, http.StatusBadRequest, contact.ErrCaptchaFailed)
			return
		}
		if !result.Accepted {
			logger.Info("reCAPTCHA rejected submission from %s (score=%v, codes=%v)", clientID, scoreString(result.Score), result.ErrorCodes)
			utils.HandleClientError(c, http.StatusBadRequest, contact.ErrCaptchaFailed)
			return
		}
	}

	err := h.dispatcher.Dispatch(c.Request.Context(), mail.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, contact.ErrSendFailed)
		return
	}

	logger.Info("Contact submission from %s dispatched (%d left this window)", clientID, remaining(c))
	respondSent(c)
}

// remaining reads the quota left after this submission, -1 when the route
// has no submission limit
func remaining(c *gin.Context) int {
	if v, ok := c.Get(constants.ContextKeyRateLimit); ok {
		if d, ok := v.(ratelimit.Decision); ok {
			return d.Remaining
		}
	}
	return -1
}

func scoreString(score *float64) interface{} {
	if score == nil {
		return "n/a"
	}
	return *score
}
