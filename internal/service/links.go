package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkscout/scheduler-finder/api/internal/dto"
	"github.com/linkscout/scheduler-finder/api/internal/repository"
)

const (
	defaultValidateTimeout = 10 * time.Second

	// Confidence adjustments applied per validation event, clamped to [0,1].
	confidenceBoost       = 0.2
	badStatusPenalty      = 0.1
	unreachablePenalty    = 0.2
	notFoundOutcomeReason = "link not found or unauthorized"
)

// schedulerDomains maps URL host fragments to canonical platform names,
// checked in order. savvycal must precede cal.com: "savvycal.com" contains
// the "cal.com" fragment. Anything unmatched is "other".
var schedulerDomains = []struct {
	fragment string
	platform string
}{
	{"calendly", "calendly"},
	{"acuity", "acuity"},
	{"youcanbook", "youcanbook"},
	{"appointlet", "appointlet"},
	{"hubspot", "hubspot"},
	{"outcry", "outcry"},
	{"meetingbird", "meetingbird"},
	{"savvycal", "savvycal"},
	{"cal.com", "cal_com"},
	{"picktime", "picktime"},
}

// HTTPClient abstracts outbound requests so validation can be tested offline.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ValidationOutcome reports the result for a single link id.
type ValidationOutcome struct {
	LinkID     string `json:"link_id"`
	IsValid    bool   `json:"is_valid"`
	Platform   string `json:"platform,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ValidationSummary aggregates per-link outcomes with convenience counts.
type ValidationSummary struct {
	Results        []ValidationOutcome `json:"results"`
	TotalValidated int                 `json:"total_validated"`
	ValidLinks     int                 `json:"valid_links"`
}

// LinkValidator checks scheduler links with HEAD requests and persists the
// outcome, including a heuristic confidence adjustment per link.
type LinkValidator struct {
	links      repository.LinksRepository
	httpClient HTTPClient
	timeout    time.Duration
	logger     *zap.Logger
}

// LinkValidatorOption configures optional dependencies.
type LinkValidatorOption func(*LinkValidator)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) LinkValidatorOption {
	return func(v *LinkValidator) {
		if client != nil {
			v.httpClient = client
		}
	}
}

// WithValidateTimeout overrides the per-request HEAD timeout.
func WithValidateTimeout(timeout time.Duration) LinkValidatorOption {
	return func(v *LinkValidator) {
		if timeout > 0 {
			v.timeout = timeout
		}
	}
}

// NewLinkValidator builds a validator with sensible defaults.
func NewLinkValidator(links repository.LinksRepository, logger *zap.Logger, opts ...LinkValidatorOption) *LinkValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &LinkValidator{
		links:      links,
		httpClient: &http.Client{Timeout: defaultValidateTimeout},
		timeout:    defaultValidateTimeout,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate processes the given link ids strictly in order, one outcome per id.
// A failure on one link never aborts the batch.
func (v *LinkValidator) Validate(ctx context.Context, userID uuid.UUID, req dto.ValidateLinksRequest) ValidationSummary {
	summary := ValidationSummary{Results: make([]ValidationOutcome, 0, len(req.LinkIDs))}

	for _, rawID := range req.LinkIDs {
		summary.Results = append(summary.Results, v.validateOne(ctx, userID, rawID))
	}

	summary.TotalValidated = len(summary.Results)
	for _, r := range summary.Results {
		if r.IsValid {
			summary.ValidLinks++
		}
	}
	return summary
}

func (v *LinkValidator) validateOne(ctx context.Context, userID uuid.UUID, rawID string) ValidationOutcome {
	linkID, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return ValidationOutcome{LinkID: rawID, IsValid: false, Error: notFoundOutcomeReason}
	}

	link, err := v.links.FindOwnedByID(ctx, userID, linkID)
	if err != nil {
		return ValidationOutcome{LinkID: rawID, IsValid: false, Error: notFoundOutcomeReason}
	}

	resp, err := v.headRequest(ctx, link.URL)
	if err != nil {
		score := clampConfidence(link.ConfidenceScore - unreachablePenalty)
		update := repository.ValidationUpdate{
			IsVerified:      false,
			Platform:        link.Platform,
			ConfidenceScore: score,
		}
		if updateErr := v.links.UpdateValidation(ctx, linkID, update); updateErr != nil {
			v.logger.Warn("persist validation failure", zap.String("link_id", rawID), zap.Error(updateErr))
		}
		return ValidationOutcome{LinkID: rawID, IsValid: false, Error: err.Error()}
	}

	isValid := resp.StatusCode >= 200 && resp.StatusCode < 300
	platform := DetectPlatform(link.URL)

	var score float64
	if isValid {
		score = clampConfidence(link.ConfidenceScore + confidenceBoost)
	} else {
		score = clampConfidence(link.ConfidenceScore - badStatusPenalty)
	}

	outcome := ValidationOutcome{
		LinkID:     rawID,
		IsValid:    isValid,
		Platform:   platform,
		StatusCode: resp.StatusCode,
	}

	update := repository.ValidationUpdate{
		IsVerified:      isValid,
		Platform:        platform,
		ConfidenceScore: score,
	}
	if err := v.links.UpdateValidation(ctx, linkID, update); err != nil {
		v.logger.Warn("persist validation result", zap.String("link_id", rawID), zap.Error(err))
		outcome.Error = err.Error()
	}

	return outcome
}

func (v *LinkValidator) headRequest(ctx context.Context, target string) (*http.Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	return resp, nil
}

// DetectPlatform derives the scheduler platform from a link's host.
func DetectPlatform(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "other"
	}
	host := strings.ToLower(u.Hostname())
	for _, entry := range schedulerDomains {
		if strings.Contains(host, entry.fragment) {
			return entry.platform
		}
	}
	return "other"
}

func clampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
