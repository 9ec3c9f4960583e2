package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/quantatel/quantatel-go/internal/domain/classify"
	"github.com/quantatel/quantatel-go/internal/domain/model"
	apperrors "github.com/quantatel/quantatel-go/internal/errors"
)

const notifyTimeout = 10 * time.Second

// CompletionNotifierOptions groups dependencies for CompletionNotifier.
type CompletionNotifierOptions struct {
	// WebhookURL is the endpoint that receives the terminal-job document.
	// Required.
	WebhookURL string
	// BodyExpression optionally reshapes the outgoing document with a JMESPath
	// expression evaluated against the full notification payload. Empty means
	// the payload is sent as-is.
	BodyExpression string
	HTTPClient     *http.Client // Optional
	Logger         *slog.Logger // Optional
}

// CompletionNotifier posts a one-shot webhook when a tracked job reaches a
// terminal status. Delivery is best-effort: there are no retries, and a
// failed delivery never disturbs the job lifecycle that triggered it.
type CompletionNotifier struct {
	webhookURL string
	expr       string
	httpClient *http.Client
	logger     *slog.Logger
}

// notification is the document posted to the webhook.
type notification struct {
	JobID       string                  `json:"job_id"`
	Title       string                  `json:"title"`
	Status      model.JobStatus         `json:"status"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Error       string                  `json:"error,omitempty"`
	Verdict     classify.Verdict        `json:"verdict,omitempty"`
	Band        classify.ConfidenceBand `json:"confidence_band,omitempty"`
	Confidence  float64                 `json:"confidence,omitempty"`
	Outcomes    []classify.OutcomeShare `json:"outcomes,omitempty"`
}

// NewCompletionNotifier constructs a new CompletionNotifier. The body
// expression, when present, is compiled once here so malformed expressions
// fail at startup rather than on first delivery.
func NewCompletionNotifier(opts CompletionNotifierOptions) (*CompletionNotifier, error) {
	if opts.WebhookURL == "" {
		return nil, errors.New("WebhookURL is required")
	}

	if opts.BodyExpression != "" {
		if _, err := jmespath.Compile(opts.BodyExpression); err != nil {
			return nil, fmt.Errorf("compile body expression: %w", err)
		}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: notifyTimeout}
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "completion_notifier")
	}

	return &CompletionNotifier{
		webhookURL: opts.WebhookURL,
		expr:       opts.BodyExpression,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Notify posts the terminal-job document. Jobs that are not yet terminal are
// ignored. Completed jobs carry their classification; a completed job whose
// distribution is empty is still delivered, without classification fields.
func (n *CompletionNotifier) Notify(ctx context.Context, job *model.QuantumJob) error {
	if job == nil || !job.Status.Terminal() {
		return nil
	}

	doc := notification{
		JobID:       job.ID,
		Title:       job.Title,
		Status:      job.Status,
		CompletedAt: job.CompletedAt,
	}
	if job.ErrorMessage != nil {
		doc.Error = *job.ErrorMessage
	}
	if job.Status == model.JobStatusCompleted {
		if cls, err := classify.Classify(job.Result); err == nil {
			doc.Verdict = cls.Verdict
			doc.Band = cls.Band
			doc.Confidence = cls.Confidence
			doc.Outcomes = cls.Distribution
		} else if n.logger != nil {
			n.logger.WarnContext(ctx, "classification unavailable for notification",
				"job_id", job.ID, "error", err)
		}
	}

	body, err := n.renderBody(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		if n.logger != nil {
			n.logger.ErrorContext(ctx, "webhook delivery failed", "job_id", job.ID, "error", err)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "deliver completion webhook")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if n.logger != nil {
			n.logger.ErrorContext(ctx, "webhook rejected", "job_id", job.ID, "status", resp.StatusCode)
		}
		return apperrors.TransportStatus(resp.StatusCode,
			fmt.Sprintf("completion webhook returned %d", resp.StatusCode))
	}

	if n.logger != nil {
		n.logger.InfoContext(ctx, "completion webhook delivered", "job_id", job.ID, "status", job.Status)
	}
	return nil
}

// renderBody marshals the document, routing it through the configured
// JMESPath expression when one is set. The expression sees the document's
// JSON form, so field names match the wire shape.
func (n *CompletionNotifier) renderBody(doc notification) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode notification")
	}
	if n.expr == "" {
		return raw, nil
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode notification for reshaping")
	}
	shaped, err := jmespath.Search(n.expr, generic)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "evaluate body expression")
	}
	out, err := json.Marshal(shaped)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode reshaped notification")
	}
	return out, nil
}
