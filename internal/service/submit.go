package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/quantatel/quantatel-go/internal/core"
	"github.com/quantatel/quantatel-go/internal/domain/model"
)

// SubmissionServiceOptions groups dependencies for SubmissionService.
type SubmissionServiceOptions struct {
	Submitter core.JobSubmitter // Required: job submission collaborator
	Logger    *slog.Logger      // Optional: structured logger
}

// SubmissionService validates job submissions client-side and forwards
// well-formed ones to the job API. It is stateless: it never tracks the jobs
// it has created.
type SubmissionService struct {
	submitter core.JobSubmitter
	logger    *slog.Logger
}

// NewSubmissionService constructs a new SubmissionService.
func NewSubmissionService(opts SubmissionServiceOptions) (*SubmissionService, error) {
	if opts.Submitter == nil {
		return nil, errors.New("JobSubmitter is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "job_submission")
	}

	return &SubmissionService{
		submitter: opts.Submitter,
		logger:    logger,
	}, nil
}

// Submit validates the submission and, only if every rule passes, sends it to
// the backend. Validation failures never reach the network. On success the
// backend-assigned job id is returned; the caller decides whether to poll it.
func (s *SubmissionService) Submit(ctx context.Context, sub model.JobSubmission) (string, error) {
	if err := sub.Validate(); err != nil {
		if s.logger != nil {
			s.logger.DebugContext(ctx, "submission rejected", "error", err)
		}
		return "", err
	}

	jobID, err := s.submitter.SubmitJob(ctx, sub.ToRequest())
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "job submission failed", "error", err)
		}
		return "", err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "job submitted", "job_id", jobID, "title", sub.Title)
	}
	return jobID, nil
}
