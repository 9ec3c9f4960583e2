package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/quantatel/quantatel-go/internal/domain/model"
	apperrors "github.com/quantatel/quantatel-go/internal/errors"
)

const quantumJobsPath = "/api/v1/quantum-jobs"

// SubmitJob creates a new analysis job and returns its identifier.
func (c *Client) SubmitJob(ctx context.Context, req *model.SubmitJobRequest) (string, error) {
	if req == nil {
		return "", apperrors.Validation("submit request is required")
	}

	var resp model.SubmitJobResponse
	if err := c.do(ctx, http.MethodPost, quantumJobsPath, nil, req, &resp); err != nil {
		return "", err
	}

	jobID := strings.TrimSpace(resp.JobID)
	if jobID == "" {
		return "", apperrors.Transport("job creation response carried no job_id")
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "job submitted", "job_id", jobID)
	}
	return jobID, nil
}

// GetJob fetches the current record of a job by id.
func (c *Client) GetJob(ctx context.Context, id string) (*model.QuantumJob, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.ValidationField("id", "job id is required")
	}

	var job model.QuantumJob
	if err := c.do(ctx, http.MethodGet, quantumJobsPath+"/"+url.PathEscape(id), nil, nil, &job); err != nil {
		return nil, err
	}

	if err := job.Validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeTransport, "job %s record is malformed", id)
	}
	return &job, nil
}
