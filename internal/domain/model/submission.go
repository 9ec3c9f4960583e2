package model

import (
	"fmt"
	"strings"

	apperrors "github.com/quantatel/quantatel-go/internal/errors"
)

// JobSubmission is the user-facing form model for creating an analysis job.
// It is validated locally before any network call is made.
type JobSubmission struct {
	Title        string
	Description  string
	Priority     int
	DataSources  []string
	ThreatType   string
	TimeWindow   string
	UseSimulator bool
	Tags         []string
}

// Validate reports the first validation failure, or nil when the submission
// is acceptable to send. Failures carry the validation error code and the
// offending field so callers can distinguish them from transport errors.
func (s *JobSubmission) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return apperrors.ValidationField("title", "title is required")
	}
	if s.Priority < 1 || s.Priority > 10 {
		return apperrors.ValidationField("priority",
			fmt.Sprintf("priority must be between 1 and 10, got %d", s.Priority))
	}
	if len(s.DataSources) == 0 {
		return apperrors.ValidationField("data_sources", "at least one data source is required")
	}
	for _, src := range s.DataSources {
		if strings.TrimSpace(src) == "" {
			return apperrors.ValidationField("data_sources", "data source identifiers must be non-empty")
		}
	}
	if strings.TrimSpace(s.ThreatType) == "" {
		return apperrors.ValidationField("threat_type", "threat type is required")
	}
	if strings.TrimSpace(s.TimeWindow) == "" {
		return apperrors.ValidationField("time_window", "time window is required")
	}
	return nil
}

// NormalizedTags returns the tags de-duplicated with insertion order preserved.
// Blank entries are dropped.
func (s *JobSubmission) NormalizedTags() []string {
	if len(s.Tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(s.Tags))
	out := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ToRequest translates the form model into the wire shape for job creation.
func (s *JobSubmission) ToRequest() *SubmitJobRequest {
	return &SubmitJobRequest{
		Title:       strings.TrimSpace(s.Title),
		Description: strings.TrimSpace(s.Description),
		Priority:    s.Priority,
		InputParams: JobInputParams{
			DataSources:  append([]string(nil), s.DataSources...),
			ThreatType:   s.ThreatType,
			TimeWindow:   s.TimeWindow,
			UseSimulator: s.UseSimulator,
		},
		Tags: s.NormalizedTags(),
	}
}

// SubmitJobRequest is the POST /api/v1/quantum-jobs request body.
type SubmitJobRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    int            `json:"priority"`
	InputParams JobInputParams `json:"input_params"`
	Tags        []string       `json:"tags,omitempty"`
}

// JobInputParams is the analysis parameter block of a job creation request.
type JobInputParams struct {
	DataSources  []string `json:"data_sources"`
	ThreatType   string   `json:"threat_type"`
	TimeWindow   string   `json:"time_window"`
	UseSimulator bool     `json:"use_simulator"`
}

// SubmitJobResponse is the POST /api/v1/quantum-jobs success response body.
type SubmitJobResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
