package api

import (
	"context"
	"net/http"

	"github.com/quantatel/quantatel-go/internal/domain/model"
)

// threatListEnvelope matches the nested list shape of GET /api/v1/threats.
type threatListEnvelope struct {
	Data struct {
		Items []model.ThreatRecord `json:"items"`
	} `json:"data"`
}

// threatStatsEnvelope matches the shape of GET /api/v1/threats/stats.
type threatStatsEnvelope struct {
	Data model.ThreatStats `json:"data"`
}

// ListThreats returns one page of aggregated threat records.
func (c *Client) ListThreats(ctx context.Context, query model.ThreatQuery) ([]model.ThreatRecord, error) {
	var envelope threatListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/threats", query.Values(), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Items, nil
}

// ThreatStats returns the aggregate threat counters.
func (c *Client) ThreatStats(ctx context.Context) (*model.ThreatStats, error) {
	var envelope threatStatsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/threats/stats", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
