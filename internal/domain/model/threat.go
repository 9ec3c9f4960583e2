package model

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ThreatSeverity represents the risk tier of a threat record.
type ThreatSeverity string

const (
	// SeverityCritical is the highest risk tier.
	SeverityCritical ThreatSeverity = "critical"
	// SeverityHigh is the second risk tier.
	SeverityHigh ThreatSeverity = "high"
	// SeverityMedium is the third risk tier.
	SeverityMedium ThreatSeverity = "medium"
	// SeverityLow is the lowest risk tier.
	SeverityLow ThreatSeverity = "low"
)

// Valid returns true if the ThreatSeverity is a known tier.
func (s ThreatSeverity) Valid() bool {
	return s == SeverityCritical || s == SeverityHigh || s == SeverityMedium || s == SeverityLow
}

// ThreatRecord is an aggregated threat-intelligence entry served by the
// backend. The client only reads these; create/update lives server-side.
type ThreatRecord struct {
	ID              string         `json:"id"`
	IPAddress       string         `json:"ip_address"`
	Domain          string         `json:"domain,omitempty"`
	ThreatType      string         `json:"threat_type"`
	Severity        ThreatSeverity `json:"severity"`
	ConfidenceScore float64        `json:"confidence_score"`
	Source          string         `json:"source"`
	CountryCode     string         `json:"country_code,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ThreatStats holds the aggregate counters from GET /api/v1/threats/stats.
type ThreatStats struct {
	TotalThreats          int `json:"total_threats"`
	HighSeverityCount     int `json:"high_severity_count"`
	CriticalSeverityCount int `json:"critical_severity_count"`
	UniqueSources         int `json:"unique_sources"`
	TodayAdded            int `json:"today_added"`
}

// ThreatQuery describes the filter, pagination, and sort parameters accepted
// by the threat list endpoint.
type ThreatQuery struct {
	IPAddress     string
	Domain        string
	ThreatType    string
	Severity      ThreatSeverity
	Source        string
	CountryCode   string
	MinConfidence float64
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}

// Values encodes the query as URL parameters, omitting zero values.
func (q ThreatQuery) Values() url.Values {
	v := url.Values{}
	setIfPresent(v, "ip_address", q.IPAddress)
	setIfPresent(v, "domain", q.Domain)
	setIfPresent(v, "threat_type", q.ThreatType)
	setIfPresent(v, "severity", string(q.Severity))
	setIfPresent(v, "source", q.Source)
	setIfPresent(v, "country_code", q.CountryCode)
	if q.MinConfidence > 0 {
		v.Set("min_confidence", strconv.FormatFloat(q.MinConfidence, 'f', -1, 64))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	setIfPresent(v, "sort_by", q.SortBy)
	setIfPresent(v, "sort_order", q.SortOrder)
	return v
}

func setIfPresent(v url.Values, key, value string) {
	if strings.TrimSpace(value) != "" {
		v.Set(key, value)
	}
}
