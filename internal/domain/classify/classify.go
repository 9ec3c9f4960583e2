// Package classify turns raw job outcomes and breach counts into
// display-ready verdicts, confidence bands, and severity tiers. All functions
// are pure; thresholds are fixed.
package classify

import (
	"math"
	"sort"

	apperrors "github.com/quantatel/quantatel-go/internal/errors"

	"github.com/quantatel/quantatel-go/internal/domain/model"
)

// ConfidenceBand is the discrete tier derived from a 0-100 confidence score.
type ConfidenceBand string

const (
	// BandHigh applies to confidence strictly above 75.
	BandHigh ConfidenceBand = "high"
	// BandMedium applies to confidence strictly above 50 and at most 75.
	BandMedium ConfidenceBand = "medium"
	// BandLow applies to confidence at or below 50.
	BandLow ConfidenceBand = "low"
)

// Verdict is the threat judgment label for a completed job.
type Verdict string

const (
	// VerdictMalicious labels a job whose explicit verdict field is true.
	VerdictMalicious Verdict = "malicious"
	// VerdictBenign labels a job whose explicit verdict field is false.
	VerdictBenign Verdict = "benign"
)

// OutcomeShare is one outcome label's slice of the measurement distribution.
type OutcomeShare struct {
	Label   string
	Count   int
	Percent float64
}

// Classification is the aggregate judgment for a completed job's result.
type Classification struct {
	Verdict      Verdict
	Band         ConfidenceBand
	Confidence   float64
	Distribution []OutcomeShare
}

// BandForConfidence maps a 0-100 confidence score onto its band. Boundaries
// are exclusive: 75 is medium, 50 is low.
func BandForConfidence(score float64) ConfidenceBand {
	switch {
	case score > 75:
		return BandHigh
	case score > 50:
		return BandMedium
	default:
		return BandLow
	}
}

// VerdictFor maps the explicit malicious flag onto its label. No inference
// from counts or probability overrides the flag.
func VerdictFor(isMalicious bool) Verdict {
	if isMalicious {
		return VerdictMalicious
	}
	return VerdictBenign
}

// Classify converts a completed job's result into a Classification. It fails
// with an EmptyDistribution error when the outcome counts sum to zero, so no
// division by zero can propagate into rendering.
func Classify(result *model.JobResult) (*Classification, error) {
	if result == nil {
		return nil, apperrors.EmptyDistribution("no result payload to classify")
	}

	dist, err := Distribution(result.Counts)
	if err != nil {
		return nil, err
	}

	return &Classification{
		Verdict:      VerdictFor(result.IsMalicious),
		Band:         BandForConfidence(result.Confidence),
		Confidence:   result.Confidence,
		Distribution: dist,
	}, nil
}

// Distribution computes each outcome's percentage share of the total count,
// rounded to one decimal place. Percentages are display-only and are not
// renormalized to sum exactly to 100 after rounding. Outcomes are returned in
// ascending label order for stable output.
func Distribution(counts map[string]int) ([]OutcomeShare, error) {
	total := 0
	for _, count := range counts {
		total += count
	}
	if total == 0 {
		return nil, apperrors.EmptyDistribution("outcome counts sum to zero")
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	shares := make([]OutcomeShare, 0, len(labels))
	for _, label := range labels {
		count := counts[label]
		shares = append(shares, OutcomeShare{
			Label:   label,
			Count:   count,
			Percent: roundOneDecimal(100 * float64(count) / float64(total)),
		})
	}
	return shares, nil
}

// BreachSeverity maps a breach's account count onto a severity tier. The
// thresholds are exact cutoffs: a count must strictly exceed a boundary to
// reach the higher tier.
func BreachSeverity(pwnCount int64) model.ThreatSeverity {
	switch {
	case pwnCount > 10_000_000:
		return model.SeverityCritical
	case pwnCount > 1_000_000:
		return model.SeverityHigh
	case pwnCount > 100_000:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
