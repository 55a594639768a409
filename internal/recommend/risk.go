package recommend

import "fmt"

// RiskLevel is the one-badge rating for a referral.
type RiskLevel string

const (
	RiskOnTrack RiskLevel = "on_track"
	RiskWatch   RiskLevel = "watch"
	RiskAtRisk  RiskLevel = "at_risk"
)

// RiskSummary collapses the recommendation list into a status badge.
type RiskSummary struct {
	Level    RiskLevel `json:"level"`
	Headline string    `json:"headline"`
	Detail   string    `json:"detail"`
}

// Summarize reduces recommendations to one rating: any urgent item is
// at_risk, else any high item is watch, else on_track. Missing signal
// degrades toward on_track rather than raising a false alarm.
func Summarize(recs []Recommendation) RiskSummary {
	if len(recs) == 0 {
		return RiskSummary{
			Level:    RiskOnTrack,
			Headline: "On track",
			Detail:   "No outstanding SLA actions.",
		}
	}

	urgent, high := 0, 0
	first := map[Priority]string{}
	for _, r := range recs {
		switch r.Priority {
		case PriorityUrgent:
			urgent++
		case PriorityHigh:
			high++
		}
		if _, ok := first[r.Priority]; !ok {
			first[r.Priority] = r.Title
		}
	}

	switch {
	case urgent > 0:
		return RiskSummary{
			Level:    RiskAtRisk,
			Headline: "At risk",
			Detail:   fmt.Sprintf("%s urgent. Top item: %s.", count(urgent, "action"), first[PriorityUrgent]),
		}
	case high > 0:
		return RiskSummary{
			Level:    RiskWatch,
			Headline: "Needs attention",
			Detail:   fmt.Sprintf("%s overdue. Top item: %s.", count(high, "follow-up"), first[PriorityHigh]),
		}
	default:
		return RiskSummary{
			Level:    RiskOnTrack,
			Headline: "On track",
			Detail:   fmt.Sprintf("Minor optimizations available (%s).", count(len(recs), "suggestion")),
		}
	}
}

func count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
