// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans. Use these in CLI
// output and reports; keep raw codes for JSON fields and comparisons.
package display

// --- Pipeline statuses ---

var statuses = map[string]string{
	"new":              "New",
	"paired":           "Paired",
	"in_communication": "In Communication",
	"showing":          "Showing",
	"under_contract":   "Under Contract",
	"closed":           "Closed",
	"paid":             "Paid",
	"lost":             "Lost",
}

// Status returns the human-readable name for a pipeline status code.
// Unknown codes are returned as-is.
func Status(code string) string {
	if name, ok := statuses[code]; ok {
		return name
	}
	return code
}

// --- Deal statuses ---

var dealStatuses = map[string]string{
	"offer_drafted":  "Offer Drafted",
	"under_contract": "Under Contract",
	"closing":        "Closing",
	"closed":         "Closed",
	"payment_sent":   "Payment Sent",
	"paid":           "Paid",
	"fell_through":   "Fell Through",
}

// DealStatus returns the human-readable name for a deal status code.
func DealStatus(code string) string {
	if name, ok := dealStatuses[code]; ok {
		return name
	}
	return code
}

// --- Recommendation priorities ---

var priorities = map[string]string{
	"urgent": "Urgent",
	"high":   "High",
	"medium": "Medium",
	"low":    "Low",
}

// Priority returns the human-readable name for a priority code.
func Priority(code string) string {
	if name, ok := priorities[code]; ok {
		return name
	}
	return code
}

// --- Risk levels ---

var riskLevels = map[string]string{
	"on_track": "On Track",
	"watch":    "Watch",
	"at_risk":  "At Risk",
}

// Risk returns the badge text for a risk level code.
func Risk(code string) string {
	if name, ok := riskLevels[code]; ok {
		return name
	}
	return code
}

// RiskWithCode returns "At Risk (at_risk)" format for logs.
func RiskWithCode(code string) string {
	if name, ok := riskLevels[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}
