package domain

import (
	"time"
)

// SubmissionKind distinguishes reviews from complaints.
type SubmissionKind string

const (
	KindReview    SubmissionKind = "review"
	KindComplaint SubmissionKind = "complaint"
)

// Complaint issue types. The set is fixed, global configuration.
const (
	IssueMisleading = "Misleading"
	IssueQuality    = "Quality"
	IssueFraud      = "Fraud"
	IssueSafety     = "Safety"
)

// IssueTypes returns the fixed complaint issue taxonomy, in display order.
func IssueTypes() []string {
	return []string{IssueMisleading, IssueQuality, IssueFraud, IssueSafety}
}

// IsValidIssue checks membership in the issue taxonomy.
func IsValidIssue(issue string) bool {
	for _, i := range IssueTypes() {
		if i == issue {
			return true
		}
	}
	return false
}

// Complaint severity levels.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// SeverityLevels returns the fixed severity scale, lowest first.
func SeverityLevels() []string {
	return []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// IsValidSeverity checks membership in the severity scale.
func IsValidSeverity(severity string) bool {
	for _, s := range SeverityLevels() {
		if s == severity {
			return true
		}
	}
	return false
}

// FileRef points to an uploaded evidence or purchase-proof file. The bytes
// themselves live in external storage; this service only validates shape.
type FileRef struct {
	URL       string `json:"url"`
	MIMEType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// ContactInfo is the complainant's contact block.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// FeedbackSubmission is a fully validated, normalized submission ready for
// dispatch. It is constructed only by the feedback engine; invalid drafts
// never become submissions.
type FeedbackSubmission struct {
	ID              string         `json:"id"`
	Kind            SubmissionKind `json:"kind"`
	ProductID       string         `json:"product_id"`
	AuthorName      string         `json:"author_name"`
	OverallRating   int            `json:"overall_rating,omitempty"`
	CriteriaRatings map[string]int `json:"criteria_ratings,omitempty"`
	Body            string         `json:"body"`
	Issues          []string       `json:"issues,omitempty"`
	Severity        string         `json:"severity,omitempty"`
	IncidentDate    time.Time      `json:"incident_date,omitempty"`
	BatchNumber     string         `json:"batch_number,omitempty"`
	Location        string         `json:"location,omitempty"`
	Evidence        []FileRef      `json:"evidence,omitempty"`
	PurchaseProof   *FileRef       `json:"purchase_proof,omitempty"`
	Contact         ContactInfo    `json:"contact"`
	CreatedAt       time.Time      `json:"created_at"`
}
