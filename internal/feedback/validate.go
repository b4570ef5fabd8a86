package feedback

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/trustmarket/trustmarket/internal/domain"
)

// Validation bounds. The review body minimum is 10 characters (the review
// form bound); the 50-character minimum applies to complaint descriptions.
const (
	ReviewBodyMinLen      = 10
	ReviewBodyMaxLen      = 1000
	ComplaintBodyMinLen   = 50
	EvidenceMaxBytes      = 10 << 20
	PurchaseProofMaxBytes = 5 << 20
	ContactPhoneDigits    = 10
	incidentDateLayout    = "2006-01-02"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

var evidenceMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"video/mp4":  {},
}

var purchaseProofMIMETypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
}

// FieldErrors maps field names to human-readable messages. A draft that
// violates several rules accumulates every message in one validation pass so
// the caller can display all problems at once.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return strings.Join(msgs, "; ")
}

func (e FieldErrors) add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// ReviewDraft is the in-progress state of a review form.
type ReviewDraft struct {
	ProductID       string
	AuthorName      string
	OverallRating   int
	CriteriaRatings map[string]int
	Body            string
}

// ComplaintDraft is the in-progress state of a complaint form.
type ComplaintDraft struct {
	ProductID      string
	SelectedIssues []string
	Severity       string
	IncidentDate   string
	Description    string
	BatchNumber    string
	Location       string
	Evidence       []domain.FileRef
	PurchaseProof  *domain.FileRef
	Contact        domain.ContactInfo
}

// ValidateReview validates a review draft against all field rules in one
// pass. On success it returns a normalized, immutable submission; on failure
// it returns every violated-field message.
func ValidateReview(draft ReviewDraft) (*domain.FeedbackSubmission, FieldErrors) {
	errs := FieldErrors{}

	if strings.TrimSpace(draft.ProductID) == "" {
		errs.add("product_id", "product id is required")
	}

	author := strings.TrimSpace(draft.AuthorName)
	if author == "" {
		errs.add("author_name", "name is required")
	}

	if draft.OverallRating < 1 || draft.OverallRating > 5 {
		errs.add("overall_rating", "rating must be between 1 and 5")
	}

	// Length bounds count characters, not bytes.
	body := strings.TrimSpace(draft.Body)
	if bodyLen := utf8.RuneCountInString(body); bodyLen < ReviewBodyMinLen {
		errs.add("body", fmt.Sprintf("review must be at least %d characters", ReviewBodyMinLen))
	} else if bodyLen > ReviewBodyMaxLen {
		errs.add("body", fmt.Sprintf("review must be at most %d characters", ReviewBodyMaxLen))
	}

	for criterion, rating := range draft.CriteriaRatings {
		if rating < 1 || rating > 5 {
			errs.add("criteria."+criterion, "rating must be between 1 and 5")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	var criteriaRatings map[string]int
	if len(draft.CriteriaRatings) > 0 {
		criteriaRatings = make(map[string]int, len(draft.CriteriaRatings))
		for criterion, rating := range draft.CriteriaRatings {
			criteriaRatings[strings.TrimSpace(criterion)] = rating
		}
	}

	return &domain.FeedbackSubmission{
		ID:              uuid.New().String(),
		Kind:            domain.KindReview,
		ProductID:       strings.TrimSpace(draft.ProductID),
		AuthorName:      author,
		OverallRating:   draft.OverallRating,
		CriteriaRatings: criteriaRatings,
		Body:            body,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// ValidateComplaint validates a complaint draft against all field and
// cross-field rules in one pass.
func ValidateComplaint(draft ComplaintDraft) (*domain.FeedbackSubmission, FieldErrors) {
	errs := FieldErrors{}

	if strings.TrimSpace(draft.ProductID) == "" {
		errs.add("product_id", "product id is required")
	}

	if len(draft.SelectedIssues) == 0 {
		errs.add("selected_issues", "select at least one issue type")
	}
	for _, issue := range draft.SelectedIssues {
		if !domain.IsValidIssue(issue) {
			errs.add("selected_issues", fmt.Sprintf("unknown issue type %q", issue))
			break
		}
	}

	if draft.Severity == "" {
		errs.add("severity", "severity is required")
	} else if !domain.IsValidSeverity(draft.Severity) {
		errs.add("severity", fmt.Sprintf("unknown severity %q", draft.Severity))
	}

	var incidentDate time.Time
	if strings.TrimSpace(draft.IncidentDate) == "" {
		errs.add("incident_date", "incident date is required")
	} else {
		parsed, err := time.Parse(incidentDateLayout, strings.TrimSpace(draft.IncidentDate))
		switch {
		case err != nil:
			errs.add("incident_date", "incident date must be a valid date (YYYY-MM-DD)")
		case parsed.After(time.Now()):
			errs.add("incident_date", "incident date cannot be in the future")
		default:
			incidentDate = parsed
		}
	}

	description := strings.TrimSpace(draft.Description)
	if utf8.RuneCountInString(description) < ComplaintBodyMinLen {
		errs.add("description", fmt.Sprintf("description must be at least %d characters", ComplaintBodyMinLen))
	}

	contactName := strings.TrimSpace(draft.Contact.Name)
	if contactName == "" {
		errs.add("contact.name", "contact name is required")
	}

	contactEmail := strings.TrimSpace(draft.Contact.Email)
	if contactEmail == "" {
		errs.add("contact.email", "contact email is required")
	} else if !emailPattern.MatchString(contactEmail) {
		errs.add("contact.email", "contact email must be a valid email address")
	}

	contactPhone := strings.TrimSpace(draft.Contact.Phone)
	if contactPhone == "" {
		errs.add("contact.phone", "contact phone is required")
	} else if !phonePattern.MatchString(contactPhone) {
		errs.add("contact.phone", fmt.Sprintf("contact phone must be a %d-digit number", ContactPhoneDigits))
	}

	for i, f := range draft.Evidence {
		if _, ok := evidenceMIMETypes[f.MIMEType]; !ok {
			errs.add(fmt.Sprintf("evidence[%d]", i), "evidence files must be JPEG, PNG, or MP4")
			continue
		}
		if f.SizeBytes > EvidenceMaxBytes {
			errs.add(fmt.Sprintf("evidence[%d]", i), "evidence files must be at most 10MB")
		}
	}

	if f := draft.PurchaseProof; f != nil {
		if _, ok := purchaseProofMIMETypes[f.MIMEType]; !ok {
			errs.add("purchase_verification", "purchase proof must be JPEG, PNG, or PDF")
		} else if f.SizeBytes > PurchaseProofMaxBytes {
			errs.add("purchase_verification", "purchase proof must be at most 5MB")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	issues := append([]string(nil), draft.SelectedIssues...)

	return &domain.FeedbackSubmission{
		ID:            uuid.New().String(),
		Kind:          domain.KindComplaint,
		ProductID:     strings.TrimSpace(draft.ProductID),
		AuthorName:    contactName,
		Body:          description,
		Issues:        issues,
		Severity:      draft.Severity,
		IncidentDate:  incidentDate,
		BatchNumber:   strings.TrimSpace(draft.BatchNumber),
		Location:      strings.TrimSpace(draft.Location),
		Evidence:      append([]domain.FileRef(nil), draft.Evidence...),
		PurchaseProof: draft.PurchaseProof,
		Contact: domain.ContactInfo{
			Name:  contactName,
			Email: contactEmail,
			Phone: contactPhone,
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}
