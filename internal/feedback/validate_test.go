package feedback

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmarket/trustmarket/internal/domain"
)

func validReviewDraft() ReviewDraft {
	return ReviewDraft{
		ProductID:     "organic-almond-milk",
		AuthorName:    "Asha Verma",
		OverallRating: 4,
		CriteriaRatings: map[string]int{
			"Safety":    5,
			"Freshness": 4,
		},
		Body: "Tastes great and arrived fresh, will buy again.",
	}
}

func validComplaintDraft() ComplaintDraft {
	return ComplaintDraft{
		ProductID:      "organic-almond-milk",
		SelectedIssues: []string{domain.IssueQuality, domain.IssueSafety},
		Severity:       domain.SeverityHigh,
		IncidentDate:   "2026-08-15",
		Description:    strings.Repeat("the product arrived spoiled ", 3),
		BatchNumber:    "B-1042",
		Location:       "Pune",
		Evidence: []domain.FileRef{
			{URL: "https://files.example/photo.jpg", MIMEType: "image/jpeg", SizeBytes: 2 << 20},
		},
		PurchaseProof: &domain.FileRef{URL: "https://files.example/receipt.pdf", MIMEType: "application/pdf", SizeBytes: 1 << 20},
		Contact: domain.ContactInfo{
			Name:  "Asha Verma",
			Email: "asha@example.com",
			Phone: "9876543210",
		},
	}
}

func TestValidateReviewValidDraft(t *testing.T) {
	submission, errs := ValidateReview(validReviewDraft())

	require.Empty(t, errs)
	require.NotNil(t, submission)
	assert.NotEmpty(t, submission.ID)
	assert.Equal(t, domain.KindReview, submission.Kind)
	assert.Equal(t, "organic-almond-milk", submission.ProductID)
	assert.Equal(t, "Asha Verma", submission.AuthorName)
	assert.Equal(t, 4, submission.OverallRating)
	assert.False(t, submission.CreatedAt.IsZero())
}

func TestValidateReviewAggregatesAllErrors(t *testing.T) {
	// Every violated field must be reported in a single pass.
	draft := ReviewDraft{
		ProductID:       "",
		AuthorName:      "  ",
		OverallRating:   0,
		CriteriaRatings: map[string]int{"Safety": 6},
		Body:            "too short",
	}

	submission, errs := ValidateReview(draft)

	assert.Nil(t, submission)
	assert.Len(t, errs, 5)
	assert.Contains(t, errs, "product_id")
	assert.Contains(t, errs, "author_name")
	assert.Contains(t, errs, "overall_rating")
	assert.Contains(t, errs, "criteria.Safety")
	assert.Contains(t, errs, "body")
}

func TestValidateReviewRatingBounds(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		ok     bool
	}{
		{"below range", 0, false},
		{"lower bound", 1, true},
		{"middle", 3, true},
		{"upper bound", 5, true},
		{"above range", 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validReviewDraft()
			draft.OverallRating = tt.rating

			_, errs := ValidateReview(draft)
			if tt.ok {
				assert.NotContains(t, errs, "overall_rating")
			} else {
				assert.Contains(t, errs, "overall_rating")
			}
		})
	}
}

func TestValidateReviewBodyLength(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"nine chars rejected", strings.Repeat("a", 9), false},
		{"ten chars accepted", strings.Repeat("a", 10), true},
		{"thousand chars accepted", strings.Repeat("a", 1000), true},
		{"over thousand rejected", strings.Repeat("a", 1001), false},
		{"whitespace does not count", "         a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validReviewDraft()
			draft.Body = tt.body

			_, errs := ValidateReview(draft)
			if tt.ok {
				assert.NotContains(t, errs, "body")
			} else {
				assert.Contains(t, errs, "body")
			}
		})
	}
}

func TestValidateReviewBodyLengthCountsCharacters(t *testing.T) {
	// Multibyte characters count once each, not per encoded byte.
	draft := validReviewDraft()
	draft.Body = strings.Repeat("स", 9)

	_, errs := ValidateReview(draft)
	assert.Contains(t, errs, "body", "nine characters stay below the minimum regardless of byte length")

	draft.Body = strings.Repeat("स", 1000)
	submission, errs := ValidateReview(draft)
	require.Empty(t, errs)
	assert.Equal(t, draft.Body, submission.Body)
}

func TestValidateReviewIsIdempotentOnFields(t *testing.T) {
	// Re-validating the same draft reports the same field set, not duplicates.
	draft := ReviewDraft{Body: "short"}

	first, _ := ValidateReview(draft)
	require.Nil(t, first)
	_, errs1 := ValidateReview(draft)
	_, errs2 := ValidateReview(draft)

	assert.Equal(t, errs1, errs2)
}

func TestValidateComplaintValidDraft(t *testing.T) {
	submission, errs := ValidateComplaint(validComplaintDraft())

	require.Empty(t, errs)
	require.NotNil(t, submission)
	assert.Equal(t, domain.KindComplaint, submission.Kind)
	assert.Equal(t, []string{domain.IssueQuality, domain.IssueSafety}, submission.Issues)
	assert.Equal(t, domain.SeverityHigh, submission.Severity)
	assert.Equal(t, "Asha Verma", submission.AuthorName, "author is the contact name")
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), submission.IncidentDate)
}

func TestValidateComplaintDescriptionLength(t *testing.T) {
	draft := validComplaintDraft()
	draft.Description = strings.Repeat("a", 49)
	_, errs := ValidateComplaint(draft)
	assert.Contains(t, errs, "description")

	draft.Description = strings.Repeat("a", 50)
	_, errs = ValidateComplaint(draft)
	assert.NotContains(t, errs, "description")
}

func TestValidateComplaintDescriptionCountsCharacters(t *testing.T) {
	// 17 multibyte characters encode to more than 50 bytes but must still
	// fail the 50-character minimum.
	draft := validComplaintDraft()
	draft.Description = strings.Repeat("ख", 17)
	_, errs := ValidateComplaint(draft)
	assert.Contains(t, errs, "description")

	draft.Description = strings.Repeat("ख", 50)
	_, errs = ValidateComplaint(draft)
	assert.NotContains(t, errs, "description")
}

func TestValidateComplaintAggregatesAllErrors(t *testing.T) {
	draft := ComplaintDraft{
		ProductID:      "",
		SelectedIssues: nil,
		Severity:       "Catastrophic",
		IncidentDate:   "not-a-date",
		Description:    "too short",
		Evidence: []domain.FileRef{
			{URL: "x", MIMEType: "image/gif", SizeBytes: 100},
		},
		PurchaseProof: &domain.FileRef{URL: "y", MIMEType: "application/pdf", SizeBytes: 6 << 20},
		Contact:       domain.ContactInfo{Name: "", Email: "not-an-email", Phone: "12345"},
	}

	submission, errs := ValidateComplaint(draft)

	assert.Nil(t, submission)
	for _, field := range []string{
		"product_id", "selected_issues", "severity", "incident_date",
		"description", "evidence[0]", "purchase_verification",
		"contact.name", "contact.email", "contact.phone",
	} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateComplaintIssueTaxonomy(t *testing.T) {
	draft := validComplaintDraft()
	draft.SelectedIssues = []string{"Quality", "Bogus"}

	_, errs := ValidateComplaint(draft)
	assert.Contains(t, errs, "selected_issues")
}

func TestValidateComplaintIncidentDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"valid past date", "2026-01-02", true},
		{"empty", "", false},
		{"wrong layout", "02/01/2026", false},
		{"future date", time.Now().AddDate(0, 0, 2).Format("2006-01-02"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validComplaintDraft()
			draft.IncidentDate = tt.date

			_, errs := ValidateComplaint(draft)
			if tt.ok {
				assert.NotContains(t, errs, "incident_date")
			} else {
				assert.Contains(t, errs, "incident_date")
			}
		})
	}
}

func TestValidateComplaintContactRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ContactInfo)
		field   string
		wantErr bool
	}{
		{"valid contact", func(*domain.ContactInfo) {}, "", false},
		{"missing name", func(c *domain.ContactInfo) { c.Name = " " }, "contact.name", true},
		{"bad email", func(c *domain.ContactInfo) { c.Email = "user@host" }, "contact.email", true},
		{"short phone", func(c *domain.ContactInfo) { c.Phone = "98765" }, "contact.phone", true},
		{"phone with letters", func(c *domain.ContactInfo) { c.Phone = "98765abcde" }, "contact.phone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validComplaintDraft()
			tt.mutate(&draft.Contact)

			_, errs := ValidateComplaint(draft)
			if tt.wantErr {
				assert.Contains(t, errs, tt.field)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateComplaintFileRules(t *testing.T) {
	t.Run("oversized evidence", func(t *testing.T) {
		draft := validComplaintDraft()
		draft.Evidence = []domain.FileRef{
			{URL: "a", MIMEType: "video/mp4", SizeBytes: 11 << 20},
		}
		_, errs := ValidateComplaint(draft)
		assert.Contains(t, errs, "evidence[0]")
	})

	t.Run("evidence type whitelist", func(t *testing.T) {
		draft := validComplaintDraft()
		draft.Evidence = []domain.FileRef{
			{URL: "a", MIMEType: "application/pdf", SizeBytes: 100},
		}
		_, errs := ValidateComplaint(draft)
		assert.Contains(t, errs, "evidence[0]")
	})

	t.Run("purchase proof accepts pdf", func(t *testing.T) {
		draft := validComplaintDraft()
		draft.PurchaseProof = &domain.FileRef{URL: "r", MIMEType: "application/pdf", SizeBytes: 5 << 20}
		_, errs := ValidateComplaint(draft)
		assert.Empty(t, errs)
	})

	t.Run("no attachments is fine", func(t *testing.T) {
		draft := validComplaintDraft()
		draft.Evidence = nil
		draft.PurchaseProof = nil
		_, errs := ValidateComplaint(draft)
		assert.Empty(t, errs)
	})
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{
		"body":       "too short",
		"product_id": "product id is required",
	}

	// Sorted by field name for deterministic messages.
	assert.Equal(t, "body: too short; product_id: product id is required", errs.Error())
}
