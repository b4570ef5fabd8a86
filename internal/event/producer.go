package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/pkg/kafka"
	"github.com/trustmarket/trustmarket/pkg/logger"
)

const (
	source = "trustmarket"

	// TopicReviewSubmitted carries accepted review submissions.
	TopicReviewSubmitted = "trustmarket.feedback.review.submitted"
	// TopicComplaintSubmitted carries accepted complaint submissions.
	TopicComplaintSubmitted = "trustmarket.feedback.complaint.submitted"
)

// Publisher abstracts the Kafka producer for testing.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// FeedbackProducer publishes feedback lifecycle events.
type FeedbackProducer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewFeedbackProducer creates a feedback event producer.
func NewFeedbackProducer(publisher Publisher, log *slog.Logger) *FeedbackProducer {
	return &FeedbackProducer{
		publisher: publisher,
		logger:    log,
	}
}

// SubmissionAccepted publishes an event for a submission that passed
// moderation and was persisted. The topic and event type depend on the
// submission kind.
func (p *FeedbackProducer) SubmissionAccepted(ctx context.Context, s *domain.FeedbackSubmission) error {
	topic := TopicReviewSubmitted
	eventType := "feedback.review.submitted"
	if s.Kind == domain.KindComplaint {
		topic = TopicComplaintSubmitted
		eventType = "feedback.complaint.submitted"
	}

	evt, err := kafka.NewEvent(eventType, s.ID, "feedback", source, s)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}

	if corrID := logger.CorrelationIDFromContext(ctx); corrID != "" {
		evt.WithCorrelationID(corrID)
	}

	return p.publisher.Publish(ctx, topic, evt)
}
