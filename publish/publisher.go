package publish

import "context"

// Message is a single notification.
type Message struct {
	// TopicARN identifies the destination topic.
	TopicARN string

	// Body is the message payload.
	Body string
}

// Receipt is what the publish service returns for an accepted message.
type Receipt struct {
	MessageID      string `json:"messageId"`
	SequenceNumber string `json:"sequenceNumber,omitempty"`
}

// Publisher sends messages to the publish service.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Publish must honor cancellation/deadlines.
// - Errors: no retries; the first failure is returned.
type Publisher interface {
	Publish(ctx context.Context, msg Message) (Receipt, error)
}

// PublisherFunc adapts an ordinary function to a Publisher.
type PublisherFunc func(ctx context.Context, msg Message) (Receipt, error)

// Publish calls f(ctx, msg).
func (f PublisherFunc) Publish(ctx context.Context, msg Message) (Receipt, error) {
	return f(ctx, msg)
}
