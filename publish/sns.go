package publish

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the subset of the SNS client used by SNSPublisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes messages to Amazon SNS topics.
type SNSPublisher struct {
	client SNSAPI
}

// NewSNSPublisher loads the default AWS configuration and creates a publisher.
// An empty region leaves region resolution to the SDK's default chain.
func NewSNSPublisher(ctx context.Context, region string) (*SNSPublisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewSNSPublisherWithClient(sns.NewFromConfig(cfg)), nil
}

// NewSNSPublisherWithClient creates a publisher around an existing client.
func NewSNSPublisherWithClient(client SNSAPI) *SNSPublisher {
	return &SNSPublisher{client: client}
}

// Publish sends msg to its topic.
func (p *SNSPublisher) Publish(ctx context.Context, msg Message) (Receipt, error) {
	if msg.TopicARN == "" {
		return Receipt{}, ErrMissingTopic
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(msg.TopicARN),
		Message:  aws.String(msg.Body),
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return Receipt{
		MessageID:      aws.ToString(out.MessageId),
		SequenceNumber: aws.ToString(out.SequenceNumber),
	}, nil
}

var _ Publisher = (*SNSPublisher)(nil)
