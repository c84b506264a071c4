package publish

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TopicsEnvVar is the environment variable holding the JSON topic map.
const TopicsEnvVar = "COPILOT_SNS_TOPIC_ARNS"

// DefaultTopic is the topic-map key the health probe publishes to.
const DefaultTopic = "events"

// Topics maps topic names to ARNs.
type Topics map[string]string

// ParseTopics decodes a JSON object of topic name to ARN.
func ParseTopics(raw string) (Topics, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrTopicsNotConfigured
	}

	var topics Topics
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTopics, err)
	}
	if topics == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidTopics)
	}
	return topics, nil
}

// Lookup returns the ARN for name.
func (t Topics) Lookup(name string) (string, error) {
	arn, ok := t[name]
	if !ok || strings.TrimSpace(arn) == "" {
		return "", fmt.Errorf("%w: %q", ErrTopicNotFound, name)
	}
	return arn, nil
}

// TopicSource resolves the destination ARN for a publish.
type TopicSource func() (string, error)

// EnvTopicSource returns a TopicSource that reads variable through getenv and
// looks up name on every call.
func EnvTopicSource(getenv func(string) string, variable, name string) TopicSource {
	return func() (string, error) {
		topics, err := ParseTopics(getenv(variable))
		if err != nil {
			return "", fmt.Errorf("%s: %w", variable, err)
		}
		return topics.Lookup(name)
	}
}

