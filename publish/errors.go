package publish

import "errors"

var (
	// ErrTopicsNotConfigured indicates the topic map is empty or unset.
	ErrTopicsNotConfigured = errors.New("publish: topics not configured")

	// ErrInvalidTopics indicates the topic map is not a JSON object of strings.
	ErrInvalidTopics = errors.New("publish: invalid topics configuration")

	// ErrTopicNotFound indicates the requested topic is missing from the map.
	ErrTopicNotFound = errors.New("publish: topic not found")

	// ErrMissingTopic indicates a message has no destination.
	ErrMissingTopic = errors.New("publish: message has no topic")

	// ErrPublishFailed indicates the publish service rejected or failed the call.
	ErrPublishFailed = errors.New("publish: publish failed")
)
