package health

import "errors"

// ErrTopicResolution indicates the publish destination could not be resolved.
var ErrTopicResolution = errors.New("health: cannot resolve publish topic")
