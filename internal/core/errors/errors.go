package errors

import sterrors "errors"

var (
	ErrRegistryRequired  = sterrors.New("enrichkit: schema registry client is required")
	ErrPublisherRequired = sterrors.New("enrichkit: publisher is required")
	ErrTopicRequired     = sterrors.New("enrichkit: topic is required")
	ErrRowSourceRequired = sterrors.New("enrichkit: row source is required")
)
