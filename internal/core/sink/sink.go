// Package sink publishes validation-failure records to the pipeline's
// bad-row stream over a Watermill publisher, so any supported broker can
// carry them.
package sink

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	errspkg "github.com/streamforge/enrichkit/internal/core/errors"
	idspkg "github.com/streamforge/enrichkit/internal/core/ids"
	jsoncodec "github.com/streamforge/enrichkit/internal/core/jsoncodec"
	loggingpkg "github.com/streamforge/enrichkit/internal/core/logging"
	selfdescpkg "github.com/streamforge/enrichkit/internal/core/selfdesc"
)

// MetadataKeyRecordSchema carries the failure record's schema URI in message
// metadata, so consumers can route without decoding the payload.
const MetadataKeyRecordSchema = "failure_record_schema"

// FailureSink forwards failure records to a topic.
type FailureSink struct {
	publisher message.Publisher
	topic     string
	logger    loggingpkg.ServiceLogger
}

// NewFailureSink wires a sink to an existing publisher.
func NewFailureSink(publisher message.Publisher, topic string, logger loggingpkg.ServiceLogger) (*FailureSink, error) {
	if publisher == nil {
		return nil, errspkg.ErrPublisherRequired
	}
	if topic == "" {
		return nil, errspkg.ErrTopicRequired
	}
	if logger == nil {
		logger = loggingpkg.Nop()
	}

	return &FailureSink{publisher: publisher, topic: topic, logger: logger}, nil
}

// Publish emits one message per failure record, in order. Publishing stops
// at the first broker error; the caller decides whether to retry the event.
func (s *FailureSink) Publish(ctx context.Context, records []selfdescpkg.Document) error {
	for _, record := range records {
		payload, err := jsoncodec.Marshal(record)
		if err != nil {
			return err
		}

		msg := message.NewMessage(idspkg.NewID(), payload)
		msg.Metadata.Set(MetadataKeyRecordSchema, record.Schema.String())
		msg.SetContext(ctx)

		if err := s.publisher.Publish(s.topic, msg); err != nil {
			s.logger.Error("failed to publish failure record", err, loggingpkg.LogFields{
				"topic":  s.topic,
				"schema": record.Schema.String(),
			})
			return err
		}
	}

	s.logger.Trace("published failure records", loggingpkg.LogFields{
		"topic": s.topic,
		"count": len(records),
	})
	return nil
}
