package stream

import (
	"context"
	"net/http"

	formattererrors "phonefmt/internal/formatter/errors"
	"phonefmt/internal/formatter/service"
	apperrors "phonefmt/pkg/errors"
	"phonefmt/pkg/kafka"
	"phonefmt/pkg/logger"
	"phonefmt/pkg/model"
)

const (
	EventFormatRequested = "phone.format.requested"
	EventFormatted       = "phone.formatted"

	SchemaVersion = "1"

	HeaderRequestEventID = "request-event-id"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Processor turns format requests read from Kafka into published results.
type Processor struct {
	service   service.FormatterService
	publisher Publisher
	source    string
	log       *logger.Logger
}

func NewProcessor(service service.FormatterService, publisher Publisher, source string, log *logger.Logger) *Processor {
	return &Processor{
		service:   service,
		publisher: publisher,
		source:    source,
		log:       log,
	}
}

// Handle is a kafka.MessageHandler. Requests are always formatted strictly;
// bad payloads and unparseable numbers are permanent failures, a failed
// publish is transient.
func (p *Processor) Handle(ctx context.Context, msg kafka.Message) error {
	var req model.FormatRequest
	if err := msg.DecodeValue(&req); err != nil {
		return kafka.NewPermanentError(formattererrors.ErrInvalidPayload.Error(), err)
	}
	req.Strict = true

	res, err := p.service.Format(ctx, &req)
	if err != nil {
		return classify(err)
	}

	key := msg.Key
	if key == "" {
		key = req.Number
	}
	correlationID := msg.GetCorrelationID()
	if correlationID == "" {
		correlationID = msg.GetEventID()
	}

	out, err := kafka.NewMessage().
		WithKey(key).
		WithValue(res).
		WithEventType(EventFormatted).
		WithSchemaVersion(SchemaVersion).
		WithCorrelationID(correlationID).
		WithHeader(HeaderRequestEventID, msg.GetEventID()).
		WithSource(p.source).
		BuildE()
	if err != nil {
		return kafka.NewPermanentError("encode format result", err)
	}

	if err := p.publisher.Publish(ctx, out); err != nil {
		return kafka.NewTransientError("publish format result", err)
	}

	p.log.Debug("Format result published",
		"key", key,
		"correlation_id", correlationID,
		"style", res.Style,
	)
	return nil
}

// classify maps service errors onto retry semantics: client errors never
// succeed on retry, server-side ones might.
func classify(err error) error {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		return kafka.NewTransientError(appErr.Message, err)
	}
	return kafka.NewPermanentError(appErr.Message, err)
}
