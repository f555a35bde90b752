package eventbus

import (
	"StegoGuard/internal/core/ports"
	"context"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/rs/zerolog"
)

// SubscribeAuditLog writes every image pipeline event to the log.
func SubscribeAuditLog(bus ports.EventBus, baseLogger *zerolog.Logger) {
	log := baseLogger.With().Str("component", "audit_log").Logger()

	handler := func(ctx context.Context, event ports.Event) error {
		evt, ok := event.Data.(cloudevents.Event)
		if !ok {
			return fmt.Errorf("topic %s: expected a CloudEvent, got %T", event.Topic, event.Data)
		}

		var fields map[string]interface{}
		if err := evt.DataAs(&fields); err != nil {
			return fmt.Errorf("topic %s: decode data: %w", event.Topic, err)
		}

		log.Info().
			Str("event_id", evt.ID()).
			Str("type", evt.Type()).
			Fields(fields).
			Msg("Image event")
		return nil
	}

	bus.Subscribe(ports.TopicImageSigned, handler)
	bus.Subscribe(ports.TopicImageRejected, handler)
}
