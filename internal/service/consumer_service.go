package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/repository/specification"
	"angus-connect-be/internal/repository/unitofwork"
	"angus-connect-be/pkg/events"
	pktNats "angus-connect-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the noticia publication topic: it loads the freshly
// created noticia and fans it out to the NATS event bus so the notification
// worker can reach every member. Keeping the fan-out off the request path
// keeps noticia creation fast even when NATS is slow.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishNoticiaMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	noticia, err := uow.NoticiaRepository().FindOne(ctx, specification.ById{Id: payload.NoticiaId})
	if err != nil {
		log.Printf("[ERROR] Failed to get noticia %s: %v", payload.NoticiaId, err)
		msg.Nack()
		return
	}
	if noticia == nil {
		// Deleted before the worker got to it.
		log.Printf("[WARN] Noticia not found: %s", payload.NoticiaId)
		msg.Ack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeNoticiaPublicada,
			Data: map[string]interface{}{
				"entity_type": "noticia",
				"entity_id":   noticia.Id.String(),
				"titulo":      noticia.Titulo,
				"categoria":   noticia.Categoria,
				"autor":       noticia.Autor,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[ERROR] Failed to publish NOTICIA_PUBLICADA for %s: %v", noticia.Id, err)
			msg.Nack()
			return
		}
	}

	msg.Ack()
}
