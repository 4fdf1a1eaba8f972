// Package event publishes directory change notifications.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-directory-service/pkg/broker"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"go.uber.org/zap"
)

type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

type Event struct {
	Entity     string    `json:"entity"`
	Action     Action    `json:"action"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// KafkaPublisher keys messages by entity id so one entity's events stay ordered.
type KafkaPublisher struct {
	producer *broker.KafkaProducer
}

func NewKafkaPublisher(producer *broker.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, []byte(ev.ID), value)
}

const publishTimeout = 3 * time.Second

// Emitter publishes on a best-effort basis: failures are logged, never returned.
type Emitter struct {
	pub    Publisher
	logger logger.ZapLogger
	now    func() time.Time
}

func NewEmitter(pub Publisher, log logger.ZapLogger) *Emitter {
	if pub == nil {
		pub = Noop{}
	}
	return &Emitter{pub: pub, logger: log, now: time.Now}
}

func (e *Emitter) Emit(ctx context.Context, entity string, action Action, id string, data any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := Event{Entity: entity, Action: action, ID: id, OccurredAt: e.now(), Data: data}
	if err := e.pub.Publish(ctx, ev); err != nil {
		e.logger.Warn("failed to publish event",
			zap.String("entity", entity),
			zap.String("action", string(action)),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}
