package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageWriter интерфейс писателя kafka (реализуется *kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события заказов в kafka
// Ключ сообщения ID заказа, поэтому события одного заказа попадают в одну партицию по порядку
type Publisher struct {
	writer MessageWriter
	now    func() time.Time
	log    Logger
}

// NewKafkaWriter создает writer для указанных брокеров и топика
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewPublisher создает новый экземпляр издателя
func NewPublisher(writer MessageWriter, log Logger) *Publisher {
	return &Publisher{
		writer: writer,
		now:    time.Now,
		log:    log,
	}
}

// PublishOrderEvent публикует событие, заполняя event_id, event_type и occurred_at
func (p *Publisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.EventType == "" {
		event.EventType = EventTypeOrderStatusChanged
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: order_id=%d: %v", ErrMarshal, event.OrderID, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: order_id=%d: %v", ErrPublish, event.OrderID, err)
	}

	p.log.Info("Published %s for order_id=%d status=%s", event.EventType, event.OrderID, event.Status)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher заглушка, используемая при выключенной kafka
type NopPublisher struct{}

// PublishOrderEvent ничего не делает
func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error {
	return nil
}

// Close ничего не делает
func (NopPublisher) Close() error {
	return nil
}
