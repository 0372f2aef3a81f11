package events

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/scheduling-api/internal/audit"
)

// Message is the payload written to the change-event topic.
type Message struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityKey  *uint     `json:"entity_key,omitempty"`
	OperatorID *uint     `json:"operator_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type idSource struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newIDSource() *idSource {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &idSource{entropy: ulid.Monotonic(src, 0)}
}

func (s *idSource) next(at time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), s.entropy).String()
}

type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	ids    *idSource
}

var _ audit.Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
		ids:   newIDSource(),
	}
}

func (p *KafkaPublisher) message(ev audit.Event) Message {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	return Message{
		ID:         p.ids.next(at),
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityKey:  ev.EntityKey,
		OperatorID: ev.OperatorID,
		Metadata:   ev.Metadata,
		OccurredAt: at,
	}
}

// Publish writes ev keyed by entity so events of one entity stay ordered
// within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, ev audit.Event) error {
	value, err := json.Marshal(p.message(ev))
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(ev.Entity),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
