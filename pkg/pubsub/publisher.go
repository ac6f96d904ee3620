package pubsub

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	Producer           = "lead-receptionist"
	LeadFinalizedKey   = "leads.finalized.v1"
	defaultExchange    = "leads"
	CRMStatusSubmitted = "submitted"
	CRMStatusFailed    = "failed"
)

type Meta struct {
	// Trace / request correlation ID
	CorrelationID *string `json:"correlation_id,omitempty"`
	// Unique event ID
	ID       string    `json:"id"`
	Producer *string   `json:"producer,omitempty"`
	Time     time.Time `json:"time"`
	// Event name and version, e.g. leads.finalized.v1
	Type string `json:"type"`
}

type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

type LeadFinalizedData struct {
	Identity  string             `json:"identity"`
	Fields    map[string]*string `json:"fields"`
	CRMStatus string             `json:"crm_status"`
	CRMError  string             `json:"crm_error,omitempty"`
}

func NewEnvelope(eventType, correlationID string, data any) Envelope {
	producer := Producer
	meta := Meta{
		ID:       uuid.NewString(),
		Producer: &producer,
		Time:     time.Now().UTC(),
		Type:     eventType,
	}
	if correlationID != "" && correlationID != "unknown" {
		meta.CorrelationID = &correlationID
	}
	return Envelope{Meta: meta, Data: data}
}

type Publisher interface {
	Publish(ctx context.Context, key string, msg Envelope) error
	Close() error
}

type rmqClient struct {
	conn     *amqp091.Connection
	exchange string
	log      *logrus.Logger
}

// NewFromEnv returns a nil Publisher when AMQP_URL is unset.
func NewFromEnv(logger *logrus.Logger) (Publisher, error) {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		logger.Info("AMQP_URL not set, lead events disabled")
		return nil, nil
	}
	exchange := os.Getenv("AMQP_EXCHANGE")
	if exchange == "" {
		exchange = defaultExchange
	}
	return New(url, exchange, logger)
}

func New(url, exchange string, logger *logrus.Logger) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(
		exchange, "topic", true, false, false, false, nil,
	); err != nil {
		conn.Close()
		return nil, err
	}

	return &rmqClient{
		conn:     conn,
		exchange: exchange,
		log:      logger,
	}, nil
}

func (r *rmqClient) Publish(ctx context.Context, key string, msg Envelope) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	body, err := jsoniter.Marshal(msg)
	if err != nil {
		return err
	}

	msgID := msg.Meta.ID
	if msgID == "" {
		msgID = uuid.NewString()
	}
	cid := msgID
	if msg.Meta.CorrelationID != nil {
		cid = *msg.Meta.CorrelationID
	}

	err = ch.PublishWithContext(
		ctx, r.exchange, key, false, false,
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			MessageId:     msgID,
			CorrelationId: cid,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
	if err == nil {
		r.log.WithFields(logrus.Fields{
			"key":      key,
			"exchange": r.exchange,
		}).Info("published")
	}
	return err
}

func (r *rmqClient) Close() error {
	return r.conn.Close()
}
