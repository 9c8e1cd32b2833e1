// Package kafka publishes notifications to a Kafka topic for downstream delivery
// (push, e-mail, realtime sockets).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"farmtrade/internal/core/domain/model/notification"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "farmtrade.notifications"

type message struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	RelatedID    string    `json:"related_id"`
	RelatedModel string    `json:"related_model"`
	ActionURL    string    `json:"action_url,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewSyncProducer connects a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	return sarama.NewSyncProducer(brokers, config)
}

// NotificationSink writes each notification as a JSON message keyed by recipient, so
// one user's notifications stay ordered within a partition.
type NotificationSink struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logrus.Entry
}

func NewNotificationSink(producer sarama.SyncProducer, topic string, logger *logrus.Logger) *NotificationSink {
	if topic == "" {
		topic = DefaultTopic
	}
	return &NotificationSink{
		producer: producer,
		topic:    topic,
		logger:   logger.WithField("component", "kafka_notification_sink"),
	}
}

func (s *NotificationSink) Name() string {
	return "kafka"
}

func (s *NotificationSink) Deliver(_ context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return err
		}
		data, err := json.Marshal(toMessage(n))
		if err != nil {
			return fmt.Errorf("encode notification %s: %w", n.ID, err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: s.topic,
			Key:   sarama.StringEncoder(n.UserID.String()),
			Value: sarama.ByteEncoder(data),
		})
	}

	if err := s.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("publish %d notifications to %s: %w", len(msgs), s.topic, err)
	}

	s.logger.WithFields(logrus.Fields{
		"topic": s.topic,
		"count": len(msgs),
	}).Debug("notifications published")
	return nil
}

func (s *NotificationSink) Close() error {
	return s.producer.Close()
}

func toMessage(n notification.Notification) message {
	return message{
		ID:           n.ID.String(),
		UserID:       n.UserID.String(),
		Kind:         string(n.Kind),
		Title:        n.Title,
		Message:      n.Message,
		RelatedID:    n.RelatedID.String(),
		RelatedModel: n.RelatedModel,
		ActionURL:    n.ActionURL,
		Icon:         n.Icon,
		Priority:     string(n.Priority),
		CreatedAt:    n.CreatedAt,
	}
}
