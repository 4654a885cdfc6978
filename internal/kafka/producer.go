package kafka

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Topics des événements boutique
const (
	TopicOrderCreated = "order.created"
	TopicOrderPaid    = "order.paid"
	TopicStockLow     = "stock.low"
	TopicStockChanged = "stock.changed"
)

// Envelope enveloppe chaque événement publié (id + type + horodatage)
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

var writer *kafkago.Writer

// InitProducer initialise le writer Kafka (KAFKA_BROKERS, séparés par virgule).
// Absence de config = événements désactivés, pas une erreur fatale.
func InitProducer() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("⚠️ Kafka non configuré, événements désactivés")
		return
	}

	writer = &kafkago.Writer{
		Addr:         kafkago.TCP(strings.Split(brokers, ",")...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		Async:        true, // fire-and-forget, les erreurs partent dans le logger
		Logger:       kafkago.LoggerFunc(func(msg string, args ...interface{}) {}),
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("❌ Kafka: "+msg, args...)
		}),
	}
	log.Println("✅ Producteur Kafka prêt:", brokers)
}

// Publish publie un événement enveloppé sur le topic donné.
// key sert au partitionnement (id de commande ou de produit).
func Publish(topic, key string, payload interface{}) {
	if writer == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Println("❌ Kafka: payload non sérialisable:", err)
		return
	}

	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  topic,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}

	value, _ := json.Marshal(env)

	err = writer.WriteMessages(context.Background(), kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		log.Println("❌ Kafka: publication échouée:", err)
	}
}

// Close ferme le writer (flush des messages async en attente)
func Close() {
	if writer != nil {
		_ = writer.Close()
	}
}
