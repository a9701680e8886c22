// Package events connects the planner to the message brokers: live traffic
// readings arrive over Kafka and emergency routes leave over RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// MessageReader is the subset of *kafka.Reader the feed uses, so tests can
// supply their own.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TrafficSink receives decoded readings. *data.Store satisfies it.
type TrafficSink interface {
	ApplyTraffic(update models.TrafficUpdate) error
}

type TrafficFeed struct {
	reader  MessageReader
	sink    TrafficSink
	backoff time.Duration
}

func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
}

func NewTrafficFeed(reader MessageReader, sink TrafficSink) *TrafficFeed {
	return &TrafficFeed{reader: reader, sink: sink, backoff: time.Second}
}

// Run consumes until ctx is cancelled or the reader is closed. Malformed
// messages and readings for unknown roads are logged and committed so they
// are not redelivered.
func (f *TrafficFeed) Run(ctx context.Context) error {
	log.Println("Starting traffic feed...")
	defer f.reader.Close()

	for {
		msg, err := f.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				log.Println("Traffic feed stopped")
				return nil
			}
			log.Printf("Error reading traffic message: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(f.backoff):
			}
			continue
		}

		f.handle(msg)

		if err := f.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("Failed to commit offset %d on partition %d: %v", msg.Offset, msg.Partition, err)
		}
	}
}

func (f *TrafficFeed) handle(msg kafka.Message) {
	var update models.TrafficUpdate
	if err := json.Unmarshal(msg.Value, &update); err != nil {
		log.Printf("Skipping malformed traffic message at offset %d: %v", msg.Offset, err)
		return
	}
	if err := f.sink.ApplyTraffic(update); err != nil {
		log.Printf("Rejected traffic update for %s: %v", update.Road, err)
		return
	}
	log.Printf("Traffic on %s (%s) set to %.0f vehicles/h", update.Road, update.TimeOfDay, update.Vehicles)
}
