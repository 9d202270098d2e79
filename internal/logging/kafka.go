package logging

import (
	"bytes"
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter produces every encoded log entry as one Kafka message. It satisfies
// zapcore.WriteSyncer so it can be teed next to the console or file core.
type KafkaWriter struct {
	writer messageWriter
}

// messageWriter is the part of *kafka.Writer the tee uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter creates an asynchronous writer for the given brokers and topic
func NewKafkaWriter(brokers []string, topic string) *KafkaWriter {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
	}

	return &KafkaWriter{writer: w}
}

// Write copies p because zap reuses its buffer once Write returns
func (w *KafkaWriter) Write(p []byte) (int, error) {
	value := make([]byte, len(p))
	copy(value, p)

	err := w.writer.WriteMessages(context.Background(), kafka.Message{
		Value: bytes.TrimRight(value, "\n"),
		Time:  time.Now(),
	})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sync is a no-op; the async writer flushes on its own batch timeout
func (w *KafkaWriter) Sync() error {
	return nil
}

// Close flushes pending messages and closes the writer
func (w *KafkaWriter) Close() error {
	return w.writer.Close()
}
