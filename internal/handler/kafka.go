package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/SergeyBogomolovv/shop-orders/internal/config"
	"github.com/SergeyBogomolovv/shop-orders/internal/service"
	"github.com/segmentio/kafka-go"
)

const sourceKafka = "kafka"

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, raw any) (int64, error)
}

// kafkaHandler reads raw orders from a topic and feeds them into the same
// validated create path as POST /orders.
type kafkaHandler struct {
	dlq    messageWriter
	reader messageReader
	logger *slog.Logger
	svc    OrderCreator
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, svc OrderCreator) *kafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
		MaxWait: cfg.ReaderMaxWait,
	})
	dlq := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}

	return newKafkaHandler(logger, reader, dlq, svc)
}

func newKafkaHandler(logger *slog.Logger, reader messageReader, dlq messageWriter, svc OrderCreator) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: reader,
		dlq:    dlq,
		svc:    svc,
	}
}

// Consume blocks until ctx is done or the reader is closed.
func (h *kafkaHandler) Consume(ctx context.Context) error {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		h.process(ctx, m)
	}
}

func (h *kafkaHandler) process(ctx context.Context, m kafka.Message) {
	start := time.Now()
	defer func() {
		messageProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	id, err := h.handleCreateOrder(ctx, m)
	if err != nil {
		messagesFailed.Inc()
		h.logger.Warn("failed to handle message",
			slog.Any("error", err),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
		)

		if err := h.WriteToDLQ(ctx, m, err); err != nil {
			h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
			// not committed, the message is redelivered after restart
			return
		}
		messagesDLQ.Inc()
	} else {
		messagesProcessed.Inc()
		h.logger.Debug("order created from message", slog.Int64("order_id", id))
	}

	if err := h.reader.CommitMessages(ctx, m); err != nil {
		commitErrors.Inc()
		h.logger.Error("failed to commit message", slog.Any("error", err))
	}
}

func (h *kafkaHandler) handleCreateOrder(ctx context.Context, m kafka.Message) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(m.Value))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		ordersRejected.WithLabelValues(sourceKafka).Inc()
		return 0, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	id, err := h.svc.CreateOrder(ctx, raw)
	if _, ok := service.IsValidationError(err); ok {
		ordersRejected.WithLabelValues(sourceKafka).Inc()
		return 0, err
	}
	if err != nil {
		return 0, err
	}

	ordersCreated.WithLabelValues(sourceKafka).Inc()
	return id, nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message, cause error) error {
	return h.dlq.WriteMessages(ctx, kafka.Message{
		Topic: fmt.Sprintf("%s-dlq", m.Topic),
		Key:   m.Key,
		Value: m.Value,
		Headers: append(slices.Clone(m.Headers), kafka.Header{
			Key:   "error",
			Value: []byte(cause.Error()),
		}),
	})
}

func (h *kafkaHandler) Close() error {
	return errors.Join(h.reader.Close(), h.dlq.Close())
}
