package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	customers = []string{"Kamrul Islam", "Alif", "Fatema Tuz Johra", "Riha", "Mehedi HasaN"}
	items     = []string{"MSI Gaming Laptop", "Mechanical Keyboard", "Gaming Mouse", `Monitor 27"`, "USB C Cable"}
)

// generateOrder returns a raw order body. Roughly one in five is invalid on purpose
// so the dead letter topic gets traffic too.
func generateOrder() map[string]any {
	order := map[string]any{
		"customer_name": customers[rand.Intn(len(customers))],
		"item_name":     items[rand.Intn(len(items))],
		"quantity":      rand.Intn(5) + 1,
		"total_price":   fmt.Sprintf("%d.%02d", rand.Intn(2000), rand.Intn(100)+1),
	}

	switch rand.Intn(10) {
	case 0:
		order["quantity"] = 0
	case 1:
		order["customer_name"] = "<script>"
	}
	return order
}

func main() {
	brokers := flag.String("brokers", "localhost:9092", "comma separated kafka brokers")
	topic := flag.String("topic", "orders", "topic to publish orders to")
	interval := flag.Duration("interval", 2*time.Second, "delay between orders")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:                  *topic,
		AllowAutoTopicCreation: true,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			order := generateOrder()
			data, err := json.Marshal(order)
			if err != nil {
				logger.Error("failed to marshal order", slog.Any("error", err))
				continue
			}
			if err := writer.WriteMessages(ctx, kafka.Message{Value: data}); err != nil {
				logger.Error("failed to publish order", slog.Any("error", err))
				continue
			}
			logger.Info("order published", slog.String("body", string(data)))
		case <-ctx.Done():
			return
		}
	}
}
