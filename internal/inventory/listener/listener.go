package listener

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sellergenix/inventory-service/internal/inventory"
	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/pkg/broker"
	"github.com/sellergenix/inventory-service/pkg/logger"
	"go.uber.org/zap"
)

const eventOrderCreated = "OrderCreated"

type InventoryListener struct {
	consumer broker.MessageReader
	uc       inventory.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewInventoryListener(consumer broker.MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

// Start consumes order events until ctx is cancelled.
func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting order event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID         string             `json:"id"`
	MerchantID string             `json:"merchant_id"`
	Items      []OrderItemPayload `json:"items"`
}

// OrderItemPayload identifies the product by id or SKU. Fulfillment is
// "fba" or "fbm"; empty means FBA.
type OrderItemPayload struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	Fulfillment string `json:"fulfillment"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != eventOrderCreated {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	for _, item := range mergeItems(event.Payload.Items) {
		if item.Quantity <= 0 || (item.ProductID == "" && item.SKU == "") {
			l.logger.Warn("Skipping order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("sku", item.SKU),
				zap.Int("quantity", item.Quantity),
			)
			continue
		}

		err := l.uc.RecordSale(ctx, &dto.RecordSaleInput{
			MerchantID: event.Payload.MerchantID,
			ProductID:  item.ProductID,
			SKU:        item.SKU,
			Channel:    item.Fulfillment,
			Quantity:   item.Quantity,
			OrderID:    event.Payload.ID,
			SoldAt:     event.Timestamp,
		})
		if err != nil {
			l.logger.Error("Failed to record sale for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("product_id", item.ProductID),
				zap.String("sku", item.SKU),
				zap.Error(err),
			)
		}
	}
}

// mergeItems sums lines for the same product and fulfillment channel, since a
// sale is recorded once per order line.
func mergeItems(items []OrderItemPayload) []OrderItemPayload {
	out := make([]OrderItemPayload, 0, len(items))
	seen := make(map[OrderItemPayload]int, len(items))
	for _, item := range items {
		key := OrderItemPayload{
			ProductID:   item.ProductID,
			SKU:         item.SKU,
			Fulfillment: strings.ToLower(item.Fulfillment),
		}
		if i, ok := seen[key]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		seen[key] = len(out)
		out = append(out, item)
	}
	return out
}
