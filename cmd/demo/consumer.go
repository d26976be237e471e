package main

import (
	"context"
	"log/slog"

	"github.com/NARUBROWN/spindle/pkg/header"
)

type OrderConsumer struct{}

func NewOrderConsumer() *OrderConsumer {
	return &OrderConsumer{}
}

func (c *OrderConsumer) OnCreated(ctx context.Context, event OrderCreated, headers header.Values) error {
	slog.InfoContext(ctx, "이벤트 수신",
		"order_id", event.OrderID,
		"customer_id", event.CustomerID,
		"amount", event.Amount,
		"trace", headers.Get("trace-id"),
	)
	return nil
}
