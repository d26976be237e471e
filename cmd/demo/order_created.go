package main

import "time"

// OrderCreated는 order.created 토픽의 payload입니다.
type OrderCreated struct {
	OrderID    int64     `json:"orderId"`
	CustomerID string    `json:"customerId"`
	Amount     int64     `json:"amount"`
	At         time.Time `json:"at"`
}
