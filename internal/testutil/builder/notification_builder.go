//go:build unit || e2e

package builder

import (
	"encoding/json"

	"parkflow/internal/infra/gateway"
)

// NotificationBuilder produces gateway callback bodies signed with ServerKey.
type NotificationBuilder struct {
	OrderID           string
	StatusCode        string
	GrossAmount       string
	TransactionStatus string
	ServerKey         string
	// Signature overrides the computed signature when set
	Signature string
}

func NewNotificationBuilder(orderID, serverKey string) *NotificationBuilder {
	return &NotificationBuilder{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       "10000.00",
		TransactionStatus: "settlement",
		ServerKey:         serverKey,
	}
}

func (b *NotificationBuilder) With(mutate func(*NotificationBuilder)) *NotificationBuilder {
	mutate(b)
	return b
}

func (b *NotificationBuilder) Build() gateway.Notification {
	sig := b.Signature
	if sig == "" {
		sig = gateway.Signature(b.OrderID, b.StatusCode, b.GrossAmount, b.ServerKey)
	}
	return gateway.Notification{
		OrderID:           b.OrderID,
		StatusCode:        b.StatusCode,
		GrossAmount:       b.GrossAmount,
		SignatureKey:      sig,
		TransactionStatus: b.TransactionStatus,
	}
}

func (b *NotificationBuilder) BuildPayload() []byte {
	payload, err := json.Marshal(b.Build())
	if err != nil {
		panic(err)
	}
	return payload
}
