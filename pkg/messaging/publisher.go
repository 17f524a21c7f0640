// Package messaging defines the events published by the service and the publisher contract.
package messaging

import (
	"context"
)

const (
	// ProductsStream is the JetStream stream holding product events.
	ProductsStream = "PRODUCTS"
	// ProductsSavedSubject is the subject of ProductSavedEvent.
	ProductsSavedSubject = "products.saved"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event. It is used when messaging is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
