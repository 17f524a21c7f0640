package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/webshop/pkg/messaging"
)

// ProductSavedEvent is published after a product document has been inserted.
type ProductSavedEvent struct {
	Type          string    `json:"type"`
	ArticleNumber string    `json:"articleNumber"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	SavedAt       time.Time `json:"saved_at"`
}

func (e ProductSavedEvent) Subject() string {
	return messaging.ProductsSavedSubject
}

func (e ProductSavedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
