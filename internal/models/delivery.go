package models

import "time"

// Delivery kinds recorded in the delivery log
const (
	DeliveryKindHandshake = "handshake"
	DeliveryKindEvents    = "events"
	DeliveryKindRejected  = "rejected"
)

// Delivery is one recorded webhook delivery outcome. The delivery log is
// observability only; idempotency is decided solely by marker stories on the
// task itself.
type Delivery struct {
	ID         string    `badgerhold:"key" json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Kind       string    `json:"kind"`
	Status     int       `json:"status"`
	EventCount int       `json:"event_count"`
	Processed  int       `json:"processed"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Error      string    `json:"error,omitempty"`
}
