package entity

import "time"

// PurchaseCode is generated for the admin console and only becomes durable
// once a registration embeds it into a Guest.
type PurchaseCode struct {
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}
