// Package events contains the events published by the services.
package events

import (
	"encoding/json"
	"time"
)

// Product change event types, also used as the last subject token.
const (
	ProductCreated = "created"
	ProductUpdated = "updated"
	ProductDeleted = "deleted"
)

// ProductSubjectPrefix prefixes every product change subject.
const ProductSubjectPrefix = "products."

// ProductSubjects matches every product change subject.
const ProductSubjects = ProductSubjectPrefix + ">"

// ProductEvent describes a change of the product collection. Product holds the record
// after the change, or the removed record for deletions.
type ProductEvent struct {
	Type       string         `json:"type"`
	ProductID  int64          `json:"product_id"`
	Product    map[string]any `json:"product"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func (e ProductEvent) Subject() string {
	return ProductSubjectPrefix + e.Type
}

func (e ProductEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
