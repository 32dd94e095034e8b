package entity

// Topping event types published to the topping topic for downstream
// consumers (order and pricing services).
const (
	EventToppingCreate = "TOPPING_CREATE"
	EventToppingUpdate = "TOPPING_UPDATE"
)

// ToppingEventData is the payload downstream consumers key pricing on.
type ToppingEventData struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	TenantID string  `json:"tenantId"`
}

// ToppingEvent is emitted after a topping create or update has been
// persisted. Deletes are intentionally not published.
type ToppingEvent struct {
	EventType string           `json:"event_type"`
	Data      ToppingEventData `json:"data"`
}
