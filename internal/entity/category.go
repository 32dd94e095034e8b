package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Price type values allowed in a price configuration.
const (
	PriceTypeBase       = "base"
	PriceTypeAdditional = "additional"
)

// Widget type values allowed for category attributes.
const (
	WidgetTypeSwitch = "switch"
	WidgetTypeRadio  = "radio"
)

// CategoryPriceOption describes how one option group of a category is priced.
type CategoryPriceOption struct {
	PriceType        string   `bson:"priceType" json:"priceType"`
	AvailableOptions []string `bson:"availableOptions" json:"availableOptions"`
}

// CategoryAttribute is a configurable attribute offered by a category,
// rendered by the frontend as the named widget.
type CategoryAttribute struct {
	Name             string   `bson:"name" json:"name"`
	WidgetType       string   `bson:"widgetType" json:"widgetType"`
	DefaultValue     any      `bson:"defaultValue" json:"defaultValue"`
	AvailableOptions []string `bson:"availableOptions" json:"availableOptions"`
}

// Category groups products and defines the pricing/attribute template
// its products follow.
type Category struct {
	ID                 primitive.ObjectID             `bson:"_id,omitempty" json:"id"`
	Name               string                         `bson:"name" json:"name"`
	PriceConfiguration map[string]CategoryPriceOption `bson:"priceConfiguration" json:"priceConfiguration"`
	Attributes         []CategoryAttribute            `bson:"attributes" json:"attributes"`
	HasToppings        bool                           `bson:"hasToppings" json:"hasToppings"`
}
