package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductPriceOption maps each available option of an option group to its price.
type ProductPriceOption struct {
	PriceType        string             `bson:"priceType" json:"priceType"`
	AvailableOptions map[string]float64 `bson:"availableOptions" json:"availableOptions"`
}

// ProductAttribute is a chosen attribute value, e.g. {name: "isHit", value: true}.
type ProductAttribute struct {
	Name  string `bson:"name" json:"name"`
	Value any    `bson:"value" json:"value"`
}

// Product is a sellable item owned by a tenant. Image holds the opaque
// object-storage key; the externally resolvable URI is attached only when
// the product leaves the service layer.
type Product struct {
	ID                 primitive.ObjectID            `bson:"_id,omitempty" json:"id"`
	Name               string                        `bson:"name" json:"name"`
	Description        string                        `bson:"description" json:"description"`
	Image              string                        `bson:"image" json:"image"`
	PriceConfiguration map[string]ProductPriceOption `bson:"priceConfiguration" json:"priceConfiguration"`
	Attributes         []ProductAttribute            `bson:"attributes" json:"attributes"`
	TenantID           string                        `bson:"tenantId" json:"tenantId"`
	CategoryID         primitive.ObjectID            `bson:"categoryId" json:"categoryId"`
	IsPublish          bool                          `bson:"isPublish" json:"isPublish"`
	CreatedAt          time.Time                     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          time.Time                     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`

	// Category is the joined category document. The relation is a weak
	// reference; this field is populated by the repository on reads and is
	// never written back.
	Category *Category `bson:"category,omitempty" json:"category,omitempty"`
}

// ProductFilter narrows a product listing. Zero values mean "no clause".
type ProductFilter struct {
	TenantID   string
	CategoryID string
	IsPublish  *bool
}
