package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Topping is an add-on item owned by a tenant. Like Product.Image, the
// Image field holds the bare object-storage key.
type Topping struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Image    string             `bson:"image" json:"image"`
	TenantID string             `bson:"tenantId" json:"tenantId"`
}

// ToppingFilter narrows a topping listing.
type ToppingFilter struct {
	TenantID string
}
