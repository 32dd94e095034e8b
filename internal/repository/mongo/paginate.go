package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderhub/catalog-service/internal/entity"
)

// nameMatch builds a case-insensitive substring clause against the name
// field. The query text is quoted so user input is never interpreted as a
// regular expression.
func nameMatch(q string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

// facetStage pages the matched documents while counting the full match set
// in a single aggregation round-trip.
func facetStage(page entity.PaginateQuery) bson.D {
	return bson.D{{Key: "$facet", Value: bson.M{
		"metadata": bson.A{bson.M{"$count": "total"}},
		"data": bson.A{
			bson.M{"$skip": page.Skip()},
			bson.M{"$limit": page.Limit},
		},
	}}}
}

// facetPage mirrors the $facet output shape.
type facetPage[T any] struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Data []T `bson:"data"`
}

func (p facetPage[T]) paginated(page entity.PaginateQuery) entity.Paginated[T] {
	var total int64
	if len(p.Metadata) > 0 {
		total = p.Metadata[0].Total
	}
	return entity.NewPaginated(p.Data, total, page)
}
