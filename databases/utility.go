package databases

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchLimit caps the number of catalog items returned by a search
const SearchLimit = 50

// TextSearchFilter builds a case-insensitive filter matching term against any
// of the given fields. An empty term matches every active item.
func TextSearchFilter(term string, fields ...string) bson.M {
	filter := bson.M{"ativo": true}
	if term == "" {
		return filter
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	filter["$or"] = or
	return filter
}

// SearchOpts returns the find options used by catalog searches
func SearchOpts(sortField string) *options.FindOptions {
	return options.Find().
		SetLimit(SearchLimit).
		SetSort(bson.D{{Key: sortField, Value: 1}})
}
