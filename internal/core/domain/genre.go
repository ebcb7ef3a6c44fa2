package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Genre is a movie category.
type Genre struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

func (g Genre) DocumentID() primitive.ObjectID { return g.ID }

// Ref returns the snapshot embedded in movies that reference g.
func (g Genre) Ref() GenreRef {
	return GenreRef{ID: g.ID, Name: g.Name}
}

// GenreRef is the denormalized copy of a genre stored inside a movie. It is
// captured when the movie is written and is not refreshed on genre renames.
type GenreRef struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}
