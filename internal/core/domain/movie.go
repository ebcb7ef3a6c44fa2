package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Movie is a rentable title.
type Movie struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	Title           string             `json:"title" bson:"title"`
	Genre           GenreRef           `json:"genre" bson:"genre"`
	NumberInStock   int                `json:"numberInStock" bson:"numberInStock"`
	DailyRentalRate float64            `json:"dailyRentalRate" bson:"dailyRentalRate"`
}

func (m Movie) DocumentID() primitive.ObjectID { return m.ID }

// InStock reports whether at least one copy is available to rent.
func (m Movie) InStock() bool { return m.NumberInStock > 0 }
