package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RentalCustomer is the customer snapshot stored on a rental.
type RentalCustomer struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	IsGold bool               `json:"isGold" bson:"isGold"`
	Phone  string             `json:"phone" bson:"phone"`
}

// RentalMovie is the movie snapshot stored on a rental.
type RentalMovie struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	Title           string             `json:"title" bson:"title"`
	DailyRentalRate float64            `json:"dailyRentalRate" bson:"dailyRentalRate"`
}

// Rental records a customer taking a movie out.
type Rental struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Customer     RentalCustomer     `json:"customer" bson:"customer"`
	Movie        RentalMovie        `json:"movie" bson:"movie"`
	DateOut      time.Time          `json:"dateOut" bson:"dateOut"`
	DateReturned *time.Time         `json:"dateReturned,omitempty" bson:"dateReturned,omitempty"`
	RentalFee    *float64           `json:"rentalFee,omitempty" bson:"rentalFee,omitempty"`
}

func (r Rental) DocumentID() primitive.ObjectID { return r.ID }

// Returned reports whether the movie has been brought back.
func (r Rental) Returned() bool { return r.DateReturned != nil }

// NewRental snapshots customer and movie into a rental dated at out.
func NewRental(id primitive.ObjectID, c Customer, m Movie, out time.Time) Rental {
	return Rental{
		ID: id,
		Customer: RentalCustomer{
			ID:     c.ID,
			Name:   c.Name,
			IsGold: c.IsGold,
			Phone:  c.Phone,
		},
		Movie: RentalMovie{
			ID:              m.ID,
			Title:           m.Title,
			DailyRentalRate: m.DailyRentalRate,
		},
		DateOut: out.UTC(),
	}
}
