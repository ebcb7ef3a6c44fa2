package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Customer is a person who rents movies.
type Customer struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	IsGold bool               `json:"isGold" bson:"isGold"`
	Phone  string             `json:"phone" bson:"phone"`
}

func (c Customer) DocumentID() primitive.ObjectID { return c.ID }
