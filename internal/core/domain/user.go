package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// User models an account that can authenticate against the API.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	IsAdmin  bool               `json:"isAdmin" bson:"isAdmin"`
}

func (u User) DocumentID() primitive.ObjectID { return u.ID }

// Principal returns the identity a token issued for u carries.
func (u User) Principal() Principal {
	return Principal{SubjectID: u.ID.Hex(), IsAdmin: u.IsAdmin}
}
