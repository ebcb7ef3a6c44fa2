package handler

import "github.com/vidly/rental-api/internal/core/ports"

// --- Request types ---

type genreRequest struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

func (r genreRequest) toInput() ports.GenreInput {
	return ports.GenreInput{Name: r.Name}
}

// Numeric fields are pointers so an explicit 0 satisfies "required".
type movieRequest struct {
	Title           string   `json:"title" validate:"required,min=5,max=255"`
	GenreID         string   `json:"genreId" validate:"required,objectid"`
	NumberInStock   *int     `json:"numberInStock" validate:"required,min=0,max=255"`
	DailyRentalRate *float64 `json:"dailyRentalRate" validate:"required,min=0,max=255"`
}

func (r movieRequest) toInput() ports.MovieInput {
	return ports.MovieInput{
		Title:           r.Title,
		GenreID:         r.GenreID,
		NumberInStock:   *r.NumberInStock,
		DailyRentalRate: *r.DailyRentalRate,
	}
}

type customerRequest struct {
	Name   string `json:"name" validate:"required,min=5,max=50"`
	IsGold bool   `json:"isGold"`
	Phone  string `json:"phone" validate:"required,min=5,max=50,number"`
}

func (r customerRequest) toInput() ports.CustomerInput {
	return ports.CustomerInput{Name: r.Name, IsGold: r.IsGold, Phone: r.Phone}
}

type rentalRequest struct {
	CustomerID string `json:"customerId" validate:"required,objectid"`
	MovieID    string `json:"movieId" validate:"required,objectid"`
}

func (r rentalRequest) toInput() ports.RentalInput {
	return ports.RentalInput{CustomerID: r.CustomerID, MovieID: r.MovieID}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

// --- Response types ---

type userResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}
