package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/model"
)

type customerResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Number          string    `json:"number"`
	Email           string    `json:"email"`
	Location        string    `json:"location"`
	Gender          string    `json:"gender"`
	MaskedBirthDate *string   `json:"masked_birth_date"`
	Age             *int      `json:"age"`
	CreatedAt       time.Time `json:"created_at"`
}

func toCustomerResponse(c model.Customer) customerResponse {
	return customerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Number:          c.Number,
		Email:           c.Email,
		Location:        c.Location,
		Gender:          string(c.Gender),
		MaskedBirthDate: c.MaskedBirthDate,
		Age:             c.Age,
		CreatedAt:       c.CreatedAt,
	}
}

func toCustomerResponses(customers []model.Customer) []customerResponse {
	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

type fileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toFileResponse(f model.ReferenceFile) fileResponse {
	return fileResponse{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	}
}

func toFileResponses(files []model.ReferenceFile) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResponse(f))
	}
	return out
}
