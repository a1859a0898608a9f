package http

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateResourceRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate enforces the request shape before the core sees it. The core
// never raises validation errors itself.
func (r CreateResourceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

type ResourceDTO struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ResourceResponse struct {
	Status string      `json:"status"`
	Data   ResourceDTO `json:"data"`
}

type ListResourcesResponse struct {
	Status string        `json:"status"`
	Data   []ResourceDTO `json:"data"`
}
