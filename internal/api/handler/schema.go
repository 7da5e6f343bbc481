package handler

import (
	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/validation"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// validationErrorResponse is returned with 422 when a form is rejected.
type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// --- Request / Response types ---

// userRequest is the JSON body of user writes. Absent fields stay nil so a
// PATCH can tell "not sent" from "sent empty".
type userRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Avatar *string `json:"avatar"`
}

func (r userRequest) form() validation.UserForm {
	var f validation.UserForm
	r.overlay(&f)
	return f
}

func (r userRequest) overlay(f *validation.UserForm) {
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.Email != nil {
		f.Email = *r.Email
	}
	if r.Role != nil {
		f.Role = *r.Role
	}
	if r.Avatar != nil {
		f.Avatar = *r.Avatar
	}
}

func (r userRequest) patch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Email: r.Email, Role: r.Role, Avatar: r.Avatar}
}

// productRequest is the JSON body of product writes. price and stock accept
// numbers or numeric strings.
type productRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Price       *validation.NumberText `json:"price" swaggertype:"number"`
	Category    *string                `json:"category"`
	Stock       *validation.NumberText `json:"stock" swaggertype:"integer"`
	Image       *string                `json:"image"`
}

func (r productRequest) form() validation.ProductForm {
	var f validation.ProductForm
	r.overlay(&f)
	return f
}

func (r productRequest) overlay(f *validation.ProductForm) {
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.Description != nil {
		f.Description = *r.Description
	}
	if r.Price != nil {
		f.Price = *r.Price
	}
	if r.Category != nil {
		f.Category = *r.Category
	}
	if r.Stock != nil {
		f.Stock = *r.Stock
	}
	if r.Image != nil {
		f.Image = *r.Image
	}
}

// patch converts the sent fields of an already validated request.
func (r productRequest) patch() domain.ProductPatch {
	p := domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Image:       r.Image,
	}
	if r.Price != nil {
		price, _ := validation.ParseNumber(string(*r.Price))
		p.Price = &price
	}
	if r.Stock != nil {
		n, _ := validation.ParseNumber(string(*r.Stock))
		stock := int(n)
		p.Stock = &stock
	}
	return p
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

type seedResponse struct {
	Seeded []string `json:"seeded"`
}
