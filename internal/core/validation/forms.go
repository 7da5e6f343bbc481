package validation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/99minutos/record-admin/internal/core/domain"
)

// NumberText is a numeric form value kept as submitted. It decodes from a
// JSON number or a JSON string.
type NumberText string

func (n *NumberText) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*n = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = NumberText(str)
	default:
		*n = NumberText(s)
	}
	return nil
}

// UserForm is the user edit form.
type UserForm struct {
	Name   string `json:"name"   validate:"notblank"`
	Email  string `json:"email"  validate:"notblank,basic_email"`
	Role   string `json:"role"   validate:"required,oneof=User Manager Admin"`
	Avatar string `json:"avatar" validate:"omitempty,datauri"`
}

// UserFormOf prefills a form with a stored user.
func UserFormOf(u *domain.User) UserForm {
	return UserForm{Name: u.Name, Email: u.Email, Role: u.Role, Avatar: u.Avatar}
}

// Fields converts a valid form into creation fields.
func (f UserForm) Fields() domain.UserFields {
	return domain.UserFields{
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
		Avatar: f.Avatar,
	}
}

// Patch converts a valid form into an update replacing every field.
func (f UserForm) Patch() domain.UserPatch {
	return domain.UserPatch{Name: &f.Name, Email: &f.Email, Role: &f.Role, Avatar: &f.Avatar}
}

// ProductForm is the product edit form.
type ProductForm struct {
	Name        string     `json:"name"        validate:"notblank"`
	Description string     `json:"description" validate:"notblank"`
	Price       NumberText `json:"price"       validate:"required,positive"`
	Category    string     `json:"category"    validate:"notblank"`
	Stock       NumberText `json:"stock"       validate:"required,whole_nonnegative"`
	Image       string     `json:"image"       validate:"omitempty,datauri"`
}

// ProductFormOf prefills a form with a stored product.
func ProductFormOf(p *domain.Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       NumberText(strconv.FormatFloat(p.Price, 'f', -1, 64)),
		Category:    p.Category,
		Stock:       NumberText(strconv.Itoa(p.Stock)),
		Image:       p.Image,
	}
}

// Fields converts a valid form into creation fields.
func (f ProductForm) Fields() domain.ProductFields {
	price, _ := ParseNumber(string(f.Price))
	stock, _ := ParseNumber(string(f.Stock))
	return domain.ProductFields{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Category:    f.Category,
		Stock:       int(stock),
		Image:       f.Image,
	}
}

// Patch converts a valid form into an update replacing every field.
func (f ProductForm) Patch() domain.ProductPatch {
	v := f.Fields()
	return domain.ProductPatch{
		Name:        &v.Name,
		Description: &v.Description,
		Price:       &v.Price,
		Category:    &v.Category,
		Stock:       &v.Stock,
		Image:       &v.Image,
	}
}
