package domain

// Product is a catalogue entry managed from the back office.
type Product struct {
	Meta
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
}

// ProductFields holds everything a caller may supply when creating a product.
type ProductFields struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
	Image       string
}

// ProductPatch is a partial update. Nil fields keep the stored value.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
	Image       *string
}

func NewProduct(f ProductFields) Product {
	return Product{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		Stock:       f.Stock,
		Image:       f.Image,
	}
}

// Apply merges the non-nil patch fields into p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
}
