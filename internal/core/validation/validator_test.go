package validation

import (
	"encoding/json"
	"errors"
	"testing"
)

const pngDataURI = "data:image/png;base64,iVBORw0KGgo="

func TestValidateUserForm(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		form       UserForm
		wantFields map[string]string
	}{
		{
			name: "valid user",
			form: UserForm{Name: "Jean", Email: "jean@x.com", Role: "Admin"},
		},
		{
			name: "valid user with avatar",
			form: UserForm{Name: "Jean", Email: "jean@x.com", Role: "User", Avatar: pngDataURI},
		},
		{
			name:       "blank name after trim",
			form:       UserForm{Name: "   ", Email: "jean@x.com", Role: "Admin"},
			wantFields: map[string]string{"name": "name is required"},
		},
		{
			name:       "missing email",
			form:       UserForm{Name: "Jean", Role: "Admin"},
			wantFields: map[string]string{"email": "email is required"},
		},
		{
			name:       "malformed email",
			form:       UserForm{Name: "Jean", Email: "not-an-email", Role: "Admin"},
			wantFields: map[string]string{"email": "email format is invalid"},
		},
		{
			name:       "email without tld",
			form:       UserForm{Name: "Jean", Email: "jean@localhost", Role: "Admin"},
			wantFields: map[string]string{"email": "email format is invalid"},
		},
		{
			name:       "missing role",
			form:       UserForm{Name: "Jean", Email: "jean@x.com"},
			wantFields: map[string]string{"role": "role is required"},
		},
		{
			name:       "unknown role",
			form:       UserForm{Name: "Jean", Email: "jean@x.com", Role: "Root"},
			wantFields: map[string]string{"role": "role must be one of: User Manager Admin"},
		},
		{
			name:       "avatar is not a data uri",
			form:       UserForm{Name: "Jean", Email: "jean@x.com", Role: "Admin", Avatar: "http://example.com/a.png"},
			wantFields: map[string]string{"avatar": "avatar must be a data URI"},
		},
		{
			name: "everything missing",
			form: UserForm{},
			wantFields: map[string]string{
				"name":  "name is required",
				"email": "email is required",
				"role":  "role is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFieldErrors(t, v.Struct(tt.form), tt.wantFields)
		})
	}
}

func TestValidateProductForm(t *testing.T) {
	v := New()

	valid := func() ProductForm {
		return ProductForm{
			Name:        "Casque Audio",
			Description: "Sony WH-1000XM4",
			Price:       "349.99",
			Category:    "Audio",
			Stock:       "30",
		}
	}

	tests := []struct {
		name       string
		mutate     func(*ProductForm)
		wantFields map[string]string
	}{
		{name: "valid product", mutate: func(*ProductForm) {}},
		{name: "stock zero is accepted", mutate: func(f *ProductForm) { f.Stock = "0" }},
		{name: "price with blanks", mutate: func(f *ProductForm) { f.Price = " 12.5 " }},
		{
			name:       "negative price",
			mutate:     func(f *ProductForm) { f.Price = "-5" },
			wantFields: map[string]string{"price": "price must be a positive number"},
		},
		{
			name:       "zero price",
			mutate:     func(f *ProductForm) { f.Price = "0" },
			wantFields: map[string]string{"price": "price must be a positive number"},
		},
		{
			name:       "non numeric price",
			mutate:     func(f *ProductForm) { f.Price = "cheap" },
			wantFields: map[string]string{"price": "price must be a positive number"},
		},
		{
			name:       "missing price",
			mutate:     func(f *ProductForm) { f.Price = "" },
			wantFields: map[string]string{"price": "price is required"},
		},
		{
			name:       "negative stock",
			mutate:     func(f *ProductForm) { f.Stock = "-1" },
			wantFields: map[string]string{"stock": "stock must be a positive number or zero"},
		},
		{
			name:       "fractional stock",
			mutate:     func(f *ProductForm) { f.Stock = "1.5" },
			wantFields: map[string]string{"stock": "stock must be a positive number or zero"},
		},
		{
			name:       "huge stock",
			mutate:     func(f *ProductForm) { f.Stock = "1e20" },
			wantFields: map[string]string{"stock": "stock must be a positive number or zero"},
		},
		{
			name:       "stock above cap",
			mutate:     func(f *ProductForm) { f.Stock = "2147483648" },
			wantFields: map[string]string{"stock": "stock must be a positive number or zero"},
		},
		{name: "stock at cap is accepted", mutate: func(f *ProductForm) { f.Stock = "2147483647" }},
		{
			name:       "missing stock",
			mutate:     func(f *ProductForm) { f.Stock = "" },
			wantFields: map[string]string{"stock": "stock is required"},
		},
		{
			name: "blank text fields",
			mutate: func(f *ProductForm) {
				f.Name = ""
				f.Description = " "
				f.Category = ""
			},
			wantFields: map[string]string{
				"name":        "name is required",
				"description": "description is required",
				"category":    "category is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid()
			tt.mutate(&form)
			assertFieldErrors(t, v.Struct(form), tt.wantFields)
		})
	}
}

func TestNumberText_DecodesNumbersAndStrings(t *testing.T) {
	var form ProductForm
	body := `{"name":"n","description":"d","price":19.9,"category":"c","stock":"4"}`
	if err := json.Unmarshal([]byte(body), &form); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if form.Price != "19.9" || form.Stock != "4" {
		t.Fatalf("unexpected values: price=%q stock=%q", form.Price, form.Stock)
	}

	fields := form.Fields()
	if fields.Price != 19.9 || fields.Stock != 4 {
		t.Fatalf("unexpected conversion: %+v", fields)
	}
}

func TestNumberText_NullIsMissing(t *testing.T) {
	var form ProductForm
	if err := json.Unmarshal([]byte(`{"price":null}`), &form); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if form.Price != "" {
		t.Fatalf("expected empty price, got %q", form.Price)
	}
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	fe := FieldErrors{"role": "role is required", "email": "email is required"}
	if got := fe.Error(); got != "email is required; role is required" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func assertFieldErrors(t *testing.T, err error, want map[string]string) {
	t.Helper()
	if len(want) == 0 {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return
	}

	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T (%v)", err, err)
	}
	if len(fe) != len(want) {
		t.Fatalf("expected %d field errors, got %d: %v", len(want), len(fe), fe)
	}
	for field, msg := range want {
		if fe[field] != msg {
			t.Errorf("field %q: expected %q, got %q", field, msg, fe[field])
		}
	}
}
