package models

// CartItem is one product a buyer selected on the site before submitting
// an inquiry. The cart itself lives in the browser; the server only sees
// the final selection attached to the inquiry.
type CartItem struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Inquiry is a lead submitted through the public inquiry form.
type Inquiry struct {
	ID               string     `json:"id"`
	CompanyName      string     `json:"companyName" validate:"required"`
	ManagerContact   string     `json:"managerContact" validate:"required"`
	Category         string     `json:"category" validate:"required"`
	Quantity         string     `json:"quantity" validate:"required"`
	TargetPrice      string     `json:"targetPrice" validate:"required"`
	SelectedProducts []CartItem `json:"selectedProducts,omitempty"`
}
