package suppliers

// Supplier represents a supplier master record. TDSFlag is stored as a 0/1
// integer and exposed as a boolean.
type Supplier struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	GSTNo     *string  `json:"gst_no"`
	StateCode *string  `json:"state_code"`
	TDSFlag   bool     `json:"tds_flag"`
	TDSRate   *float64 `json:"tds_rate"`
	Contact   *string  `json:"contact"`
	Email     *string  `json:"email"`
}

// CreateSupplierRequest is the payload for creating a supplier.
type CreateSupplierRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	GSTNo     *string  `json:"gst_no,omitempty" validate:"omitempty,max=50"`
	StateCode *string  `json:"state_code,omitempty" validate:"omitempty,max=10"`
	TDSFlag   bool     `json:"tds_flag"`
	TDSRate   *float64 `json:"tds_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	Contact   *string  `json:"contact,omitempty" validate:"omitempty,max=100"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateSupplierRequest patches a supplier. A nil field means "leave the
// stored value unchanged".
type UpdateSupplierRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	GSTNo     *string  `json:"gst_no,omitempty" validate:"omitempty,max=50"`
	StateCode *string  `json:"state_code,omitempty" validate:"omitempty,max=10"`
	TDSFlag   *bool    `json:"tds_flag,omitempty"`
	TDSRate   *float64 `json:"tds_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	Contact   *string  `json:"contact,omitempty" validate:"omitempty,max=100"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
}

// ListFilters narrows the supplier listing.
type ListFilters struct {
	Name     string
	Page     int64
	PageSize int64
}
