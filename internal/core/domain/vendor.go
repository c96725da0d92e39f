package domain

type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "Active"
	VendorStatusInactive VendorStatus = "Inactive"
)

func (s VendorStatus) Valid() bool {
	return s == VendorStatusActive || s == VendorStatusInactive
}

type Vendor struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ContactName      string       `json:"contactName"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	Address          string       `json:"address"`
	Category         string       `json:"category"`
	Rating           float64      `json:"rating"`
	Status           VendorStatus `json:"status"`
	ProductsSupplied int          `json:"productsSupplied"`
}
