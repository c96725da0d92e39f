package domain

type LocationType string

const (
	LocationTypeWarehouse    LocationType = "Warehouse"
	LocationTypeStore        LocationType = "Store"
	LocationTypeDistribution LocationType = "Distribution Center"
)

func (t LocationType) Valid() bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeStore, LocationTypeDistribution:
		return true
	}
	return false
}

type LocationStatus string

const (
	LocationStatusActive   LocationStatus = "Active"
	LocationStatusInactive LocationStatus = "Inactive"
)

func (s LocationStatus) Valid() bool {
	return s == LocationStatusActive || s == LocationStatusInactive
}

type Location struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Code     string         `json:"code"`
	Type     LocationType   `json:"type"`
	Address  string         `json:"address"`
	Manager  string         `json:"manager"`
	Capacity int            `json:"capacity"`
	Status   LocationStatus `json:"status"`
}
