package model

import "github.com/google/uuid"

// Source identifies the provider a record was collected from.
type Source string

const (
	SourceRegistry Source = "registry"
	SourceNaver    Source = "naver"
	SourceGoogle   Source = "google"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BuildingID is the stable identifier assigned to a Building when it is created.
// Tenants refer to buildings by this ID rather than by list position.
type BuildingID uuid.UUID

// NilBuildingID is the zero BuildingID.
var NilBuildingID = BuildingID(uuid.Nil)

// String returns the canonical UUID form.
func (id BuildingID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID was never assigned.
func (id BuildingID) IsZero() bool { return id == NilBuildingID }

// MarshalText implements encoding.TextMarshaler.
func (id BuildingID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// RawBuilding is one record from the building registry, as collected.
type RawBuilding struct {
	Name           string `json:"name,omitempty"`
	JibunAddress   string `json:"jibun_address,omitempty"`
	RoadAddress    string `json:"road_address,omitempty"`
	GroundFloors   int    `json:"ground_floors"`
	BasementFloors int    `json:"basement_floors"`
	Use            string `json:"use,omitempty"`
	ApprovalDate   string `json:"approval_date,omitempty"`
	RegistryKey    string `json:"registry_key,omitempty"`
}

// Address returns the road address, falling back to the jibun address.
func (r RawBuilding) Address() string {
	if r.RoadAddress != "" {
		return r.RoadAddress
	}
	return r.JibunAddress
}

// TotalFloors is ground plus basement floors.
func (r RawBuilding) TotalFloors() int {
	return r.GroundFloors + r.BasementFloors
}

// CompletionYear extracts the year from the approval date (YYYYMMDD).
// Returns 0 when the first four characters are not a year after 1900.
func (r RawBuilding) CompletionYear() int {
	if len(r.ApprovalDate) < 4 {
		return 0
	}
	year := 0
	for _, c := range r.ApprovalDate[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	if year <= 1900 {
		return 0
	}
	return year
}

// Building is a normalized registry building.
type Building struct {
	ID             BuildingID   `json:"id"`
	Name           string       `json:"building_name"`
	Address        string       `json:"address"`
	GroundFloors   int          `json:"ground_floors"`
	BasementFloors int          `json:"basement_floors"`
	TotalFloors    int          `json:"total_floors"`
	Use            string       `json:"building_use,omitempty"`
	CompletionYear int          `json:"completion_year,omitempty"`
	RegistryKey    string       `json:"registry_key,omitempty"`
	Coords         *Coordinates `json:"coords,omitempty"`
}
