package model

// RawPlace is one point-of-interest record from a search provider.
type RawPlace struct {
	Title         string       `json:"title"`
	Category      string       `json:"category"`
	Address       string       `json:"address"`
	JibunAddress  string       `json:"jibun_address,omitempty"`
	Coords        *Coordinates `json:"coords,omitempty"`
	MapX          string       `json:"mapx,omitempty"` // planar, Naver only
	MapY          string       `json:"mapy,omitempty"`
	PlaceID       string       `json:"place_id,omitempty"`
	ProviderType  string       `json:"provider_type,omitempty"`
	Rating        float64      `json:"rating,omitempty"`
	RatingsTotal  int          `json:"ratings_total,omitempty"`
	PriceLevel    int          `json:"price_level,omitempty"`
	Status        string       `json:"business_status,omitempty"`
	Link          string       `json:"link,omitempty"`
	Telephone     string       `json:"telephone,omitempty"`
	SearchContext string       `json:"search_context,omitempty"`
	Source        Source       `json:"source"`
}

// Tenant is a merged place, optionally linked to the building it sits in.
type Tenant struct {
	Title      string       `json:"title"`
	Category   string       `json:"category"`
	Icon       string       `json:"category_icon"`
	Address    string       `json:"address"`
	Coords     *Coordinates `json:"coords,omitempty"`
	Source     Source       `json:"source"`
	PlaceID    string       `json:"place_id,omitempty"`
	Rating     float64      `json:"rating,omitempty"`
	BuildingID BuildingID   `json:"building_id"`
}

// Matched reports whether the tenant has been assigned to a building.
func (t *Tenant) Matched() bool { return !t.BuildingID.IsZero() }
