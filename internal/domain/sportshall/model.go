package sportshall

// Sportshall is one venue card of a region's listing. Optional contact
// fields are nil when the card does not print them.
type Sportshall struct {
	Area      string
	Region    string
	Name      string
	URL       *string
	Address   *string
	Phone     *string
	Email     *string
	RegionURL string
	Latitude  *float64
	Longitude *float64
}

type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

func (s *Sportshall) SetCoordinates(c Coordinates) {
	lat, lon := c.Latitude, c.Longitude
	s.Latitude = &lat
	s.Longitude = &lon
}
