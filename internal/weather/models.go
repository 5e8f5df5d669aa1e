package weather

// Snapshot is the current-conditions view for a single coordinate.
// It is immutable once constructed and replaced wholesale on each
// successful fetch, never partially updated.
type Snapshot struct {
	Temperature float64 `json:"temperature"` // °C
	WindSpeed   float64 `json:"windspeed"`   // km/h
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
