package domain

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// Page is a bounded window over an ordered result set.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
