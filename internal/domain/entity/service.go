package entity

// Service is a catalog entry. Read-only from the booking pipeline's
// perspective; used for display and fuzzy matching.
type Service struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"` // Minutes.
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}
