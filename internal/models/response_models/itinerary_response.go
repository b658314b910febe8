package response_models

// Top-level payload returned to FE
type ItineraryDetailResponse struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	Title     *string `json:"title,omitempty"`
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD

	// Quick stats
	TotalDays  int `json:"total_days"`
	TotalItems int `json:"total_items"`

	Days           []ItineraryDayResponse  `json:"days"`
	Accommodations []AccommodationResponse `json:"accommodations"`
	Flights        []FlightResponse        `json:"flights"`
}

type ItineraryDayResponse struct {
	ID        string         `json:"id"`
	DayNumber int            `json:"day_number"`
	Date      string         `json:"date"`
	Items     []ItemResponse `json:"items"`
}

type ItemResponse struct {
	ID              string  `json:"id"`
	DayID           string  `json:"day_id"`
	Kind            string  `json:"kind"`
	PlaceID         *string `json:"place_id,omitempty"`
	AccommodationID *string `json:"accommodation_id,omitempty"`
	Order           int     `json:"order"`
	StartTime       *string `json:"start_time,omitempty"`
	Note            *string `json:"note,omitempty"`
}
