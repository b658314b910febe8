package request_models

type AccommodationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// YYYY-MM-DD or RFC3339; stored as a calendar date
	CheckIn  string  `json:"check_in" binding:"required"`
	CheckOut string  `json:"check_out" binding:"required"`
	Note     *string `json:"note"`
}

type FlightRequest struct {
	DepartureCity string  `json:"departure_city" binding:"required"`
	ArrivalCity   string  `json:"arrival_city" binding:"required"`
	Carrier       *string `json:"carrier"`
	FlightNumber  *string `json:"flight_number"`
	// RFC3339
	DepartureAt string  `json:"departure_at" binding:"required"`
	ArrivalAt   string  `json:"arrival_at" binding:"required"`
	Note        *string `json:"note"`
}
