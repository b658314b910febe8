package response_models

type AccommodationResponse struct {
	ID          string   `json:"id"`
	ItineraryID string   `json:"itinerary_id"`
	Name        string   `json:"name"`
	Address     *string  `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	Note        *string  `json:"note,omitempty"`

	// Sync is set on create/update and reports what happened to derived items.
	Sync *SyncSummary `json:"sync,omitempty"`
}

type SyncSummary struct {
	Changed   bool `json:"changed"`
	Created   int  `json:"created"`
	Deleted   int  `json:"deleted"`
	CheckIns  int  `json:"check_ins"`
	CheckOuts int  `json:"check_outs"`
	Stays     int  `json:"stays"`
}

type FlightResponse struct {
	ID            string  `json:"id"`
	ItineraryID   string  `json:"itinerary_id"`
	DepartureCity string  `json:"departure_city"`
	ArrivalCity   string  `json:"arrival_city"`
	Carrier       *string `json:"carrier,omitempty"`
	FlightNumber  *string `json:"flight_number,omitempty"`
	DepartureAt   string  `json:"departure_at"`
	ArrivalAt     string  `json:"arrival_at"`
	Note          *string `json:"note,omitempty"`
}
