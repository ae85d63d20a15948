package pms

// External calendar statuses as the PMS reports them.
const (
	StatusAvailable = "available"
	StatusBlocked   = "blocked"
	StatusBooked    = "booked"
)

type Listing struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CalendarDay is one day of a listing's calendar as the PMS reports it.
// Date is formatted 2006-01-02.
type CalendarDay struct {
	Date          string `json:"date"`
	Status        string `json:"status"`
	ReservationID string `json:"reservation_id,omitempty"`
}

// Reservation is a PMS-side booking. ArrivalDate/DepartureDate are
// formatted 2006-01-02; the departure day itself is not occupied.
type Reservation struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	ArrivalDate      string `json:"arrival_date"`
	DepartureDate    string `json:"departure_date"`
	ConfirmationCode string `json:"confirmation_code,omitempty"`
}

type Health struct {
	Connected     bool   `json:"connected"`
	ListingsCount int    `json:"listings_count"`
	Error         string `json:"error,omitempty"`
}
