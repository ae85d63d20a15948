package sync

// Conflict is an external booking signal with no corresponding confirmed
// local reservation. It requires manual review; the engine never fabricates
// a reservation from a bare calendar entry.
type Conflict struct {
	Date                  string `json:"date"`
	ExternalReservationID string `json:"external_reservation_id,omitempty"`
	Reason                string `json:"reason"`
}

// SyncResult is the outcome of one reconciliation pass. Expected failures
// are reported through Success/ErrorCode/Error, never by panicking or
// returning an error across the orchestrator boundary.
type SyncResult struct {
	PropertyID  int64      `json:"property_id"`
	Success     bool       `json:"success"`
	DaysUpdated int        `json:"days_updated"`
	Conflicts   []Conflict `json:"conflicts,omitempty"`
	Partial     bool       `json:"partial,omitempty"`
	ErrorCode   string     `json:"error_code,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// SyncAllResult aggregates one orchestrator run over an organization.
type SyncAllResult struct {
	OrganizationID int64        `json:"organization_id"`
	Processed      int          `json:"processed_count"`
	Succeeded      int          `json:"succeeded"`
	Failed         int          `json:"failed"`
	Success        bool         `json:"success"`
	Results        []SyncResult `json:"results"`
}
