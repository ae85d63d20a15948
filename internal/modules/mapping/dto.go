package mapping

type MapPropertyRequest struct {
	ExternalListingID string `json:"external_listing_id" binding:"required"`
}
