package dto

// ValidateLinksRequest is the payload for batch scheduler-link validation.
type ValidateLinksRequest struct {
	LinkIDs []string `json:"link_ids"`
}
