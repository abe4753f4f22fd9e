package model

// MessageResponse is the body of successful updates and deletions.
type MessageResponse struct {
	Message string `json:"message"`
}
