package dto

// MessageResponse is the standard success/error envelope: every error the
// API returns is `{message: string}` with the status code carrying the
// taxonomy.
type MessageResponse struct {
	Message string `json:"message" example:"Attendance marked successfully"`
}

// NewMessage builds a MessageResponse.
func NewMessage(message string) MessageResponse {
	return MessageResponse{Message: message}
}
