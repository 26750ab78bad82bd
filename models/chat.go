package models

// ChatRequest is the payload posted to /chat.
type ChatRequest struct {
	UserID  string `json:"user_id" binding:"required"` // unique user identifier
	Message string `json:"message" binding:"required"` // user's message (typed or transcribed)
}

// ChatResponse is what the chat handlers return to the frontend.
type ChatResponse struct {
	Response   string `json:"response"`             // natural-language reply
	Transcript string `json:"transcript,omitempty"` // only for voice turns
}
