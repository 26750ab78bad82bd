// File: slotbook/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	ChatHandler      gin.HandlerFunc
	VoiceChatHandler gin.HandlerFunc
	ResetHandler     gin.HandlerFunc

	// Ops endpoints
	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires a ChatHandler into the bundle the router consumes.
func NewHandlerBundle(chat *ChatHandler) *HandlerBundle {
	return &HandlerBundle{
		ChatHandler:      chat.HandleChat,
		VoiceChatHandler: chat.HandleVoiceChat,
		ResetHandler:     chat.HandleReset,
		HealthHandler:    HealthHandler,
	}
}
