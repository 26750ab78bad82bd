package handlers

import (
	"context"
	"net/http"
	"strings"

	"slotbook/models"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fallbackReply is sent if the dialogue ever produces nothing to say.
const fallbackReply = "Sorry, I didn't understand that. Please try again."

// Conversation is the dialogue surface the chat endpoints drive.
type Conversation interface {
	ProcessMessage(ctx context.Context, userID, message string) string
	Reset(ctx context.Context, userID string) error
}

// ChatHandler serves text and voice turns. Turns for the same user are
// processed one at a time.
type ChatHandler struct {
	conversation Conversation
	transcriber  Transcriber
	locks        *turnLocks
}

// NewChatHandler builds the chat endpoints. transcriber may be nil, in which
// case voice turns are refused with 503.
func NewChatHandler(conversation Conversation, transcriber Transcriber) *ChatHandler {
	return &ChatHandler{
		conversation: conversation,
		transcriber:  transcriber,
		locks:        newTurnLocks(),
	}
}

// HandleChat handles POST /chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := getLogger(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "user_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "message must not be blank")
		return
	}

	reply := h.turn(c.Request.Context(), userID, req.Message)
	logger.Debug("chat turn handled", zap.String("user_id", userID))
	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}

// HandleReset handles DELETE /chat/:userID.
func (h *ChatHandler) HandleReset(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userID"))
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "user id is required")
		return
	}

	unlock := h.locks.lock(userID)
	defer unlock()

	if err := h.conversation.Reset(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to reset conversation", err.Error())
		return
	}
	getLogger(c).Info("conversation reset", zap.String("user_id", userID))
	c.JSON(http.StatusOK, gin.H{"status": "reset", "user_id": userID})
}

func (h *ChatHandler) turn(ctx context.Context, userID, message string) string {
	unlock := h.locks.lock(userID)
	defer unlock()

	reply := h.conversation.ProcessMessage(ctx, userID, message)
	if strings.TrimSpace(reply) == "" {
		return fallbackReply
	}
	return reply
}
