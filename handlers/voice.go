package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"slotbook/models"
	ai "slotbook/services/intelligence"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Transcriber is the speech-to-text capability used for voice turns.
type Transcriber = ai.Transcriber

// HandleVoiceChat handles POST /chat/voice: a multipart form with a .wav
// "audio" file, a "user_id" and an optional "language" (default en-US).
// The transcript is processed exactly like a typed message.
func (h *ChatHandler) HandleVoiceChat(c *gin.Context) {
	logger := getLogger(c)

	if h.transcriber == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Voice input is not configured", "")
		return
	}

	userID := strings.TrimSpace(c.PostForm("user_id"))
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "user_id is required")
		return
	}
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio file is required", err.Error())
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ai.AllowedExtension {
		utils.JSONError(c, http.StatusBadRequest, "invalid file type",
			fmt.Sprintf("expected %s, got %s", ai.AllowedExtension, ext))
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, ai.MaxFileSize+1))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to read audio file", err.Error())
		return
	}
	if len(audio) > ai.MaxFileSize {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "audio file too large",
			fmt.Sprintf("limit is %d bytes", ai.MaxFileSize))
		return
	}

	transcript, err := h.transcribe(c.Request.Context(), audio, language)
	if err != nil {
		logger.Warn("transcription failed", zap.String("user_id", userID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "speech recognition failed", err.Error())
		return
	}
	if transcript == "" {
		utils.JSONError(c, http.StatusUnprocessableEntity, "no speech recognized", "")
		return
	}

	reply := h.turn(c.Request.Context(), userID, transcript)
	logger.Debug("voice turn handled", zap.String("user_id", userID), zap.String("transcript", transcript))
	c.JSON(http.StatusOK, models.ChatResponse{Response: reply, Transcript: transcript})
}

func (h *ChatHandler) transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	text, err := h.transcriber.Transcribe(ctx, audio, language)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
