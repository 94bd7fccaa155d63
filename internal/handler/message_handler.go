package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"volunteerhub/internal/filter"
	"volunteerhub/internal/middleware"
	"volunteerhub/internal/models"
	"volunteerhub/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Conversations returns the caller's conversation partners, optionally
// narrowed by the q filter. A load failure degrades to an empty sidebar.
func (h *MessageHandler) Conversations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.svc.Conversations(userID)
	if err != nil {
		log.Printf("[messages] conversations failed: user=%d err=%v", userID, err)
		c.JSON(http.StatusOK, gin.H{"conversations": []service.Conversation{}})
		return
	}
	if q := c.Query("q"); q != "" {
		users := make([]models.User, len(list))
		byID := make(map[uint]service.Conversation, len(list))
		for i, conv := range list {
			users[i] = conv.User
			byID[conv.User.ID] = conv
		}
		kept := filter.ConversationFilter{Query: q}.Apply(users)
		out := make([]service.Conversation, 0, len(kept))
		for _, u := range kept {
			out = append(out, byID[u.ID])
		}
		list = out
	}
	c.JSON(http.StatusOK, gin.H{"conversations": list})
}

// Thread returns the full message history with one counterpart, oldest
// first, marking the caller's unread messages from them as read.
func (h *MessageHandler) Thread(c *gin.Context) {
	userID := middleware.GetUserID(c)
	otherID, _ := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if otherID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	list, err := h.svc.LoadThread(userID, uint(otherID))
	if err != nil {
		log.Printf("[messages] thread failed: user=%d other=%d err=%v", userID, otherID, err)
		c.JSON(http.StatusOK, gin.H{"messages": []models.Message{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": list})
}

type sendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	senderID := middleware.GetUserID(c)
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.Send(senderID, req.ReceiverID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrReceiverNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Printf("[messages] send failed: sender=%d receiver=%d err=%v", senderID, req.ReceiverID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": m})
}
