package chat

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"gearshare/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin checks are handled by the CORS middleware; mobile
	// clients send no Origin at all.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/conversations", h.ListConversations)
	rg.POST("/conversations", h.CreateConversation)
	rg.GET("/conversations/unread_count", h.TotalUnread)
	rg.GET("/conversations/:id/messages", h.GetMessages)
	rg.POST("/conversations/:id/messages", h.SendMessage)
	rg.POST("/conversations/:id/read", h.MarkRead)
	rg.GET("/ws", h.WebSocket)
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	convs, err := h.service.ListConversations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]*ConversationResponse, 0, len(convs))
	for i := range convs {
		out = append(out, ToConversationResponse(&convs[i], userID))
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": out})
}

func (h *Handler) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")

	conv, err := h.service.GetOrCreateConversation(c.Request.Context(), userID, req.RecipientID, req.EquipmentID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var msg *MessageResponse
	if req.InitialMessage != "" {
		m, err := h.service.SendMessage(c.Request.Context(), userID, conv.ID, req.InitialMessage)
		if err != nil {
			h.writeError(c, err)
			return
		}
		msg = ToMessageResponse(m)
	}

	response.Success(c, http.StatusCreated, gin.H{
		"conversation": ToConversationResponse(conv, userID),
		"message":      msg,
	})
}

func (h *Handler) GetMessages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var beforeID *int64
	if v, err := strconv.ParseInt(c.Query("before_id"), 10, 64); err == nil && v > 0 {
		beforeID = &v
	}

	msgs, hasMore, err := h.service.GetMessages(c.Request.Context(), c.GetInt64("user_id"), id, limit, beforeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]*MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, ToMessageResponse(&msgs[i]))
	}
	response.Success(c, http.StatusOK, gin.H{
		"messages": out,
		"has_more": hasMore,
	})
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), c.GetInt64("user_id"), id, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": ToMessageResponse(msg)})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	marked, err := h.service.MarkRead(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked_read": marked})
}

func (h *Handler) TotalUnread(c *gin.Context) {
	count, err := h.service.TotalUnread(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

// WebSocket upgrades the connection and keeps it registered until the client
// goes away. The socket is push-only; clients send messages over REST.
func (h *Handler) WebSocket(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed user_id=%d error=%q", userID, err)
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyMessage):
		response.Error(c, http.StatusBadRequest, "EMPTY_MESSAGE", "Message content cannot be empty")
	case errors.Is(err, ErrCannotMessageSelf):
		response.Error(c, http.StatusBadRequest, "SELF_MESSAGE", "You cannot message yourself")
	case errors.Is(err, ErrRecipientNotFound), errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
