package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/service/dispatch"
	"github.com/subtrackhq/subtrack/internal/service/ledger"
)

type NotificationHandler struct {
	ledger       *ledger.Service
	dispatcher   *dispatch.Dispatcher
	defaultLimit int
}

func NewNotificationHandler(ledgerSvc *ledger.Service, dispatcher *dispatch.Dispatcher, defaultLimit int) *NotificationHandler {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &NotificationHandler{
		ledger:       ledgerSvc,
		dispatcher:   dispatcher,
		defaultLimit: defaultLimit,
	}
}

type notificationResponse struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id,omitempty"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	SentAt    string `json:"sent_at"`
	Delivered bool   `json:"delivered"`
	Read      bool   `json:"read"`
}

func toNotificationResponse(e *domain.Event) notificationResponse {
	return notificationResponse{
		ID:        e.ID,
		ItemID:    e.ItemID,
		Type:      e.Type.String(),
		Title:     e.Title,
		Message:   e.Message,
		SentAt:    e.SentAt.UTC().Format(time.RFC3339),
		Delivered: e.Delivered,
		Read:      e.Read,
	}
}

func (h *NotificationHandler) HandleList(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	limit := h.defaultLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	page, err := h.ledger.History(c.Request.Context(), owner, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := make([]notificationResponse, 0, len(page.Events))
	for _, e := range page.Events {
		resp = append(resp, toNotificationResponse(e))
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": resp,
		"unread":        page.Unread,
	})
}

func (h *NotificationHandler) HandleClear(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.ledger.ClearAll(c.Request.Context(), owner); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) HandleMarkRead(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.ledger.MarkRead(c.Request.Context(), owner, c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleTest pushes a test event through the full record and dispatch
// path so an owner can verify their channel end to end.
func (h *NotificationHandler) HandleTest(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	event, err := h.ledger.Record(ctx, ledger.RecordInput{
		OwnerID: owner,
		Type:    domain.EventTest,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	outcome := h.dispatcher.Attempt(ctx, event)

	c.JSON(http.StatusOK, gin.H{
		"id":        event.ID,
		"delivered": outcome.Succeeded,
	})
}
