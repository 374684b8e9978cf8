package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/service/dispatch"
	"github.com/subtrackhq/subtrack/internal/service/ledger"
)

// ChannelHandler accepts link-established and link-revoked signals from
// the bot side and keeps the ledger in step with them.
type ChannelHandler struct {
	links      domain.ChannelLinkRepository
	ledger     *ledger.Service
	dispatcher *dispatch.Dispatcher
	clock      domain.Clock
}

func NewChannelHandler(
	links domain.ChannelLinkRepository,
	ledgerSvc *ledger.Service,
	dispatcher *dispatch.Dispatcher,
	clock domain.Clock,
) *ChannelHandler {
	return &ChannelHandler{
		links:      links,
		ledger:     ledgerSvc,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

type linkRequest struct {
	ChatID       string   `json:"chat_id"`
	AllowedTypes []string `json:"allowed_types"`
}

func (h *ChannelHandler) HandleLink(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.ChatID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "chat_id is required")
		return
	}

	allowed := make([]domain.EventType, 0, len(req.AllowedTypes))
	for _, raw := range req.AllowedTypes {
		t := domain.EventType(raw)
		if !t.Valid() {
			respondDomainError(c, domain.ErrInvalidEventType)
			return
		}
		allowed = append(allowed, t)
	}

	link := &domain.ChannelLink{
		OwnerID:      owner,
		ChatID:       req.ChatID,
		AllowedTypes: allowed,
		LinkedAt:     h.clock.Now().UTC(),
	}
	if err := h.links.Save(ctx, link); err != nil {
		respondDomainError(c, err)
		return
	}

	event, err := h.ledger.Record(ctx, ledger.RecordInput{
		OwnerID: owner,
		Type:    domain.EventChannelConnected,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	h.dispatcher.Attempt(ctx, event)

	slog.InfoContext(ctx, "channel linked",
		slog.String("chat_id", req.ChatID),
	)

	c.Status(http.StatusNoContent)
}

func (h *ChannelHandler) HandleUnlink(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if err := h.links.Delete(ctx, owner); err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			// Unlinking twice is fine; the end state is the same.
			c.Status(http.StatusNoContent)
			return
		}
		respondDomainError(c, err)
		return
	}

	// The link is gone, so the disconnect notice lands in the ledger
	// only. Recorded after the delete on purpose.
	if _, err := h.ledger.Record(ctx, ledger.RecordInput{
		OwnerID: owner,
		Type:    domain.EventChannelDisconnected,
	}); err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "channel unlinked")

	c.Status(http.StatusNoContent)
}
