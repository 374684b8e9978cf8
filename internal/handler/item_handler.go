package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/service/item"
)

type ItemHandler struct {
	items *item.Service
}

func NewItemHandler(items *item.Service) *ItemHandler {
	return &ItemHandler{
		items: items,
	}
}

type itemRequest struct {
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Period       string  `json:"period"`
	StartDate    string  `json:"start_date"`
	Category     string  `json:"category"`
	Active       *bool   `json:"active"`
	ReminderDays []int   `json:"reminder_days"`
}

type itemResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Period       string  `json:"period"`
	StartDate    string  `json:"start_date"`
	Category     string  `json:"category,omitempty"`
	Active       bool    `json:"active"`
	ReminderDays []int   `json:"reminder_days,omitempty"`
	NextCharge   string  `json:"next_charge,omitempty"`
	DaysUntil    *int    `json:"days_until,omitempty"`
}

func (r *itemRequest) toDomain(ownerID string) (*domain.Item, error) {
	startDate, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, domain.ErrStartDateRequired
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &domain.Item{
		OwnerID:      ownerID,
		Title:        r.Title,
		Price:        r.Price,
		Currency:     domain.Currency(r.Currency),
		Period:       domain.Period(r.Period),
		StartDate:    startDate,
		Category:     r.Category,
		Active:       active,
		ReminderDays: r.ReminderDays,
	}, nil
}

func toItemResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:           it.ID,
		Title:        it.Title,
		Price:        it.Price,
		Currency:     string(it.Currency),
		Period:       string(it.Period),
		StartDate:    it.StartDate.Format("2006-01-02"),
		Category:     it.Category,
		Active:       it.Active,
		ReminderDays: it.ReminderDays,
	}
}

func (h *ItemHandler) HandleCreate(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	it, err := req.toDomain(owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	created, err := h.items.Create(c.Request.Context(), it)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(c.Request.Context(), "item created",
		slog.String("item_id", created.ID),
	)

	c.JSON(http.StatusCreated, toItemResponse(created))
}

func (h *ItemHandler) HandleList(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	listed, err := h.items.List(c.Request.Context(), owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := make([]itemResponse, 0, len(listed))
	for _, entry := range listed {
		r := toItemResponse(entry.Item)
		if entry.NextCharge != "" {
			r.NextCharge = entry.NextCharge
			days := entry.DaysUntil
			r.DaysUntil = &days
		}
		resp = append(resp, r)
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *ItemHandler) HandleGet(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	it, err := h.items.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) HandleUpdate(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	it, err := req.toDomain(owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	it.ID = c.Param("id")

	updated, err := h.items.Update(c.Request.Context(), it)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(updated))
}

func (h *ItemHandler) HandleDelete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
