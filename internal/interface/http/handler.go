package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/stylist"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	stylistSvc  stylist.Service
	wardrobeSvc wardrobe.Service
	dayplanSvc  dayplan.Service
	defaultTopK int
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(stylistSvc stylist.Service, wardrobeSvc wardrobe.Service, dayplanSvc dayplan.Service, defaultTopK int, logger *slog.Logger) *Handler {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &Handler{
		stylistSvc:  stylistSvc,
		wardrobeSvc: wardrobeSvc,
		dayplanSvc:  dayplanSvc,
		defaultTopK: defaultTopK,
		logger:      logger.With("component", "http.handler"),
	}
}

// Recommend returns the ranked multi-outfit recommendation.
func (h *Handler) Recommend(c *gin.Context) {
	var req stylist.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.overrideUser(c, &req.UserID)

	resp, err := h.stylistSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, stylistError(err, "recommendation_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Compose returns the legacy single-outfit result with harmony pruning.
func (h *Handler) Compose(c *gin.Context) {
	var req stylist.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.overrideUser(c, &req.UserID)

	resp, err := h.stylistSvc.Compose(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, stylistError(err, "compose_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

type addItemRequest struct {
	UserID string           `json:"userId"`
	Item   wardrobe.RawItem `json:"item"`
}

// AddItem validates and stores one wardrobe item.
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.overrideUser(c, &req.UserID)

	item, err := h.wardrobeSvc.Add(c.Request.Context(), req.UserID, req.Item)
	if err != nil {
		abortWithError(c, wardrobeError(err, "add_item_failed"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

type batchRequest struct {
	UserID string             `json:"userId"`
	Items  []wardrobe.RawItem `json:"items"`
}

// IngestBatch stores many items, skipping malformed entries.
func (h *Handler) IngestBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.overrideUser(c, &req.UserID)

	result, err := h.wardrobeSvc.IngestBatch(c.Request.Context(), req.UserID, req.Items)
	if err != nil {
		abortWithError(c, wardrobeError(err, "batch_ingest_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListItems lists or filter-searches a user's wardrobe.
func (h *Handler) ListItems(c *gin.Context) {
	userID := h.resolveUser(c, c.Query("userId"))
	filters := wardrobe.Filters{
		Category:   c.Query("category"),
		Colors:     c.QueryArray("color"),
		StyleTags:  c.QueryArray("styleTag"),
		SeasonTags: c.QueryArray("seasonTag"),
	}

	var (
		items []wardrobe.Item
		err   error
	)
	if filters.Category == "" && len(filters.Colors) == 0 && len(filters.StyleTags) == 0 && len(filters.SeasonTags) == 0 {
		items, err = h.wardrobeSvc.List(c.Request.Context(), userID)
	} else {
		items, err = h.wardrobeSvc.Search(c.Request.Context(), userID, filters)
	}
	if err != nil {
		abortWithError(c, wardrobeError(err, "list_items_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DeleteItem removes one item.
func (h *Handler) DeleteItem(c *gin.Context) {
	userID := h.resolveUser(c, c.Query("userId"))
	if err := h.wardrobeSvc.Remove(c.Request.Context(), userID, c.Param("itemId")); err != nil {
		abortWithError(c, wardrobeError(err, "delete_item_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// SimilarItems runs the embedding similarity search.
func (h *Handler) SimilarItems(c *gin.Context) {
	userID := h.resolveUser(c, c.Query("userId"))
	query := c.Query("q")
	topK := h.defaultTopK
	if raw := c.Query("topK"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			topK = parsed
		}
	}

	items, err := h.wardrobeSvc.Similar(c.Request.Context(), userID, query, topK)
	if err != nil {
		abortWithError(c, wardrobeError(err, "similarity_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DailyContext synthesizes the day's styling context from calendar and
// weather providers.
func (h *Handler) DailyContext(c *gin.Context) {
	userID := h.resolveUser(c, c.Query("userId"))
	location := c.Query("location")
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD", err))
			return
		}
		day = parsed
	}

	plan, err := h.dayplanSvc.Plan(c.Request.Context(), userID, location, day)
	if err != nil {
		status := http.StatusInternalServerError
		code := "context_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, plan)
}

// TrendingMoods returns the most requested moods.
func (h *Handler) TrendingMoods(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	moods, err := h.stylistSvc.Trending(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "trending_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"moods": moods})
}

// overrideUser replaces the payload user id with the authenticated subject
// when auth is enabled.
func (h *Handler) overrideUser(c *gin.Context, userID *string) {
	if authenticated, ok := authenticatedUser(c); ok {
		*userID = authenticated
	}
}

func (h *Handler) resolveUser(c *gin.Context, fallback string) string {
	if authenticated, ok := authenticatedUser(c); ok {
		return authenticated
	}
	return fallback
}

func stylistError(err error, code string) *HTTPError {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "repository_error"):
		status = http.StatusBadGateway
	case apperrors.IsCode(err, "event_log_error"):
		status = http.StatusBadGateway
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func wardrobeError(err error, code string) *HTTPError {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsCode(err, "invalid_input"), apperrors.IsCode(err, "invalid_item"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "repository_error"), apperrors.IsCode(err, "image_store_error"), apperrors.IsCode(err, "similarity_error"):
		status = http.StatusBadGateway
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
