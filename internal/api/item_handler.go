// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ashrafz/foodshare-api/internal/api/middleware"
	"github.com/ashrafz/foodshare-api/internal/api/shared"
	"github.com/ashrafz/foodshare-api/internal/domain"
	"github.com/ashrafz/foodshare-api/internal/platform/logger"
	"github.com/ashrafz/foodshare-api/internal/redact"
	"github.com/ashrafz/foodshare-api/internal/store"
)

// ItemHandler handles donation item HTTP requests.
type ItemHandler struct {
	itemStore store.ItemStore
	logger    *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemStore store.ItemStore, log *slog.Logger) *ItemHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		itemStore: itemStore,
		logger:    log.With(slog.String("component", "item_handler")),
	}
}

// ListItems handles GET /products requests. The listing is unbounded; the
// collection has no pagination.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list items", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// ListItemsByOwner handles GET /products/user?userEmail= requests. The route
// sits behind the auth middleware; on top of that, the authenticated email
// must equal the requested owner email. This is authorization by equality,
// not role-based: a mismatch (including an absent query parameter) is
// forbidden before the store is consulted.
func (h *ItemHandler) ListItemsByOwner(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	claims, ok := middleware.GetClaims(r)
	if !ok || claims.Email == "" {
		log.Warn("session claims not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Session claims not found")
		return
	}

	requestedEmail := r.URL.Query().Get("userEmail")
	if requestedEmail != claims.Email {
		log.Warn("owner email mismatch")
		shared.RespondWithError(w, r, http.StatusForbidden, "Forbidden access")
		return
	}

	items, err := h.itemStore.ListByOwner(r.Context(), requestedEmail)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list items", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// ListItemsByRequester handles GET /request/user?requesterEmail= requests.
// The route is unauthenticated and an absent parameter lists every item,
// matching the source behavior.
func (h *ItemHandler) ListItemsByRequester(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.ListByRequester(r.Context(), r.URL.Query().Get("requesterEmail"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list items", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// GetItem handles GET /products/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// AddItem handles POST /addProduct requests. The store assigns the
// identifier; new items start Available (status unset on the wire).
func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	item := &domain.Item{
		FoodName:        req.FoodName,
		FoodQuantity:    req.FoodQuantity,
		Date:            req.Date,
		Location:        req.Location,
		FoodImg:         req.FoodImg,
		Donation:        req.Donation,
		Notes:           req.Notes,
		UserDisplayName: req.UserDisplayName,
		UserPhotoURL:    req.UserPhotoURL,
		UserEmail:       req.UserEmail,
	}

	id, err := h.itemStore.Create(r.Context(), item)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to create item", err)
		return
	}

	log.Debug("item created", slog.String("item_id", id))
	shared.RespondWithJSON(w, r, http.StatusCreated, AddItemResponse{InsertedID: id})
}

// ClaimItem handles PUT /products/{id} requests: a full replace recording a
// claim request. Every listed field is overwritten, the requester identity
// is stored, and the status is forced to Pending. Upsert semantics: a
// non-existent identifier creates the document.
func (h *ItemHandler) ClaimItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ClaimItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	item := &domain.Item{
		FoodName:          req.FoodName,
		FoodQuantity:      req.FoodQuantity,
		Date:              req.Date,
		Location:          req.Location,
		FoodImg:           req.FoodImg,
		Donation:          req.Donation,
		Notes:             req.Notes,
		UserDisplayName:   req.UserDisplayName,
		UserPhotoURL:      req.UserPhotoURL,
		UserEmail:         req.UserEmail,
		RequesterEmail:    req.RequesterEmail,
		RequesterName:     req.RequesterName,
		RequesterPhotoURL: req.RequesterPhotoURL,
		RequestDate:       req.RequestDate,
		Status:            domain.StatusPending,
	}

	id := chi.URLParam(r, "id")
	if err := h.itemStore.Replace(r.Context(), id, item); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item claim recorded", slog.String("item_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, UpdateResponse{Success: true})
}

// EditItem handles PATCH /products/{id} requests: a partial edit of the
// item's presentation fields. Fields absent from the body stay untouched.
func (h *ItemHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var patch domain.ItemPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if patch.IsEmpty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No fields to update")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.itemStore.Patch(r.Context(), id, &patch); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item edited", slog.String("item_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, UpdateResponse{Success: true})
}

// UpdateItemStatus handles PATCH /products/status/{id} requests. Only the
// status field changes; the value must belong to the closed status set and
// a missing item is reported, never created.
func (h *ItemHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.itemStore.UpdateStatus(r.Context(), id, status); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item status updated",
		slog.String("item_id", id),
		slog.String("status", string(status)))
	shared.RespondWithJSON(w, r, http.StatusOK, UpdateResponse{Success: true})
}

// UpdateItemRequesterEmail handles PATCH /products/requesterEmail/{id}
// requests. Only the requester email changes; a missing item is reported,
// never created.
func (h *ItemHandler) UpdateItemRequesterEmail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateRequesterEmailRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.itemStore.UpdateRequesterEmail(r.Context(), id, req.RequesterEmail); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item requester email updated", slog.String("item_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, UpdateResponse{Success: true})
}

// DeleteItem handles DELETE /products/{id} requests. Deleting a
// non-existent identifier completes with a zero count.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := chi.URLParam(r, "id")
	count, err := h.itemStore.Delete(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item deleted", slog.String("item_id", id), slog.Int64("count", count))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteItemResponse{DeletedCount: count})
}
