package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/SscSPs/journal_workflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests for the journal entry workflow.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
	roles        portssvc.RoleResolver
}

// RegisterJournalEntryRoutes registers the journal entry routes under rg.
func RegisterJournalEntryRoutes(rg *gin.RouterGroup, entrySvc portssvc.JournalEntrySvcFacade, roles portssvc.RoleResolver) {
	registerValidators()
	h := &journalEntryHandler{entryService: entrySvc, roles: roles}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/validate", h.validateEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/submit", h.submitEntry)
		entries.POST("/:entryID/approve", h.approveEntry)
		entries.POST("/:entryID/reject", h.rejectEntry)
		entries.POST("/:entryID/confirm", h.confirmEntry)
		entries.GET("/:entryID/history", h.getEntryHistory)
	}
}

// roleFor looks up the caller's role for the allowedOperations hint. A lookup
// failure only hides the hint.
func (h *journalEntryHandler) roleFor(ctx context.Context, userID string) domain.Role {
	role, err := h.roles.ResolveRole(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to resolve role for response", slog.String("error", err.Error()))
		return domain.RoleUnknown
	}
	return role
}

func (h *journalEntryHandler) respondEntry(c *gin.Context, status int, entry *domain.JournalEntry, userID string) {
	role := h.roleFor(c.Request.Context(), userID)
	c.JSON(status, dto.ToJournalEntryResponse(entry, role, true))
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Saves a new DRAFT entry. Drafts may be unbalanced or incomplete, but the header must be filled in and every amount must be storable.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry header and lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not create entries"
// @Failure 422 {object} dto.ErrorResponse "Missing field or unstorable amount"
// @Failure 500 {object} dto.ErrorResponse "Failed to create journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries [post]
func (h *journalEntryHandler) createEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}
	h.respondEntry(c, http.StatusCreated, entry, userID)
}

// validateEntry godoc
// @Summary Dry-run entry validation
// @Description Runs the submit checks against a candidate entry without saving it and returns the totals and the first blocking problem.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Candidate entry"
// @Success 200 {object} dto.ValidateJournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not create entries"
// @Failure 500 {object} dto.ErrorResponse "Failed to validate journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/validate [post]
func (h *journalEntryHandler) validateEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.entryService.ValidateDraft(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to validate journal entry")
		return
	}

	resp := dto.ValidateJournalEntryResponse{
		Valid:       result.Problem == nil,
		TotalDebit:  result.Totals.TotalDebit.String(),
		TotalCredit: result.Totals.TotalCredit.String(),
		Difference:  result.Totals.Difference.String(),
	}
	if result.Problem != nil {
		_, body := describeError(result.Problem)
		resp.Error = &body
	}
	c.JSON(http.StatusOK, resp)
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first, optionally filtered by status. Use nextToken from the previous page to continue.
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "DRAFT, PENDING, APPROVED or CONFIRMED"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list journal entries"
// @Security BearerAuth
// @Router /api/v1/journal-entries [get]
func (h *journalEntryHandler) listEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	entries, nextToken, err := h.entryService.ListEntries(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	role := h.roleFor(c.Request.Context(), userID)
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries, role, nextToken))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Returns the entry with its lines, totals and the operations the caller may perform next.
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err, "Failed to get journal entry")
		return
	}
	h.respondEntry(c, http.StatusOK, entry, userID)
}

// updateEntry godoc
// @Summary Edit a draft entry
// @Description Replaces the header and lines of a DRAFT entry. The version must match the stored one.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Version last read plus the new header and lines"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not edit entries"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Entry is not a draft or the version is stale"
// @Failure 422 {object} dto.ErrorResponse "Missing field or unstorable amount"
// @Failure 500 {object} dto.ErrorResponse "Failed to update journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID} [put]
func (h *journalEntryHandler) updateEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), c.Param("entryID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update journal entry")
		return
	}
	h.respondEntry(c, http.StatusOK, entry, userID)
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   version query int true "Version last read"
// @Success 204 "Entry deleted"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid version"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not delete entries"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Entry is not a draft or the version is stale"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID} [delete]
func (h *journalEntryHandler) deleteEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	version, err := strconv.ParseInt(c.Query("version"), 10, 64)
	if err != nil || version < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "version query parameter must be a positive integer",
			Code:  codeBadRequest,
		})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), c.Param("entryID"), version, userID); err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// transition binds the version body shared by submit, approve and confirm.
func (h *journalEntryHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, entryID string, expectedVersion int64, actingUserID string) (*domain.JournalEntry, error),
	failMsg string,
) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := apply(c.Request.Context(), c.Param("entryID"), req.Version, userID)
	if err != nil {
		respondError(c, err, failMsg)
		return
	}
	h.respondEntry(c, http.StatusOK, entry, userID)
}

// submitEntry godoc
// @Summary Submit a draft for approval
// @Description Moves a valid, balanced DRAFT entry to PENDING.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.TransitionRequest true "Version last read"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not submit entries"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal transition or stale version"
// @Failure 422 {object} dto.ErrorResponse "Entry is incomplete or unbalanced"
// @Failure 500 {object} dto.ErrorResponse "Failed to submit journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID}/submit [post]
func (h *journalEntryHandler) submitEntry(c *gin.Context) {
	h.transition(c, h.entryService.SubmitEntry, "Failed to submit journal entry")
}

// approveEntry godoc
// @Summary Approve a pending entry
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.TransitionRequest true "Version last read"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Requires MANAGER or above"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal transition or stale version"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID}/approve [post]
func (h *journalEntryHandler) approveEntry(c *gin.Context) {
	h.transition(c, h.entryService.ApproveEntry, "Failed to approve journal entry")
}

// confirmEntry godoc
// @Summary Confirm an approved entry
// @Description CONFIRMED is terminal; the entry can no longer change.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.TransitionRequest true "Version last read"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Requires MANAGER or above"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal transition or stale version"
// @Failure 500 {object} dto.ErrorResponse "Failed to confirm journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID}/confirm [post]
func (h *journalEntryHandler) confirmEntry(c *gin.Context) {
	h.transition(c, h.entryService.ConfirmEntry, "Failed to confirm journal entry")
}

// rejectEntry godoc
// @Summary Reject a pending entry
// @Description Returns a PENDING entry to DRAFT and records the reason.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.RejectJournalEntryRequest true "Version last read and rejection reason"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Requires MANAGER or above"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal transition or stale version"
// @Failure 422 {object} dto.ErrorResponse "Reason is required"
// @Failure 500 {object} dto.ErrorResponse "Failed to reject journal entry"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID}/reject [post]
func (h *journalEntryHandler) rejectEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req dto.RejectJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.entryService.RejectEntry(c.Request.Context(), c.Param("entryID"), req.Version, req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to reject journal entry")
		return
	}
	h.respondEntry(c, http.StatusOK, entry, userID)
}

// getEntryHistory godoc
// @Summary Get the transition history of an entry
// @Description Every accepted mutation in order, including earlier rejections and their reasons.
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryHistoryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No history for this entry"
// @Failure 500 {object} dto.ErrorResponse "Failed to get journal entry history"
// @Security BearerAuth
// @Router /api/v1/journal-entries/{entryID}/history [get]
func (h *journalEntryHandler) getEntryHistory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	entryID := c.Param("entryID")
	events, err := h.entryService.GetEntryHistory(c.Request.Context(), entryID, userID)
	if err != nil {
		respondError(c, err, "Failed to get journal entry history")
		return
	}
	c.JSON(http.StatusOK, dto.EntryHistoryResponse{EntryID: entryID, Events: events})
}
