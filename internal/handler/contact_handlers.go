package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aspire-executive/frontdesk/internal/domain"
	"github.com/aspire-executive/frontdesk/internal/handler/dto"
	"github.com/aspire-executive/frontdesk/internal/repository"
	"github.com/aspire-executive/frontdesk/internal/service"
)

const maxContactBody = 64 << 10

// handleAPIRoot identifies the API.
// @Summary API root
// @Tags meta
// @Produce json
// @Success 200 {object} dto.APIRootResponse
// @Router / [get]
func (h *Handler) handleAPIRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.APIRootResponse{Message: "Aspire Executive Solutions API"})
}

// handleCreateContact accepts a contact form submission.
// @Summary Submit the contact form
// @Description Stores the inquiry and queues a notification e-mail. E-mail problems do not fail the request.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact inquiry"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /contact [post]
func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.ContactRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	sub, err := h.deps.Contacts.Submit(ctx, req.ToInquiry())
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			resp := dto.NewErrorResponse("VALIDATION_ERROR", verr.Error())
			resp.Error.Fields = verr.Fields
			respondJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToContactResponse(sub))
}

// handleListSubmissions lists stored submissions, newest first.
// @Summary List contact submissions
// @Tags admin
// @Produce json
// @Param status query string false "new, notified or notify_failed"
// @Param limit query int false "Page size (default 50, clamped to 200)"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 401 {string} string
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /contact-submissions [get]
func (h *Handler) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ListFilter{}

	if raw := q.Get("status"); raw != "" {
		status := domain.SubmissionStatus(raw)
		if !status.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "status must be 'new', 'notified' or 'notify_failed'")
			return
		}
		filter.Status = &status
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "offset must be a positive integer")
			return
		}
		filter.Offset = n
	}

	subs, err := h.deps.Lister.List(r.Context(), filter)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	out := make([]dto.SubmissionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, dto.ToSubmissionResponse(s))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleGetSubmission returns a single stored submission.
// @Summary Get a contact submission
// @Tags admin
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /contact-submissions/{id} [get]
func (h *Handler) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := extractSubmissionID(w, r)
	if !ok {
		return
	}

	sub, err := h.deps.Contacts.Get(r.Context(), id)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSubmissionResponse(sub))
}
