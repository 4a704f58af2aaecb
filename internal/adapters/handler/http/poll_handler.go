package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
	tally   ports.TallyService
}

func NewPollHandler(service ports.PollService, tally ports.TallyService) *PollHandler {
	return &PollHandler{
		service: service,
		tally:   tally,
	}
}

type createPollRequest struct {
	Question string `json:"question"`
	Options  []any  `json:"options"`
}

// optionTexts keeps every entry so the option count is checked on the raw
// list. Entries that are not strings become blank and are dropped later.
func (req createPollRequest) optionTexts() []string {
	texts := make([]string, len(req.Options))
	for i, opt := range req.Options {
		if text, ok := opt.(string); ok {
			texts[i] = text
		}
	}
	return texts
}

type createPollResponse struct {
	ID uuid.UUID `json:"id"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	poll, err := h.service.Create(r.Context(), ports.CreatePollInput{
		Question: req.Question,
		Options:  req.optionTexts(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, createPollResponse{ID: poll.ID})
}

// GetPoll returns the poll with its live tally. Clients poll this endpoint
// to follow the vote.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	tally, err := h.tally.GetTally(r.Context(), pollID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tally)
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			respondError(w, r, domain.Invalid("page must be a positive integer"))
			return
		}
		page = n
	}

	polls, err := h.service.ListPolls(r.Context(), ports.ListPollsInput{
		Page:  page,
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, polls)
}

func pollIDParam(r *http.Request) (uuid.UUID, error) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidPollID
	}
	return pollID, nil
}
