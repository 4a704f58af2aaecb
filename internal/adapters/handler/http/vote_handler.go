package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

type VoteHandler struct {
	service  ports.VoteService
	tally    ports.TallyService
	identity ports.IdentityAssigner
	cookie   VoterCookie
}

func NewVoteHandler(service ports.VoteService, tally ports.TallyService, identity ports.IdentityAssigner, cookie VoterCookie) *VoteHandler {
	return &VoteHandler{
		service:  service,
		tally:    tally,
		identity: identity,
		cookie:   cookie,
	}
}

type voteRequest struct {
	OptionID string `json:"optionId"`
}

type voteResponse struct {
	OK bool `json:"ok"`
	*domain.Tally
}

type myVoteResponse struct {
	OptionID uuid.UUID `json:"optionId"`
}

// CastVote records the caller's choice and answers with the fresh tally.
// Retrying it is safe: the voter's previous choice is replaced.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.OptionID == "" {
		respondError(w, r, domain.Invalid("optionId required"))
		return
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		respondError(w, r, domain.ErrInvalidOption)
		return
	}

	voter, err := h.identity.Assign(h.cookie.Read(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	err = h.service.CastVote(r.Context(), ports.CastVoteInput{
		PollID:     pollID,
		OptionID:   optionID,
		VoterToken: voter.Token,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	// Only an accepted vote hands out a new identity.
	if voter.Minted {
		h.cookie.Write(w, voter.Signed)
	}

	tally, err := h.tally.GetTally(r.Context(), pollID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Debug("vote cast", "poll_id", pollID, "option_id", optionID, "new_voter", voter.Minted)

	respondJSON(w, http.StatusOK, voteResponse{OK: true, Tally: tally})
}

// GetMyVote returns the caller's current choice. It never mints a token.
func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	presented := h.cookie.Read(r)
	if presented == "" {
		respondError(w, r, domain.ErrVoteNotFound)
		return
	}
	voter, err := h.identity.Assign(presented)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if voter.Minted {
		respondError(w, r, domain.ErrVoteNotFound)
		return
	}

	vote, err := h.service.GetVote(r.Context(), pollID, voter.Token)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, myVoteResponse{OptionID: vote.OptionID})
}
