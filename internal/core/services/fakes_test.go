package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
)

type fakePollRepo struct {
	mu      sync.Mutex
	polls   map[uuid.UUID]*domain.Poll
	saves   int
	saveErr error

	listCalls   int
	searchQuery string
	lastLimit   int
	lastOffset  int
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
}

func (r *fakePollRepo) Save(_ context.Context, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.polls[poll.ID] = poll
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return poll, nil
}

func (r *fakePollRepo) GetOption(_ context.Context, id uuid.UUID) (*domain.PollOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, poll := range r.polls {
		for _, opt := range poll.Options {
			if opt.ID == id {
				return &opt, nil
			}
		}
	}
	return nil, domain.ErrInvalidOption
}

func (r *fakePollRepo) GetAll(_ context.Context) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var polls []*domain.Poll
	for _, poll := range r.polls {
		polls = append(polls, poll)
	}
	return polls, nil
}

func (r *fakePollRepo) List(_ context.Context, limit, offset int) ([]*domain.Poll, error) {
	r.listCalls++
	r.lastLimit, r.lastOffset = limit, offset
	return nil, nil
}

func (r *fakePollRepo) Search(_ context.Context, limit, offset int, query string) ([]*domain.Poll, error) {
	r.searchQuery = query
	r.lastLimit, r.lastOffset = limit, offset
	return nil, nil
}

type voteKey struct {
	pollID uuid.UUID
	voter  string
}

type fakeVoteRepo struct {
	mu    sync.Mutex
	votes map[voteKey]*domain.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]*domain.Vote)}
}

func (r *fakeVoteRepo) UpsertVote(_ context.Context, vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey{vote.PollID, vote.VoterToken}
	if existing, ok := r.votes[key]; ok {
		existing.OptionID = vote.OptionID
		existing.UpdatedAt = vote.UpdatedAt
		return nil
	}
	v := *vote
	r.votes[key] = &v
	return nil
}

func (r *fakeVoteRepo) GetVote(_ context.Context, pollID uuid.UUID, voterToken string) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.votes[voteKey{pollID, voterToken}]
	if !ok {
		return nil, domain.ErrVoteNotFound
	}
	return v, nil
}

func (r *fakeVoteRepo) CountVotesByOption(_ context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	for key, v := range r.votes {
		if key.pollID == pollID {
			counts[v.OptionID]++
		}
	}
	return counts, nil
}

func (r *fakeVoteRepo) rows(pollID uuid.UUID) []*domain.Vote {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []*domain.Vote
	for key, v := range r.votes {
		if key.pollID == pollID {
			rows = append(rows, v)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].VoterToken < rows[j].VoterToken })
	return rows
}

type fakeResultRepo struct {
	mu         sync.Mutex
	summarized []uuid.UUID
	failFor    map[uuid.UUID]error
}

func (r *fakeResultRepo) SummarizeVotes(_ context.Context, pollID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failFor[pollID]; ok {
		return err
	}
	r.summarized = append(r.summarized, pollID)
	return nil
}

func (r *fakeResultRepo) GetResults(_ context.Context, pollID uuid.UUID) ([]domain.PollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.summarized {
		if id == pollID {
			return []domain.PollResult{{PollID: pollID}}, nil
		}
	}
	return nil, nil
}
