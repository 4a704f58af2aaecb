package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

const pollsPageSize = 10

type pollService struct {
	repo ports.PollRepository
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return &pollService{
		repo: repo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	question := strings.TrimSpace(input.Question)
	if n := utf8.RuneCountInString(question); n < domain.QuestionMinLen || n > domain.QuestionMaxLen {
		return nil, domain.Invalid("question must be %d-%d characters", domain.QuestionMinLen, domain.QuestionMaxLen)
	}
	if len(input.Options) < domain.MinOptions || len(input.Options) > domain.MaxOptions {
		return nil, domain.Invalid("provide %d-%d options", domain.MinOptions, domain.MaxOptions)
	}

	pollID := uuid.New()
	now := time.Now().UTC()

	poll := &domain.Poll{
		ID:        pollID,
		Question:  question,
		CreatedAt: now,
	}

	for _, optText := range input.Options {
		optText = strings.TrimSpace(optText)
		if optText == "" || utf8.RuneCountInString(optText) > domain.OptionTextMaxLen {
			continue
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       uuid.New(),
			PollID:   pollID,
			Text:     optText,
			Position: len(poll.Options),
		})
	}

	if len(poll.Options) < domain.MinOptions {
		return nil, domain.Invalid("provide at least %d valid options (each up to %d characters)", domain.MinOptions, domain.OptionTextMaxLen)
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pollsPageSize

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return s.repo.List(ctx, pollsPageSize, offset)
	}
	return s.repo.Search(ctx, pollsPageSize, offset, query)
}
