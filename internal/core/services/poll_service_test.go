package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/quickpoll/internal/core/domain"
	"github.com/vncsmyrnk/quickpoll/internal/core/ports"
)

func TestPollService_Create(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)

	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		Question: "  What's for lunch?  ",
		Options:  []string{"Pizza", " Burger "},
	})
	require.NoError(t, err)

	assert.Equal(t, "What's for lunch?", poll.Question)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "Pizza", poll.Options[0].Text)
	assert.Equal(t, "Burger", poll.Options[1].Text)
	assert.Equal(t, 0, poll.Options[0].Position)
	assert.Equal(t, 1, poll.Options[1].Position)
	assert.Equal(t, poll.ID, poll.Options[1].PollID)
	assert.NotEqual(t, poll.Options[0].ID, poll.Options[1].ID)
	assert.Equal(t, 1, repo.saves)
}

func TestPollService_CreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		question string
		options  []string
	}{
		{"question too short", "Why?", []string{"a", "b"}},
		{"question short after trim", "   abc    ", []string{"a", "b"}},
		{"question too long", strings.Repeat("q", 141), []string{"a", "b"}},
		{"one option", "Is this fine?", []string{"Yes"}},
		{"seven options", "Pick a day", []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"no options", "Pick a day", nil},
		{"blank options dropped", "Pick a day", []string{"Mon", "   ", ""}},
		{"long options dropped", "Pick a day", []string{"Mon", strings.Repeat("x", 61)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePollRepo()
			svc := NewPollService(repo)

			_, err := svc.Create(context.Background(), ports.CreatePollInput{
				Question: tt.question,
				Options:  tt.options,
			})

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, 0, repo.saves, "nothing may be persisted")
		})
	}
}

func TestPollService_CreateBoundaries(t *testing.T) {
	svc := NewPollService(newFakePollRepo())

	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		Question: strings.Repeat("é", domain.QuestionMaxLen),
		Options:  []string{strings.Repeat("ü", domain.OptionTextMaxLen), "b", "c", "d", "e", "f"},
	})
	require.NoError(t, err)
	assert.Len(t, poll.Options, 6)
}

func TestPollService_CreateDropsInvalidOptions(t *testing.T) {
	svc := NewPollService(newFakePollRepo())

	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		Question: "Best editor?",
		Options:  []string{"vim", "", "emacs"},
	})
	require.NoError(t, err)

	require.Len(t, poll.Options, 2)
	assert.Equal(t, "emacs", poll.Options[1].Text)
	assert.Equal(t, 1, poll.Options[1].Position)
}

func TestPollService_CreateStoreFailure(t *testing.T) {
	repo := newFakePollRepo()
	repo.saveErr = errors.New("connection refused")
	svc := NewPollService(repo)

	_, err := svc.Create(context.Background(), ports.CreatePollInput{
		Question: "Best editor?",
		Options:  []string{"vim", "emacs"},
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestPollService_GetPoll(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)

	created, err := svc.Create(context.Background(), ports.CreatePollInput{
		Question: "Best editor?",
		Options:  []string{"vim", "emacs"},
	})
	require.NoError(t, err)

	poll, err := svc.GetPoll(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, poll.ID)

	_, err = svc.GetPoll(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidPollID)

	_, err = svc.GetPoll(context.Background(), "5f0c7c8e-1b7a-4d59-9b1e-2b0c1f3d4e5a")
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestPollService_ListPolls(t *testing.T) {
	repo := newFakePollRepo()
	svc := NewPollService(repo)

	_, err := svc.ListPolls(context.Background(), ports.ListPollsInput{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)

	_, err = svc.ListPolls(context.Background(), ports.ListPollsInput{Page: 3, Query: " lunch "})
	require.NoError(t, err)
	assert.Equal(t, "lunch", repo.searchQuery)
	assert.Equal(t, 20, repo.lastOffset)
}
