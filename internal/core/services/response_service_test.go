package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

func setupResponseService(t *testing.T) (ports.ResponseService, *fakeResponseRepo, *domain.Event) {
	t.Helper()

	eventRepo := newFakeEventRepo()
	responseRepo := newFakeResponseRepo()

	eventSvc := NewEventService(eventRepo, responseRepo)
	input := validInput()
	input.Questions = []ports.QuestionInput{
		{Text: "Attending?", Type: domain.QuestionSingleChoice, Options: []string{"Yes", "No"}},
		{Text: "Dishes", Type: domain.QuestionMultipleChoice, Options: []string{"Salad", "Bread", "Cake"}},
	}
	event, err := eventSvc.Create(context.Background(), input, nil)
	require.NoError(t, err)

	return NewResponseService(eventRepo, responseRepo), responseRepo, event
}

func TestSubmitResponse(t *testing.T) {
	svc, repo, event := setupResponseService(t)

	answers := map[uuid.UUID]any{
		event.Questions[0].ID: "Yes",
		event.Questions[1].ID: []string{"Salad", "Cake"},
	}

	id, err := svc.Submit(context.Background(), ports.SubmitInput{EventID: event.ID, Answers: answers})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, repo.answers, 2)
	values := map[uuid.UUID]string{}
	for _, answer := range repo.answers {
		values[answer.QuestionID] = answer.Value
		assert.Equal(t, id, answer.ResponseID)
	}
	assert.Equal(t, "Yes", values[event.Questions[0].ID])
	assert.Equal(t, "Salad, Cake", values[event.Questions[1].ID], "multi-select answers are joined")
}

func TestSubmitResponseEmptyAnswersStillPersistsHeader(t *testing.T) {
	svc, repo, event := setupResponseService(t)

	id, err := svc.Submit(context.Background(), ports.SubmitInput{
		EventID: event.ID,
		Answers: map[uuid.UUID]any{
			event.Questions[0].ID: "",
			event.Questions[1].ID: []string{},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	assert.Empty(t, repo.answers)
	assert.Contains(t, repo.headers, id, "the header survives with zero answers")
}

func TestSubmitResponseUnknownEvent(t *testing.T) {
	svc, _, _ := setupResponseService(t)

	_, err := svc.Submit(context.Background(), ports.SubmitInput{EventID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestSubmitResponseRollsBackHeaderOnAnswerFailure(t *testing.T) {
	svc, repo, event := setupResponseService(t)
	repo.insertErr = errors.New("disk full")

	_, err := svc.Submit(context.Background(), ports.SubmitInput{
		EventID: event.ID,
		Answers: map[uuid.UUID]any{event.Questions[0].ID: "Yes"},
	})
	assert.ErrorIs(t, err, domain.ErrAnswerPersistence)

	assert.Empty(t, repo.headers, "the header is deleted when answers cannot be written")
	require.Len(t, repo.deletedHeader, 1)
}

func TestSubmitResponseSurvivesCompensationFailure(t *testing.T) {
	svc, repo, event := setupResponseService(t)
	repo.insertErr = errors.New("disk full")
	repo.deleteHdrErr = errors.New("still broken")

	_, err := svc.Submit(context.Background(), ports.SubmitInput{
		EventID: event.ID,
		Answers: map[uuid.UUID]any{event.Questions[0].ID: "Yes"},
	})
	assert.ErrorIs(t, err, domain.ErrAnswerPersistence)

	// The orphaned header stays behind; callers still just see the insert error.
	assert.Len(t, repo.headers, 1)
}

func TestDeleteResponses(t *testing.T) {
	svc, repo, event := setupResponseService(t)

	id, err := svc.Submit(context.Background(), ports.SubmitInput{EventID: event.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), nil))
	assert.Len(t, repo.headers, 1, "empty id list is a no-op")

	require.NoError(t, svc.Delete(context.Background(), []uuid.UUID{id}))
	assert.Empty(t, repo.headers)
}

func TestFlattenAnswer(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{"nil", nil, "", false},
		{"empty string", "", "", false},
		{"plain string", "9:00", "9:00", true},
		{"empty slice", []string{}, "", false},
		{"string slice", []string{"a", "b"}, "a, b", true},
		{"any slice", []any{"x", "y"}, "x, y", true},
		{"number", 42, "42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.FlattenAnswer(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
