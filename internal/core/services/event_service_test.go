package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type fakeEventRepo struct {
	events     map[uuid.UUID]*domain.Event
	lastDiff   ports.QuestionDiff
	updateDiff bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*domain.Event)}
}

func (r *fakeEventRepo) Save(_ context.Context, event *domain.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) GetAll(_ context.Context) ([]*domain.Event, error) {
	all := make([]*domain.Event, 0, len(r.events))
	for _, event := range r.events {
		all = append(all, event)
	}
	return all, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *domain.Event, diff ports.QuestionDiff) error {
	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	existing := r.events[event.ID]
	event.Questions = existing.Questions
	event.ResponseCount = existing.ResponseCount
	r.events[event.ID] = event
	r.lastDiff = diff
	r.updateDiff = true
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type fakeResponseRepo struct {
	headers       map[uuid.UUID]*domain.Response
	answers       []domain.Answer
	countByEvent  map[uuid.UUID]int64
	insertErr     error
	deleteHdrErr  error
	deletedHeader []uuid.UUID
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{
		headers:      make(map[uuid.UUID]*domain.Response),
		countByEvent: make(map[uuid.UUID]int64),
	}
}

func (r *fakeResponseRepo) CreateHeader(_ context.Context, response *domain.Response) error {
	r.headers[response.ID] = response
	return nil
}

func (r *fakeResponseRepo) InsertAnswers(_ context.Context, answers []domain.Answer) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.answers = append(r.answers, answers...)
	return nil
}

func (r *fakeResponseRepo) DeleteHeader(_ context.Context, id uuid.UUID) error {
	if r.deleteHdrErr != nil {
		return r.deleteHdrErr
	}
	delete(r.headers, id)
	r.deletedHeader = append(r.deletedHeader, id)
	return nil
}

func (r *fakeResponseRepo) GetByEvent(_ context.Context, eventID uuid.UUID) ([]*domain.Response, error) {
	var responses []*domain.Response
	for _, response := range r.headers {
		if response.EventID == eventID {
			responses = append(responses, response)
		}
	}
	return responses, nil
}

func (r *fakeResponseRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.headers, id)
	}
	return nil
}

func (r *fakeResponseRepo) CountByEvent(_ context.Context, eventID uuid.UUID) (int64, error) {
	return r.countByEvent[eventID], nil
}

func validInput() ports.EventInput {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	return ports.EventInput{
		Title:         "Team Offsite",
		EventDate:     date,
		StartDateTime: date.Add(9 * time.Hour),
		EndDateTime:   date.Add(17 * time.Hour),
		Status:        domain.StatusAwaiting,
	}
}

func TestValidateQuestionDraft(t *testing.T) {
	tests := []struct {
		name  string
		draft ports.QuestionInput
		want  error
	}{
		{
			name:  "valid short text",
			draft: ports.QuestionInput{Text: "Your name?", Type: domain.QuestionShortText},
		},
		{
			name:  "blank text",
			draft: ports.QuestionInput{Text: "   ", Type: domain.QuestionShortText},
			want:  domain.ErrQuestionTextBlank,
		},
		{
			name:  "unknown type",
			draft: ports.QuestionInput{Text: "Pick one", Type: "dropdown"},
			want:  domain.ErrInvalidQuestionType,
		},
		{
			name:  "choice with one option",
			draft: ports.QuestionInput{Text: "Pick one", Type: domain.QuestionSingleChoice, Options: []string{"Only"}},
			want:  domain.ErrNotEnoughOptions,
		},
		{
			name:  "choice with duplicate options collapses below two",
			draft: ports.QuestionInput{Text: "Pick one", Type: domain.QuestionMultipleChoice, Options: []string{"Red", " Red ", ""}},
			want:  domain.ErrNotEnoughOptions,
		},
		{
			name:  "choice with two distinct options",
			draft: ports.QuestionInput{Text: "Pick one", Type: domain.QuestionSingleChoice, Options: []string{"Red", "Blue"}},
		},
		{
			name:  "text list needs options too",
			draft: ports.QuestionInput{Text: "Tags", Type: domain.QuestionTextList, Options: []string{"go"}},
			want:  domain.ErrNotEnoughOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestionDraft(tt.draft)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestDiffQuestions(t *testing.T) {
	eventID := uuid.New()
	keptID := uuid.New()
	goneID := uuid.New()

	existing := []domain.Question{
		{ID: keptID, EventID: eventID, Text: "Old text", SortOrder: 0},
		{ID: goneID, EventID: eventID, Text: "Will be removed", SortOrder: 1},
	}
	desired := []ports.QuestionInput{
		{Text: "Brand new", Type: domain.QuestionShortText},
		{ID: &keptID, Text: "New text", Type: domain.QuestionShortText},
	}

	diff := DiffQuestions(eventID, existing, desired)

	require.Len(t, diff.ToInsert, 1)
	require.Len(t, diff.ToUpdate, 1)
	require.Len(t, diff.ToDelete, 1)

	assert.Equal(t, "Brand new", diff.ToInsert[0].Text)
	assert.NotEqual(t, uuid.Nil, diff.ToInsert[0].ID)
	assert.Equal(t, 0, diff.ToInsert[0].SortOrder)

	assert.Equal(t, keptID, diff.ToUpdate[0].ID)
	assert.Equal(t, "New text", diff.ToUpdate[0].Text)
	assert.Equal(t, 1, diff.ToUpdate[0].SortOrder, "sort order follows the desired position")

	assert.Equal(t, goneID, diff.ToDelete[0])
}

func TestDiffQuestionsForeignIDBecomesInsert(t *testing.T) {
	eventID := uuid.New()
	ownID := uuid.New()
	foreignID := uuid.New()

	existing := []domain.Question{
		{ID: ownID, EventID: eventID, Text: "Own question"},
	}
	desired := []ports.QuestionInput{
		{ID: &foreignID, Text: "Hijack attempt", Type: domain.QuestionShortText},
	}

	diff := DiffQuestions(eventID, existing, desired)

	// An id that does not belong to the event must never reach ToUpdate.
	assert.Empty(t, diff.ToUpdate)
	require.Len(t, diff.ToInsert, 1)
	assert.NotEqual(t, foreignID, diff.ToInsert[0].ID)
	assert.Equal(t, "Hijack attempt", diff.ToInsert[0].Text)

	// The event's own question, absent from desired, is still deleted.
	require.Len(t, diff.ToDelete, 1)
	assert.Equal(t, ownID, diff.ToDelete[0])
}

func TestDiffQuestionsEmptyDesiredDeletesEverything(t *testing.T) {
	eventID := uuid.New()
	existing := []domain.Question{
		{ID: uuid.New(), EventID: eventID},
		{ID: uuid.New(), EventID: eventID},
	}

	diff := DiffQuestions(eventID, existing, nil)

	assert.Empty(t, diff.ToInsert)
	assert.Empty(t, diff.ToUpdate)
	assert.Len(t, diff.ToDelete, 2)
}

func TestCreateEventActiveRequiresQuestions(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeResponseRepo())

	input := validInput()
	input.Status = domain.StatusActive

	_, err := svc.Create(context.Background(), input, nil)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)

	input.Questions = []ports.QuestionInput{
		{Text: "Coming?", Type: domain.QuestionSingleChoice, Options: []string{"Yes", "No"}},
	}
	event, err := svc.Create(context.Background(), input, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, event.Status)
	require.Len(t, event.Questions, 1)
	assert.Equal(t, event.ID, event.Questions[0].EventID)
}

func TestCreateEventRejectsBadStatus(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeResponseRepo())

	input := validInput()
	input.Status = "archived"

	_, err := svc.Create(context.Background(), input, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateEventSkipsDiffWhenResponsesExist(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeResponseRepo())

	event, err := svc.Create(context.Background(), validInput(), nil)
	require.NoError(t, err)

	repo.events[event.ID].ResponseCount = 3

	input := validInput()
	input.Title = "Renamed Offsite"
	input.Questions = []ports.QuestionInput{
		{Text: "Should be ignored", Type: domain.QuestionShortText},
	}

	updated, err := svc.Update(context.Background(), event.ID.String(), input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Offsite", updated.Title)

	require.True(t, repo.updateDiff)
	assert.Empty(t, repo.lastDiff.ToInsert, "question writes are skipped once responses exist")
	assert.Empty(t, repo.lastDiff.ToUpdate)
	assert.Empty(t, repo.lastDiff.ToDelete)
}

func TestUpdateFrozenEventSkipsDraftValidation(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeResponseRepo())

	input := validInput()
	input.Status = domain.StatusActive
	input.Questions = []ports.QuestionInput{
		{Text: "Attending?", Type: domain.QuestionSingleChoice, Options: []string{"Yes", "No"}},
	}
	event, err := svc.Create(context.Background(), input, nil)
	require.NoError(t, err)

	repo.events[event.ID].ResponseCount = 2

	// Ignored drafts are not validated: an invalid one does not block a
	// field-only update.
	input.Title = "Renamed"
	input.Questions = []ports.QuestionInput{
		{Text: "Pick", Type: domain.QuestionSingleChoice, Options: []string{"Only one"}},
	}
	updated, err := svc.Update(context.Background(), event.ID.String(), input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	// Neither does an empty desired list while the event stays active, as
	// the stored question set is non-empty and untouched.
	input.Questions = nil
	_, err = svc.Update(context.Background(), event.ID.String(), input)
	require.NoError(t, err)
	require.Len(t, repo.events[event.ID].Questions, 1)
}

func TestUpdateEventAppliesDiffWithoutResponses(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeResponseRepo())

	input := validInput()
	input.Questions = []ports.QuestionInput{
		{Text: "Original question", Type: domain.QuestionShortText},
	}
	event, err := svc.Create(context.Background(), input, nil)
	require.NoError(t, err)

	input.Questions = []ports.QuestionInput{
		{Text: "Replacement question", Type: domain.QuestionLongText},
	}
	_, err = svc.Update(context.Background(), event.ID.String(), input)
	require.NoError(t, err)

	require.True(t, repo.updateDiff)
	assert.Len(t, repo.lastDiff.ToInsert, 1)
	assert.Len(t, repo.lastDiff.ToDelete, 1)
}

func TestDeleteEventWithResponses(t *testing.T) {
	repo := newFakeEventRepo()
	responseRepo := newFakeResponseRepo()
	svc := NewEventService(repo, responseRepo)

	event, err := svc.Create(context.Background(), validInput(), nil)
	require.NoError(t, err)

	responseRepo.countByEvent[event.ID] = 1
	err = svc.Delete(context.Background(), event.ID.String())
	assert.ErrorIs(t, err, domain.ErrEventHasResponses)

	responseRepo.countByEvent[event.ID] = 0
	err = svc.Delete(context.Background(), event.ID.String())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), event.ID.String())
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestGetEventInvalidID(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeResponseRepo())

	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidEventID)

	err = svc.Delete(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidEventID)
}
