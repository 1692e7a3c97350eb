package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/eventos/internal/core/domain"
)

func createActiveEvent(t *testing.T, app *TestApp, token string) domain.Event {
	t.Helper()

	payload := eventPayload("Response Test Event",
		map[string]any{"text": "Attending?", "type": "single_choice", "required": true, "options": []string{"Yes", "No"}},
		map[string]any{"text": "Dishes", "type": "multiple_choice", "options": []string{"Salad", "Bread", "Cake"}},
		map[string]any{"text": "Comments", "type": "long_text"},
	)
	resp := app.doJSON(t, "POST", "/api/events", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[domain.Event](t, resp)
}

func TestResponseFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, organizerToken := createUserAndToken(t, app.DB, domain.RoleOrganizer)
	participantID, participantToken := createUserAndToken(t, app.DB, domain.RoleParticipant)

	event := createActiveEvent(t, app, organizerToken)
	responsesPath := fmt.Sprintf("/api/events/%s/responses", event.ID)

	// Step 1: Submit as participant with a multi-select answer
	resp := app.doJSON(t, "POST", responsesPath, participantToken, map[string]any{
		"answers": map[string]any{
			event.Questions[0].ID.String(): "Yes",
			event.Questions[1].ID.String(): []string{"Salad", "Cake"},
			event.Questions[2].ID.String(): "",
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	submitted := decodeBody[map[string]uuid.UUID](t, resp)
	responseID := submitted["response_id"]
	assert.NotEqual(t, uuid.Nil, responseID)

	// Multi-select answers are stored comma-joined, empty ones not at all
	var value string
	err := app.DB.QueryRow(
		"SELECT value FROM event_answers WHERE response_id = $1 AND question_id = $2",
		responseID, event.Questions[1].ID,
	).Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, "Salad, Cake", value)

	var answerCount int
	err = app.DB.QueryRow("SELECT COUNT(*) FROM event_answers WHERE response_id = $1", responseID).Scan(&answerCount)
	require.NoError(t, err)
	assert.Equal(t, 2, answerCount)

	// Step 2: Organizer lists responses; submitter name is resolved
	resp = app.doJSON(t, "GET", responsesPath, organizerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	responses := decodeBody[[]*domain.Response](t, resp)
	require.Len(t, responses, 1)
	assert.Equal(t, responseID, responses[0].ID)
	require.NotNil(t, responses[0].SubmittedBy)
	assert.Equal(t, participantID, *responses[0].SubmittedBy)
	assert.NotEmpty(t, responses[0].SubmitterName)

	// Participants cannot list responses
	resp = app.doJSON(t, "GET", responsesPath, participantToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Step 3: Organizer deletes the response
	resp = app.doJSON(t, "DELETE", responsesPath, organizerToken, map[string]any{
		"ids": []uuid.UUID{responseID},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = app.doJSON(t, "GET", responsesPath, organizerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	responses = decodeBody[[]*domain.Response](t, resp)
	assert.Empty(t, responses)
}

func TestPublicResponseSubmission(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, organizerToken := createUserAndToken(t, app.DB, domain.RoleOrganizer)
	event := createActiveEvent(t, app, organizerToken)

	// The public preview works without authentication
	resp := app.doJSON(t, "GET", "/public/events/"+event.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	preview := decodeBody[domain.Event](t, resp)
	assert.Equal(t, event.ID, preview.ID)

	// So does submitting through the public link
	resp = app.doJSON(t, "POST", fmt.Sprintf("/public/events/%s/responses", event.ID), "", map[string]any{
		"answers": map[string]any{event.Questions[0].ID.String(): "No"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Anonymous submissions have no submitter
	var submittedBy *uuid.UUID
	err := app.DB.QueryRow("SELECT submitted_by FROM event_responses WHERE event_id = $1", event.ID).Scan(&submittedBy)
	require.NoError(t, err)
	assert.Nil(t, submittedBy)
}

func TestEmptyResponseStillCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, organizerToken := createUserAndToken(t, app.DB, domain.RoleOrganizer)
	event := createActiveEvent(t, app, organizerToken)

	// A submission with no answers still produces a response row
	resp := app.doJSON(t, "POST", fmt.Sprintf("/public/events/%s/responses", event.ID), "", map[string]any{
		"answers": map[string]any{},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var headerCount, answerCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM event_responses WHERE event_id = $1", event.ID).Scan(&headerCount))
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM event_answers").Scan(&answerCount))
	assert.Equal(t, 1, headerCount)
	assert.Equal(t, 0, answerCount)

	// The event now reports a response count
	resp = app.doJSON(t, "GET", "/api/events/"+event.ID.String(), organizerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[domain.Event](t, resp)
	assert.Equal(t, int64(1), fetched.ResponseCount)
}

func TestSubmitToUnknownEvent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.doJSON(t, "POST", fmt.Sprintf("/public/events/%s/responses", uuid.New()), "", map[string]any{
		"answers": map[string]any{},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
