//go:build integration_test

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/coachdesk/internal/programs"
	"github.com/2beens/coachdesk/internal/sessions"
	"github.com/2beens/coachdesk/pkg/client"
	"github.com/2beens/coachdesk/pkg/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowerBodyEditor(date string) *editor.Editor {
	ed := editor.New(nil)
	ed.UpdateField(editor.DraftPatch{
		Name:         editor.Set("Lower body"),
		Date:         editor.Set(date),
		MicroCycleID: editor.Set(editor.Ptr(fixtureMicroCycleID)),
	})

	squat := ed.Draft().Exercises[0].ID
	ed.UpdateExercise(squat, editor.ExercisePatch{
		Name: editor.Set("Back squat"),
		Sets: editor.Set(editor.Ptr(2)),
	})
	ed.UpdateSet(squat, 0, editor.Ptr(5), editor.Ptr(100.0))
	ed.UpdateSet(squat, 1, editor.Ptr(5), editor.Ptr(110.0))

	ed.AddExercise(editor.ID{})
	bike := ed.Draft().Exercises[1].ID
	ed.UpdateExercise(bike, editor.ExercisePatch{
		Name:            editor.Set("Bike"),
		DurationSeconds: editor.Set(editor.Ptr(600)),
	})
	return ed
}

func (s *IntegrationTestSuite) TestSessionsLifecycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	today := time.Now().UTC().Format(time.DateOnly)
	ed := lowerBodyEditor(today)
	require.True(t, ed.IsValid())

	saved, err := s.api.SaveSession(ctx, ed.Draft())
	require.NoError(t, err)
	sessionID, durable := saved.ID.Durable()
	require.True(t, durable)
	require.NotNil(t, saved.SessionCode)
	assert.Equal(t, sessionID, *saved.SessionCode)
	require.Len(t, saved.Exercises, 2)
	for _, e := range saved.Exercises {
		assert.True(t, e.ID.IsDurable())
		assert.True(t, e.SectionID.IsDurable())
	}

	ed.MarkSaved(*saved)
	assert.False(t, ed.IsDirty())

	fetched, err := s.api.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Lower body", fetched.Name)
	assert.Equal(t, today, fetched.Date)
	require.Len(t, fetched.Exercises[0].LoadPerSet, 2)
	assert.Equal(t, 110.0, *fetched.Exercises[0].LoadPerSet[1])

	// replace: drop the bike, the squat keeps its id
	squatID := saved.Exercises[0].ID
	require.True(t, ed.RemoveExercise(saved.Exercises[1].ID))
	updated, err := s.api.SaveSession(ctx, ed.Draft())
	require.NoError(t, err)
	require.Len(t, updated.Exercises, 1)
	assert.Equal(t, squatID, updated.Exercises[0].ID)

	completed, err := s.api.UpdateStatus(ctx, sessionID, editor.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, editor.StatusCompleted, completed.Status)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(time.DateOnly)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(time.DateOnly)
	list, err := s.api.ListSessions(ctx, yesterday, tomorrow, 10)
	require.NoError(t, err)
	var listed bool
	for _, l := range list {
		listed = listed || l.ID == saved.ID
	}
	assert.True(t, listed)

	// sessions of one athlete are invisible to the others
	other := client.New(serverEndpoint, otherAthleteID, client.WithHTTPClient(s.httpClient))
	_, err = other.GetSession(ctx, sessionID)
	assert.True(t, client.IsNotFound(err))

	resp := s.doRequest(ctx, http.MethodGet, "/api/v1/metrics/completion?weeks=1", nil, asActor(testAthleteID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var metricsResp struct {
		Metrics sessions.MetricSnapshot `json:"metrics"`
	}
	require.NoError(t, resp.decode(&metricsResp))
	require.Len(t, metricsResp.Metrics.Samples, 1)
	assert.GreaterOrEqual(t, metricsResp.Metrics.Samples[0].SessionsCompleted, 1)
	assert.GreaterOrEqual(t, metricsResp.Metrics.Volume, 1050.0)

	// the program lists the session once its cache entry expired
	assert.Eventually(t, func() bool {
		resp := s.doRequest(ctx, http.MethodGet, "/api/v1/programs/me/current", nil, asActor(testAthleteID))
		var body struct {
			Program programs.Program `json:"program"`
		}
		if resp.StatusCode != http.StatusOK || resp.decode(&body) != nil {
			return false
		}
		for _, ps := range body.Program.Sessions {
			if ps.ID == sessionID {
				return ps.Status == "completed"
			}
		}
		return false
	}, 5*time.Second, 250*time.Millisecond)
}

func (s *IntegrationTestSuite) TestSessions_Rejections() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	t := s.T()

	// blank exercise only
	resp := s.doRequest(ctx, http.MethodPost, "/api/v1/sessions", editor.New(nil).Draft(), asActor(testAthleteID))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "INVALID_SESSION")
	assert.Contains(t, string(resp.Body), `"details"`)

	// taken session code
	first := lowerBodyEditor("2024-04-01")
	first.UpdateField(editor.DraftPatch{SessionCode: editor.Set(editor.Ptr("LB-2024-04-01"))})
	_, err := s.api.SaveSession(ctx, first.Draft())
	require.NoError(t, err)

	second := lowerBodyEditor("2024-04-02")
	second.UpdateField(editor.DraftPatch{SessionCode: editor.Set(editor.Ptr("LB-2024-04-01"))})
	_, err = s.api.SaveSession(ctx, second.Draft())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "SESSION_CODE_TAKEN", apiErr.Code)

	// unknown micro cycle
	orphan := lowerBodyEditor("2024-04-03")
	orphan.UpdateField(editor.DraftPatch{MicroCycleID: editor.Set(editor.Ptr("5a0c1d8e-0000-4000-8000-000000000000"))})
	_, err = s.api.SaveSession(ctx, orphan.Draft())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "MICRO_CYCLE_NOT_FOUND", apiErr.Code)

	// exercise id owned by another session
	owner, err := s.api.SaveSession(ctx, lowerBodyEditor("2024-04-04").Draft())
	require.NoError(t, err)
	other, err := s.api.SaveSession(ctx, lowerBodyEditor("2024-04-05").Draft())
	require.NoError(t, err)
	other.Exercises[0].ID = owner.Exercises[0].ID
	_, err = s.api.SaveSession(ctx, *other)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID_SESSION", apiErr.Code)

	stored, err := s.api.GetSession(ctx, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, owner.Exercises[0].ID, stored.Exercises[0].ID)

	// unknown session
	_, err = s.api.GetSession(ctx, "5a0c1d8e-0000-4000-8000-000000000001")
	assert.True(t, client.IsNotFound(err))
}
