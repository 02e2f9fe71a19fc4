//go:build integration_test

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/coachdesk/internal/profiles"
	"github.com/2beens/coachdesk/internal/programs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProfiles() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	t := s.T()

	resp := s.doRequest(ctx, http.MethodGet, "/api/v1/profiles/me", nil, asActor(testAthleteID))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile profiles.ProfileDto `json:"profile"`
	}
	require.NoError(t, resp.decode(&body))
	assert.Equal(t, testAthleteID, body.Profile.AthleteID)
	assert.Equal(t, "Jordan Rivers", body.Profile.FullName)
	require.NotNil(t, body.Profile.Timezone)
	assert.Equal(t, "Europe/Berlin", *body.Profile.Timezone)

	resp = s.doRequest(ctx, http.MethodGet, "/api/v1/profiles/me", nil, asActor(otherAthleteID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "PROFILE_NOT_FOUND")

	resp = s.doRequest(ctx, http.MethodGet, "/api/v1/profiles/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestCurrentProgram() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	t := s.T()

	resp := s.doRequest(ctx, http.MethodGet, "/api/v1/programs/"+testAthleteID+"/current", nil, asActor(testAthleteID))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Program programs.Program `json:"program"`
	}
	require.NoError(t, resp.decode(&body))
	// the completed block is newer but not current
	assert.Equal(t, fixtureProgramID, body.Program.ID)
	assert.Equal(t, "Base building", body.Program.Title)
	assert.True(t, body.Program.ValidationFlag)
	require.Len(t, body.Program.Phases, 1)
	require.Len(t, body.Program.Phases[0].MicroCycles, 1)
	assert.Equal(t, fixtureMicroCycleID, body.Program.Phases[0].MicroCycles[0].ID)

	resp = s.doRequest(ctx, http.MethodGet, "/api/v1/programs/me/current", nil, asActor(otherAthleteID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "PROGRAM_NOT_FOUND")
}
