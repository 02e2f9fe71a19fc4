//go:build integration_test

package test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/2beens/coachdesk/internal/health"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	t := s.T()

	report, err := s.api.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pass", report.Database.Status)
	assert.NotNil(t, report.Database.LatencyMs)
	assert.Equal(t, "pass", report.Service.Status)

	resp := s.doRequest(ctx, http.MethodGet, "/health/events?limit=5", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var eventsResp struct {
		Events []health.Event `json:"events"`
	}
	require.NoError(t, resp.decode(&eventsResp))
	require.NotEmpty(t, eventsResp.Events)
	assert.Equal(t, "integration", eventsResp.Events[0].Environment)
	assert.Equal(t, health.StatusPass, eventsResp.Events[0].Status)
}

func (s *IntegrationTestSuite) TestAdminReload() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	t := s.T()

	resp := s.doRequest(ctx, http.MethodPost, "/admin/db/reload", nil, map[string]string{"X-Admin-Token": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.doRequest(ctx, http.MethodPost, "/admin/db/reload", nil, map[string]string{"X-Admin-Token": s.adminToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Body), `"status":"pass"`)

	// repos pick up the new pool
	resp = s.doRequest(ctx, http.MethodGet, "/api/v1/profiles/me", nil, asActor(testAthleteID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	t := s.T()

	resp, err := s.httpClient.Get("http://" + serverHost + ":2199/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	metricsBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metricsBytes), "coachdesk_main_")
	assert.Contains(t, string(metricsBytes), "pgxpool_")
}
