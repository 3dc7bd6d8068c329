package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-scoring/internal/scoring"
)

func TestMetrics(t *testing.T) {
	m := New(func() int { return 3 })
	m.ScoresRecorded.Inc()
	m.Notable(scoring.CategoryBirdie)
	m.Notable(scoring.CategoryBirdie)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScoresRecorded))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NotableEvents.WithLabelValues("birdie")))

	m.SnapshotDone(2, nil)
	m.SnapshotDone(1, errors.New("timeout"))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StaleAggregates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotRuns.WithLabelValues("error")))

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "golf_scores_recorded_total 1")
	assert.Contains(t, string(body), `golf_notable_events_total{category="birdie"} 2`)
	assert.Contains(t, string(body), "golf_websocket_clients 3")
}
