package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.HNAllocated()
	m.HNAllocated()
	m.HNConflict()
	m.Diagnosis("ok")
	m.Diagnosis("unavailable")
	m.Diagnosis("unavailable")
	m.Lookup(3, "found")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.hnAllocations))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.hnConflicts))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.diagnoses.WithLabelValues("unavailable")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.lookups.WithLabelValues("found")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.HNAllocated()
	m.HNGap()
	m.Diagnosis("ok")
	m.Report("rendered")
	m.SessionsActive(3)
	assert.Nil(t, m.Registry())
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordSaved()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "petcare_illness_records_saved_total 1")
}
