package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/deptdash/internal/errors"
)

type recordedMetric struct {
	name  string
	value int64
	dur   time.Duration
	tags  map[string]string
}

type fakeSink struct {
	counts  []recordedMetric
	timings []recordedMetric
}

func (f *fakeSink) Count(name string, value int64, tags map[string]string) {
	f.counts = append(f.counts, recordedMetric{name: name, value: value, tags: tags})
}

func (f *fakeSink) Timing(name string, value time.Duration, tags map[string]string) {
	f.timings = append(f.timings, recordedMetric{name: name, dur: value, tags: tags})
}

func TestEmitAPICall_Success(t *testing.T) {
	sink := &fakeSink{}

	EmitAPICall(sink, APICallMetric{Operation: "list_departments", Status: 200, Duration: 15 * time.Millisecond})

	require.Len(t, sink.counts, 1)
	assert.Equal(t, MetricAPICall, sink.counts[0].name)
	assert.Equal(t, map[string]string{
		"operation": "list_departments",
		"result":    ResultSuccess,
		"status":    "200",
	}, sink.counts[0].tags)

	require.Len(t, sink.timings, 1)
	assert.Equal(t, MetricAPIDuration, sink.timings[0].name)
	assert.Equal(t, 15*time.Millisecond, sink.timings[0].dur)
}

func TestEmitAPICall_ErrorTagsClass(t *testing.T) {
	sink := &fakeSink{}

	EmitAPICall(sink, APICallMetric{Operation: "add_department", Err: apperrors.Network(errors.New("refused"))})

	require.Len(t, sink.counts, 1)
	tags := sink.counts[0].tags
	assert.Equal(t, ResultError, tags["result"])
	assert.Equal(t, "none", tags["status"])
	assert.Equal(t, "network_error", tags["error_class"])
	assert.Empty(t, sink.timings, "zero duration should not emit a timing")
}

func TestEmit_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitAPICall(nil, APICallMetric{Operation: "login"})
		EmitSessionEvent(nil, SessionLogin)
	})
}

func TestEmitSessionEvent(t *testing.T) {
	sink := &fakeSink{}
	EmitSessionEvent(sink, SessionInvalidated)
	EmitSessionEvent(sink, "")

	require.Len(t, sink.counts, 1)
	assert.Equal(t, map[string]string{"event": SessionInvalidated}, sink.counts[0].tags)
}

func TestCollector_RecordsAPICalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	EmitAPICall(c, APICallMetric{Operation: "get_department", Status: 404, Err: apperrors.Server(404, "Department not found")})
	EmitAPICall(c, APICallMetric{Operation: "get_department", Status: 404, Err: apperrors.Server(404, "Department not found")})

	mf := gatherFamily(t, reg, "deptdash_api_calls_total")
	require.Len(t, mf.GetMetric(), 1)
	m := mf.GetMetric()[0]
	assert.InDelta(t, 2.0, m.GetCounter().GetValue(), 0.0001)
	assert.Equal(t, map[string]string{
		"operation":   "get_department",
		"result":      ResultError,
		"status":      "404",
		"error_class": "server_error",
	}, labelMap(m))
}

func TestCollector_IgnoresUnknownNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.Count("unknown.metric", 1, nil)
	c.Timing("unknown.timing", time.Second, nil)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		assert.Empty(t, mf.GetMetric(), "metric %s should have no samples", mf.GetName())
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	EmitSessionEvent(c, SessionLogin)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := rec.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "deptdash_session_events_total"))
}

func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %s not found", name)
	return nil
}

func labelMap(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}

func TestFanout(t *testing.T) {
	assert.Nil(t, Fanout())
	assert.Nil(t, Fanout(nil, nil))

	single := &fakeSink{}
	assert.Same(t, single, Fanout(nil, single))

	a, b := &fakeSink{}, &fakeSink{}
	sink := Fanout(a, nil, b)
	EmitAPICall(sink, APICallMetric{Operation: "get", Status: 404, Duration: time.Millisecond, Err: apperrors.Server(404, "missing")})

	require.Len(t, a.counts, 1)
	require.Len(t, b.counts, 1)
	require.Len(t, a.timings, 1)
	require.Len(t, b.timings, 1)
	assert.Equal(t, a.counts[0].tags, b.counts[0].tags)

	// Each sink gets its own tag map.
	a.counts[0].tags["operation"] = "changed"
	assert.Equal(t, "get", b.counts[0].tags["operation"])
}
