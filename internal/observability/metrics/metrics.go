// Package metrics records department API call outcomes and session events.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/target/deptdash/internal/observability/errors"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metric names understood by every Sink.
const (
	MetricAPICall      = "api.call"
	MetricAPIDuration  = "api.duration"
	MetricSessionEvent = "session.event"
)

// Session events.
const (
	SessionLogin        = "login"
	SessionLogout       = "logout"
	SessionInvalidated  = "invalidated"
	SessionTokenMissing = "token_missing"
)

// Sink describes the minimal interface required to emit metrics.
type Sink interface {
	Count(name string, value int64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}

// APICallMetric captures a single call to the remote department service.
type APICallMetric struct {
	Operation string
	// Status is the HTTP status received, 0 when no response arrived.
	Status   int
	Duration time.Duration
	Err      error
}

// EmitAPICall emits standardised API call metrics.
func EmitAPICall(sink Sink, in APICallMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}

	tags := map[string]string{
		"operation": in.Operation,
		"result":    result,
		"status":    statusTag(in.Status),
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count(MetricAPICall, 1, tags)

	if in.Duration > 0 {
		sink.Timing(MetricAPIDuration, in.Duration, map[string]string{
			"operation": in.Operation,
			"result":    result,
		})
	}
}

// EmitSessionEvent counts a session lifecycle event.
func EmitSessionEvent(sink Sink, event string) {
	if sink == nil || event == "" {
		return
	}
	sink.Count(MetricSessionEvent, 1, map[string]string{"event": event})
}

func statusTag(status int) string {
	if status <= 0 {
		return "none"
	}
	return strconv.Itoa(status)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Fanout forwards every sample to each non-nil sink. It returns nil when no
// sinks remain and the single sink when only one does.
func Fanout(sinks ...Sink) Sink { //nolint:ireturn // callers only need the Sink behaviour
	live := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return live
	}
}

type fanout []Sink

func (f fanout) Count(name string, value int64, tags map[string]string) {
	for _, s := range f {
		s.Count(name, value, CloneTags(tags))
	}
}

func (f fanout) Timing(name string, value time.Duration, tags map[string]string) {
	for _, s := range f {
		s.Timing(name, value, CloneTags(tags))
	}
}
