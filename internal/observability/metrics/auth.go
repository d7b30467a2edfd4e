package metrics

import (
	apperrors "github.com/academica/progress-ui-api/internal/errors"
	"github.com/academica/progress-ui-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// LoginMetric captures a login attempt outcome.
type LoginMetric struct {
	Mode   string // "mock", "credentials", "google"
	Result string
	Err    error
}

// EmitLogin emits a login outcome counter.
func EmitLogin(sink statsd.Sink, in LoginMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"mode":   in.Mode,
		"result": in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if code := apperrors.GetCode(in.Err); code != "" {
			tags["error_class"] = string(code)
		}
	}
	sink.Count("auth.login", 1, tags)
}

// GuardMetric captures an access-guard decision on a protected route.
type GuardMetric struct {
	Route  string
	State  string // decision state string
	Reason string // failed check, empty when allowed
}

// EmitGuardDecision emits a guard decision counter. Allowed decisions
// are counted too so denial rates have a denominator.
func EmitGuardDecision(sink statsd.Sink, in GuardMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"route": in.Route,
		"state": in.State,
	}
	if in.Reason != "" {
		tags["reason"] = in.Reason
	}
	sink.Count("guard.decision", 1, tags)
}
