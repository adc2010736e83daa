package authapi

import (
	"github.com/MrEthical07/authapi/jwt"
	"github.com/MrEthical07/authapi/password"
)

// Engine defines a public type used by authapi APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	passwordHash *password.Argon2
	totp         *totpManager
	jwtManager   *jwt.Manager
	userStore    UserStore
	audit        *auditDispatcher
	metrics      *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// VerifyToken validates a bearer token previously issued by Register or
// Login and returns its subject (the user's email). It fails with
// [ErrInvalidToken] when the signature check fails, the token is malformed,
// or the current time exceeds the encoded expiry.
func (e *Engine) VerifyToken(token string) (string, error) {
	if e == nil || e.jwtManager == nil {
		return "", ErrEngineNotReady
	}

	subject, err := e.jwtManager.Verify(token)
	if err != nil {
		e.metricInc(MetricTokenRejected)
		return "", ErrInvalidToken
	}
	return subject, nil
}
