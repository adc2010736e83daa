package authapi

import (
	"context"

	internalmetrics "github.com/MrEthical07/authapi/internal/metrics"
)

// UserRecord is the persisted account record exchanged with a [UserStore].
// Email is the unique key and is immutable after creation. PasswordHash is
// the opaque digest produced by the password package and must never be
// logged. TOTPSecret is a base32 secret; an empty string means the second
// factor is disabled, a non-empty one gates every login with a code check.
type UserRecord struct {
	Email        string
	PasswordHash string
	TOTPSecret   string
}

// UserStore is the interface that callers must implement to integrate
// authapi with their user database. Implementations own durability and
// per-email atomicity: concurrent CreateUser calls for the same email must
// yield exactly one winner, and SetTOTPSecret must not race a concurrent
// write to the same record.
//
// All methods return [ErrStoreUserNotFound] or [ErrStoreDuplicateEmail] for
// the conditions those sentinels name; any other error is treated as a
// backend failure.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
	CreateUser(ctx context.Context, record UserRecord) error
	SetTOTPSecret(ctx context.Context, email, secret string) error
}

// TOTPProvision holds the base32 TOTP secret and otpauth:// URI returned by
// [Engine.EnableTwoFactor]. The URI embeds the account label, issuer, and
// secret for authenticator-app enrollment.
type TOTPProvision struct {
	Secret string
	URI    string
}

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricRegisterSuccess is an exported constant or variable used by the authentication engine.
	MetricRegisterSuccess = MetricID(internalmetrics.MetricRegisterSuccess)
	// MetricRegisterDuplicate is an exported constant or variable used by the authentication engine.
	MetricRegisterDuplicate = MetricID(internalmetrics.MetricRegisterDuplicate)
	// MetricLoginSuccess is an exported constant or variable used by the authentication engine.
	MetricLoginSuccess = MetricID(internalmetrics.MetricLoginSuccess)
	// MetricLoginFailure is an exported constant or variable used by the authentication engine.
	MetricLoginFailure = MetricID(internalmetrics.MetricLoginFailure)
	// MetricTwoFactorRequired is an exported constant or variable used by the authentication engine.
	MetricTwoFactorRequired = MetricID(internalmetrics.MetricTwoFactorRequired)
	// MetricTwoFactorFailure is an exported constant or variable used by the authentication engine.
	MetricTwoFactorFailure = MetricID(internalmetrics.MetricTwoFactorFailure)
	// MetricTwoFactorSuccess is an exported constant or variable used by the authentication engine.
	MetricTwoFactorSuccess = MetricID(internalmetrics.MetricTwoFactorSuccess)
	// MetricTwoFactorEnabled is an exported constant or variable used by the authentication engine.
	MetricTwoFactorEnabled = MetricID(internalmetrics.MetricTwoFactorEnabled)
	// MetricTokenIssued is an exported constant or variable used by the authentication engine.
	MetricTokenIssued = MetricID(internalmetrics.MetricTokenIssued)
	// MetricTokenRejected is an exported constant or variable used by the authentication engine.
	MetricTokenRejected = MetricID(internalmetrics.MetricTokenRejected)
)

// Metrics holds atomic counters for engine operations.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{Enabled: cfg.Enabled})
}
