package authapi

import (
	"context"
	"errors"
)

// EnableTwoFactor generates a fresh TOTP secret for the user, persists it,
// and returns the secret together with its otpauth:// provisioning URI.
//
// Re-enrollment silently replaces any prior secret; there is no
// confirmation step, so the second factor gates login from the moment the
// secret is stored. Fails with [ErrUserNotFound] when no record exists.
//
// EnableTwoFactor may return an error when input validation, dependency calls, or security checks fail.
// EnableTwoFactor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) EnableTwoFactor(ctx context.Context, email string) (*TOTPProvision, error) {
	if e == nil || e.totp == nil || e.userStore == nil {
		return nil, ErrEngineNotReady
	}
	if email == "" {
		return nil, ErrUserNotFound
	}

	user, err := e.userStore.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrStoreUserNotFound) {
			e.emitAudit(ctx, auditEventTwoFactorFailed, false, email, ErrUserNotFound, nil)
			return nil, ErrUserNotFound
		}
		e.emitAudit(ctx, auditEventTwoFactorFailed, false, email, ErrStoreUnavailable, nil)
		return nil, ErrStoreUnavailable
	}

	_, secretBase32, err := e.totp.GenerateSecret()
	if err != nil {
		e.emitAudit(ctx, auditEventTwoFactorFailed, false, user.Email, ErrTOTPUnavailable, nil)
		return nil, ErrTOTPUnavailable
	}

	if err := e.userStore.SetTOTPSecret(ctx, user.Email, secretBase32); err != nil {
		if errors.Is(err, ErrStoreUserNotFound) {
			e.emitAudit(ctx, auditEventTwoFactorFailed, false, user.Email, ErrUserNotFound, nil)
			return nil, ErrUserNotFound
		}
		e.emitAudit(ctx, auditEventTwoFactorFailed, false, user.Email, ErrStoreUnavailable, nil)
		return nil, ErrStoreUnavailable
	}

	e.metricInc(MetricTwoFactorEnabled)
	e.emitAudit(ctx, auditEventTwoFactorEnabled, true, user.Email, nil, nil)

	return &TOTPProvision{
		Secret: secretBase32,
		URI:    e.totp.ProvisioningURI(secretBase32, user.Email),
	}, nil
}
