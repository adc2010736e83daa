package authapi

import (
	"context"
	"errors"
	"time"
)

// Login authenticates a user and returns a bearer token.
//
// The credential check strictly precedes the second-factor check. When the
// record has no TOTP secret enrolled, a supplied code is silently ignored
// rather than rejected. When a secret is enrolled,
// an empty code fails with [ErrTwoFactorRequired] and a rejected code with
// [ErrInvalidTwoFactorCode]. A missing record and a password mismatch are
// indistinguishable: both fail with [ErrInvalidCredentials].
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, email, pass, code string) (string, error) {
	if e == nil || e.passwordHash == nil || e.userStore == nil || e.jwtManager == nil || e.totp == nil {
		return "", ErrEngineNotReady
	}

	user, err := e.userStore.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrStoreUserNotFound) {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, email, ErrInvalidCredentials, func() map[string]string {
				return map[string]string{
					"reason": "user_not_found",
				}
			})
			return "", ErrInvalidCredentials
		}
		e.emitAudit(ctx, auditEventLoginFailure, false, email, ErrStoreUnavailable, nil)
		return "", ErrStoreUnavailable
	}

	ok, err := e.passwordHash.Verify(pass, user.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "invalid_password",
			}
		})
		return "", ErrInvalidCredentials
	}

	if user.TOTPSecret != "" {
		if err := e.verifySecondFactor(ctx, user, code); err != nil {
			return "", err
		}
	}

	token, err := e.jwtManager.Issue(user.Email, e.config.JWT.AccessTTL)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, err, func() map[string]string {
			return map[string]string{
				"reason": "token_issue_failed",
			}
		})
		return "", err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricTokenIssued)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.Email, nil, nil)
	return token, nil
}

func (e *Engine) verifySecondFactor(ctx context.Context, user UserRecord, code string) error {
	if code == "" {
		e.metricInc(MetricTwoFactorRequired)
		e.emitAudit(ctx, auditEventTwoFactorRequired, false, user.Email, ErrTwoFactorRequired, nil)
		return ErrTwoFactorRequired
	}

	secret, err := e.totp.DecodeSecret(user.TOTPSecret)
	if err != nil || len(secret) == 0 {
		e.metricInc(MetricTwoFactorFailure)
		e.emitAudit(ctx, auditEventTwoFactorFailure, false, user.Email, ErrTOTPUnavailable, func() map[string]string {
			return map[string]string{
				"reason": "secret_decode_failed",
			}
		})
		return ErrTOTPUnavailable
	}

	ok, err := e.totp.VerifyCode(secret, code, time.Now())
	if err != nil {
		e.metricInc(MetricTwoFactorFailure)
		e.emitAudit(ctx, auditEventTwoFactorFailure, false, user.Email, ErrTOTPUnavailable, nil)
		return ErrTOTPUnavailable
	}
	if !ok {
		e.metricInc(MetricTwoFactorFailure)
		e.emitAudit(ctx, auditEventTwoFactorFailure, false, user.Email, ErrInvalidTwoFactorCode, nil)
		return ErrInvalidTwoFactorCode
	}

	e.metricInc(MetricTwoFactorSuccess)
	return nil
}
