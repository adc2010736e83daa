package authapi

import (
	"context"
	"errors"
)

// Register creates a user record for the email and returns a bearer token
// for it. It fails with [ErrDuplicateEmail] when a record already exists;
// the store's per-email atomicity guarantees that concurrent registrations
// of one email produce exactly one winner, and the loser receives no token.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, email, pass string) (string, error) {
	if e == nil || e.passwordHash == nil || e.userStore == nil || e.jwtManager == nil {
		return "", ErrEngineNotReady
	}
	if email == "" {
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "empty_email",
			}
		})
		return "", ErrInvalidCredentials
	}

	hash, err := e.passwordHash.Hash(pass)
	if err != nil {
		e.emitAudit(ctx, auditEventRegisterFailure, false, email, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "hash_policy",
			}
		})
		return "", ErrInvalidCredentials
	}

	record := UserRecord{
		Email:        email,
		PasswordHash: hash,
	}
	if err := e.userStore.CreateUser(ctx, record); err != nil {
		if errors.Is(err, ErrStoreDuplicateEmail) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, email, ErrDuplicateEmail, nil)
			return "", ErrDuplicateEmail
		}
		e.emitAudit(ctx, auditEventRegisterFailure, false, email, ErrStoreUnavailable, nil)
		return "", ErrStoreUnavailable
	}

	token, err := e.jwtManager.Issue(email, e.config.JWT.AccessTTL)
	if err != nil {
		e.emitAudit(ctx, auditEventRegisterFailure, false, email, err, func() map[string]string {
			return map[string]string{
				"reason": "token_issue_failed",
			}
		})
		return "", err
	}

	e.metricInc(MetricRegisterSuccess)
	e.metricInc(MetricTokenIssued)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, email, nil, nil)
	return token, nil
}
