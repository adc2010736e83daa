package authapi

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrDuplicateEmail is an exported constant or variable used by the authentication engine.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTwoFactorRequired is an exported constant or variable used by the authentication engine.
	ErrTwoFactorRequired = errors.New("2fa code required")
	// ErrInvalidTwoFactorCode is an exported constant or variable used by the authentication engine.
	ErrInvalidTwoFactorCode = errors.New("invalid 2fa code")
	// ErrUserNotFound is an exported constant or variable used by the authentication engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken is an exported constant or variable used by the authentication engine.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTOTPUnavailable is an exported constant or variable used by the authentication engine.
	ErrTOTPUnavailable = errors.New("totp backend unavailable")
	// ErrStoreUnavailable is an exported constant or variable used by the authentication engine.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrStoreDuplicateEmail must be returned by [UserStore.CreateUser] when a
	// record already exists for the email. The engine maps it to
	// [ErrDuplicateEmail].
	ErrStoreDuplicateEmail = errors.New("store: duplicate email")
	// ErrStoreUserNotFound must be returned by [UserStore] lookups and updates
	// when no record exists for the email.
	ErrStoreUserNotFound = errors.New("store: user not found")
)
