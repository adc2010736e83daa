package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	authapi "github.com/MrEthical07/authapi"
)

const defaultPrefix = "authapi"

// createUserLua atomically performs EXISTS→HSET for a new user record.
// KEYS[1] = record key
// ARGV[1] = email
// ARGV[2] = password hash
//
// Returns 1 when the record was created, 0 when the email already exists.
var createUserLua = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], 'email', ARGV[1], 'password_hash', ARGV[2], 'totp_secret', '')
return 1
`)

// setTOTPSecretLua atomically performs EXISTS→HSET for secret enrollment,
// overwriting any prior secret without resurrecting missing records.
// KEYS[1] = record key
// ARGV[1] = base32 secret
//
// Returns 1 when the secret was stored, 0 when no record exists.
var setTOTPSecretLua = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 0
end
redis.call('HSET', KEYS[1], 'totp_secret', ARGV[1])
return 1
`)

// Store is a Redis-backed [authapi.UserStore].
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// New creates a Store on the given client. An empty prefix defaults to
// "authapi".
func New(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{
		redis:  client,
		prefix: prefix,
	}
}

func (s *Store) key(email string) string {
	return s.prefix + ":user:" + email
}

// GetUserByEmail describes the getuserbyemail operation and its observable behavior.
//
// GetUserByEmail may return an error when input validation, dependency calls, or security checks fail.
// GetUserByEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (authapi.UserRecord, error) {
	fields, err := s.redis.HGetAll(ctx, s.key(email)).Result()
	if err != nil {
		return authapi.UserRecord{}, fmt.Errorf("redis get user: %w", err)
	}
	if len(fields) == 0 {
		return authapi.UserRecord{}, authapi.ErrStoreUserNotFound
	}

	return authapi.UserRecord{
		Email:        fields["email"],
		PasswordHash: fields["password_hash"],
		TOTPSecret:   fields["totp_secret"],
	}, nil
}

// CreateUser describes the createuser operation and its observable behavior.
//
// CreateUser may return an error when input validation, dependency calls, or security checks fail.
// CreateUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) CreateUser(ctx context.Context, record authapi.UserRecord) error {
	created, err := createUserLua.Run(ctx, s.redis,
		[]string{s.key(record.Email)},
		record.Email, record.PasswordHash,
	).Int()
	if err != nil {
		return fmt.Errorf("redis create user: %w", err)
	}
	if created == 0 {
		return authapi.ErrStoreDuplicateEmail
	}
	return nil
}

// SetTOTPSecret describes the settotpsecret operation and its observable behavior.
//
// SetTOTPSecret may return an error when input validation, dependency calls, or security checks fail.
// SetTOTPSecret does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) SetTOTPSecret(ctx context.Context, email, secret string) error {
	updated, err := setTOTPSecretLua.Run(ctx, s.redis,
		[]string{s.key(email)},
		secret,
	).Int()
	if err != nil {
		return fmt.Errorf("redis set totp secret: %w", err)
	}
	if updated == 0 {
		return authapi.ErrStoreUserNotFound
	}
	return nil
}
