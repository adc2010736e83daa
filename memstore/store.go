// Package memstore provides a mutex-guarded in-memory implementation of the
// authapi.UserStore contract, intended for tests and local development. The
// single lock trivially satisfies the per-email atomicity requirement.
package memstore

import (
	"context"
	"sync"

	authapi "github.com/MrEthical07/authapi"
)

// Store is an in-memory [authapi.UserStore].
type Store struct {
	mu    sync.RWMutex
	users map[string]authapi.UserRecord
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users: make(map[string]authapi.UserRecord),
	}
}

// GetUserByEmail describes the getuserbyemail operation and its observable behavior.
//
// GetUserByEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) GetUserByEmail(_ context.Context, email string) (authapi.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.users[email]
	if !ok {
		return authapi.UserRecord{}, authapi.ErrStoreUserNotFound
	}
	return record, nil
}

// CreateUser describes the createuser operation and its observable behavior.
//
// CreateUser may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) CreateUser(_ context.Context, record authapi.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[record.Email]; ok {
		return authapi.ErrStoreDuplicateEmail
	}
	s.users[record.Email] = record
	return nil
}

// SetTOTPSecret describes the settotpsecret operation and its observable behavior.
//
// SetTOTPSecret may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) SetTOTPSecret(_ context.Context, email, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.users[email]
	if !ok {
		return authapi.ErrStoreUserNotFound
	}
	record.TOTPSecret = secret
	s.users[email] = record
	return nil
}
