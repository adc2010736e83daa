package authapi

import (
	"context"
	"sync"
	"testing"
	"time"
)

// stubStore is an in-memory UserStore for engine tests. The single mutex
// satisfies the per-email atomicity contract.
type stubStore struct {
	mu    sync.Mutex
	users map[string]UserRecord

	failGet    error
	failCreate error
	failSet    error
}

func newStubStore() *stubStore {
	return &stubStore{users: make(map[string]UserRecord)}
}

func (s *stubStore) GetUserByEmail(_ context.Context, email string) (UserRecord, error) {
	if s.failGet != nil {
		return UserRecord{}, s.failGet
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.users[email]
	if !ok {
		return UserRecord{}, ErrStoreUserNotFound
	}
	return record, nil
}

func (s *stubStore) CreateUser(_ context.Context, record UserRecord) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[record.Email]; ok {
		return ErrStoreDuplicateEmail
	}
	s.users[record.Email] = record
	return nil
}

func (s *stubStore) SetTOTPSecret(_ context.Context, email, secret string) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.users[email]
	if !ok {
		return ErrStoreUserNotFound
	}
	record.TOTPSecret = secret
	s.users[email] = record
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.SigningKey = []byte("0123456789abcdef0123456789abcdef")
	// Keep hashing cheap in tests.
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	return cfg
}

func newTestEngine(t *testing.T, store UserStore) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(testConfig()).
		WithUserStore(store).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

// currentCode computes the code an authenticator app would show right now
// for the stored base32 secret.
func currentCode(t *testing.T, secretBase32 string) string {
	t.Helper()

	secret, err := base32NoPad.DecodeString(secretBase32)
	if err != nil {
		t.Fatalf("decode secret: %v", err)
	}
	code, err := hotpCode(secret, time.Now().Unix()/30, 6, "SHA1")
	if err != nil {
		t.Fatalf("hotpCode: %v", err)
	}
	return code
}
