package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	authapi "github.com/MrEthical07/authapi"
)

func TestCreateGetRoundtrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	record := authapi.UserRecord{Email: "alice@example.com", PasswordHash: "h"}
	if err := store.CreateUser(ctx, record); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got != record {
		t.Fatalf("record mismatch: got %+v", got)
	}
}

func TestDuplicateCreate(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.CreateUser(ctx, authapi.UserRecord{Email: "alice@example.com"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.CreateUser(ctx, authapi.UserRecord{Email: "alice@example.com"}); !errors.Is(err, authapi.ErrStoreDuplicateEmail) {
		t.Fatalf("expected ErrStoreDuplicateEmail, got %v", err)
	}
}

func TestGetUnknownUser(t *testing.T) {
	store := New()

	if _, err := store.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, authapi.ErrStoreUserNotFound) {
		t.Fatalf("expected ErrStoreUserNotFound, got %v", err)
	}
}

func TestSetTOTPSecret(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.SetTOTPSecret(ctx, "nobody@example.com", "S"); !errors.Is(err, authapi.ErrStoreUserNotFound) {
		t.Fatalf("expected ErrStoreUserNotFound, got %v", err)
	}

	if err := store.CreateUser(ctx, authapi.UserRecord{Email: "alice@example.com"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.SetTOTPSecret(ctx, "alice@example.com", "SECRET"); err != nil {
		t.Fatalf("SetTOTPSecret failed: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.TOTPSecret != "SECRET" {
		t.Fatalf("expected stored secret, got %q", got.TOTPSecret)
	}
}

func TestConcurrentCreateOneWinner(t *testing.T) {
	store := New()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.CreateUser(ctx, authapi.UserRecord{Email: "alice@example.com"})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}
