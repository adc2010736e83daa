package authapi

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEngineEmitsAuditEvents(t *testing.T) {
	sink := NewChannelSink(16)
	engine, err := New().
		WithConfig(testConfig()).
		WithUserStore(newStubStore()).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx := WithClientIP(context.Background(), "203.0.113.7")
	ctx = WithUserAgent(ctx, "test-agent")
	if _, err := engine.Register(ctx, "alice@example.com", "pw1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Close drains the dispatcher into the sink.
	engine.Close()

	select {
	case event := <-sink.Events():
		if event.EventType != "register_success" {
			t.Fatalf("expected register_success event, got %q", event.EventType)
		}
		if !event.Success {
			t.Fatal("expected a success event")
		}
		if event.Email != "alice@example.com" {
			t.Fatalf("unexpected email %q", event.Email)
		}
		if event.IP != "203.0.113.7" || event.UserAgent != "test-agent" {
			t.Fatalf("expected context metadata, got ip=%q ua=%q", event.IP, event.UserAgent)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestAuditFailureEventCarriesErrorCode(t *testing.T) {
	sink := NewChannelSink(16)
	engine, err := New().
		WithConfig(testConfig()).
		WithUserStore(newStubStore()).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx := context.Background()
	if _, err := engine.Login(ctx, "nobody@example.com", "pw1", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	engine.Close()

	select {
	case event := <-sink.Events():
		if event.EventType != "login_failure" {
			t.Fatalf("expected login_failure event, got %q", event.EventType)
		}
		if event.Success {
			t.Fatal("expected a failure event")
		}
		if event.Error != string(auditErrInvalidCredentials) {
			t.Fatalf("expected invalid_credentials error code, got %q", event.Error)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: "login_success",
		Email:     "alice@example.com",
		Success:   true,
	})
	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: "login_failure",
		Email:     "alice@example.com",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"event_type":"login_success"`) {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestAuditEventsNeverContainSecrets(t *testing.T) {
	var buf bytes.Buffer
	engine, err := New().
		WithConfig(testConfig()).
		WithUserStore(newStubStore()).
		WithAuditSink(NewJSONWriterSink(&buf)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx := context.Background()
	if _, err := engine.Register(ctx, "alice@example.com", "hunter2-secret-pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	provision, err := engine.EnableTwoFactor(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("EnableTwoFactor failed: %v", err)
	}
	engine.Close()

	out := buf.String()
	if strings.Contains(out, "hunter2-secret-pw") {
		t.Fatal("audit output leaked a password")
	}
	if strings.Contains(out, provision.Secret) {
		t.Fatal("audit output leaked a TOTP secret")
	}
}

func TestDispatcherDropsWhenBufferFull(t *testing.T) {
	blocked := make(chan struct{})
	sink := blockingSink{release: blocked}

	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)
	t.Cleanup(func() {
		close(blocked)
		d.Close()
	})

	// Saturate the worker and the one-slot buffer, then overflow.
	for i := 0; i < 8; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "login_failure"})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}
}

type blockingSink struct {
	release chan struct{}
}

func (s blockingSink) Emit(_ context.Context, _ AuditEvent) {
	<-s.release
}
