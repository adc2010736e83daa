package metrics

import (
	"sync"
	"testing"
)

func TestIncAndGet(t *testing.T) {
	m := New(Config{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricTokenIssued)

	if got := m.Get(MetricLoginSuccess); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := m.Get(MetricTokenIssued); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := m.Get(MetricLoginFailure); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDisabledMetricsAreNoOps(t *testing.T) {
	m := New(Config{Enabled: false})

	m.Inc(MetricLoginSuccess)
	if got := m.Get(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected disabled metrics to stay zero, got %d", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot, got %v", snap.Counters)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLoginSuccess)
	if got := m.Get(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0 from nil metrics, got %d", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot from nil metrics, got %v", snap.Counters)
	}
}

func TestSnapshotOmitsZeroCounters(t *testing.T) {
	m := New(Config{Enabled: true})
	m.Inc(MetricRegisterSuccess)

	snap := m.Snapshot()
	if len(snap.Counters) != 1 {
		t.Fatalf("expected one counter, got %v", snap.Counters)
	}
	if snap.Counters[MetricRegisterSuccess] != 1 {
		t.Fatalf("unexpected snapshot %v", snap.Counters)
	}
}

func TestConcurrentIncrements(t *testing.T) {
	m := New(Config{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricLoginSuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Get(MetricLoginSuccess); got != workers*perWorker {
		t.Fatalf("expected %d, got %d", workers*perWorker, got)
	}
}

func TestOutOfRangeIDIgnored(t *testing.T) {
	m := New(Config{Enabled: true})

	m.Inc(MetricIDCount)
	m.Inc(MetricIDCount + 10)
	if got := m.Get(MetricIDCount); got != 0 {
		t.Fatalf("expected out-of-range id ignored, got %d", got)
	}
}
