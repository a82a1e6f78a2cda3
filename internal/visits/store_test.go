package visits

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func openTestStore(t *testing.T, clock *testClock) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "visits.db"), WithSalt("salt"), WithClock(clock.now))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTestStore(t, &testClock{t: time.Now()})

	h := s.HashIP("203.0.113.7")
	if len(h) != 16 {
		t.Errorf("expected 16 hex chars, got %q", h)
	}
	if h != s.HashIP("203.0.113.7") {
		t.Error("hash is not stable for the same ip")
	}
	if h == s.HashIP("203.0.113.8") {
		t.Error("different ips share a hash")
	}

	other, err := Open(filepath.Join(t.TempDir(), "other.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()
	if other.HashIP("203.0.113.7") == h {
		t.Error("random salt produced the fixed-salt hash")
	}
}

func TestRecordAndStats(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{t: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)}
	s := openTestStore(t, clock)

	record := func(at time.Time, ip, path string) {
		t.Helper()
		clock.t = at
		if err := s.Record(ctx, ip, "test-agent", path); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	now := clock.t
	record(now.Add(-10*24*time.Hour), "1.1.1.1", "/")
	record(now.Add(-3*24*time.Hour), "2.2.2.2", "/projects/lobster")
	record(now.Add(-2*time.Hour), "1.1.1.1", "/projects/lobster")
	record(now.Add(-time.Hour), "3.3.3.3", "/projects/lobster")
	record(now, "1.1.1.1", "/")
	clock.t = now

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalVisitors != 5 {
		t.Errorf("expected 5 visits, got %d", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 3 {
		t.Errorf("expected 3 unique visitors, got %d", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 3 {
		t.Errorf("expected 3 visits today, got %d", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 4 {
		t.Errorf("expected 4 visits this week, got %d", stats.VisitorsThisWeek)
	}

	if len(stats.TopPages) != 2 || stats.TopPages[0].Path != "/projects/lobster" ||
		stats.TopPages[0].Views != 3 || stats.TopPages[0].Unique != 3 {
		t.Errorf("unexpected top pages %+v", stats.TopPages)
	}

	if len(stats.RecentVisitors) != 5 || !stats.RecentVisitors[0].Timestamp.Equal(now) {
		t.Fatalf("unexpected recent visitors %+v", stats.RecentVisitors)
	}
	if stats.RecentVisitors[0].HashedIP == "1.1.1.1" {
		t.Error("raw ip stored")
	}
}

func TestCleanupRemovesExpiredRows(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	clock := &testClock{t: now.Add(-Retention - time.Hour)}
	s := openTestStore(t, clock)

	if err := s.Record(ctx, "1.1.1.1", "", "/old"); err != nil {
		t.Fatal(err)
	}
	clock.t = now
	if err := s.Record(ctx, "1.1.1.1", "", "/new"); err != nil {
		t.Fatal(err)
	}

	n, err := s.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row removed, got %d", n)
	}

	recent, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Path != "/new" {
		t.Errorf("unexpected remaining rows %+v", recent)
	}
}
