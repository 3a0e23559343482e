package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newReadingFixture(debounce time.Duration) (*ReadingService, *fakeProgressStore) {
	store := newFakeProgressStore()
	svc := NewReadingService(store, zap.NewNop())
	svc.debounce = debounce
	return svc, store
}

func waitForSaves(t *testing.T, store *fakeProgressStore, want int) []int {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if saves := store.saveHistory(); len(saves) >= want {
			return saves
		}
		time.Sleep(5 * time.Millisecond)
	}
	return store.saveHistory()
}

func TestTrackerCoalescesObservations(t *testing.T) {
	svc, store := newReadingFixture(30 * time.Millisecond)
	tracker := svc.Track("u", "c")
	defer tracker.Close()

	// a burst of scrolling inside one quiet window
	for _, top := range []float64{100, 450, 300, 800} {
		tracker.Observe(top, 1100, 100)
	}

	saves := waitForSaves(t, store, 1)
	if len(saves) != 1 {
		t.Fatalf("got %d saves, want 1 coalesced save", len(saves))
	}
	if saves[0] != 80 {
		t.Errorf("saved %d%%, want the running max 80%%", saves[0])
	}
}

func TestTrackerLowerObservationDoesNotRepush(t *testing.T) {
	svc, store := newReadingFixture(30 * time.Millisecond)
	tracker := svc.Track("u", "c")
	defer tracker.Close()

	tracker.Observe(800, 1100, 100)
	saves := waitForSaves(t, store, 1)
	if len(saves) != 1 || saves[0] != 80 {
		t.Fatalf("saves after first window = %v, want [80]", saves)
	}

	// scrolling back down after the flush must not push the old max again
	tracker.Observe(300, 1100, 100)
	time.Sleep(100 * time.Millisecond)
	if saves := store.saveHistory(); len(saves) != 1 {
		t.Errorf("got %d saves, want 1; a non-max observation re-armed the push", len(saves))
	}
}

func TestTrackerMonotonicMax(t *testing.T) {
	svc, _ := newReadingFixture(time.Hour)
	tracker := svc.Track("u", "c")
	defer tracker.Close()

	tracker.Observe(800, 1100, 100)
	if got := tracker.Observe(100, 1100, 100); got != 80 {
		t.Errorf("max after scrolling back up = %d, want 80", got)
	}
}

func TestTrackerUnscrollableCountsAsRead(t *testing.T) {
	svc, _ := newReadingFixture(time.Hour)
	tracker := svc.Track("u", "c")
	defer tracker.Close()

	if got := tracker.Observe(0, 500, 600); got != 100 {
		t.Errorf("unscrollable document = %d%%, want 100%%", got)
	}
}

func TestTrackerClampsAt100(t *testing.T) {
	svc, _ := newReadingFixture(time.Hour)
	tracker := svc.Track("u", "c")
	defer tracker.Close()

	if got := tracker.Observe(2000, 1100, 100); got != 100 {
		t.Errorf("overscroll = %d%%, want clamp at 100%%", got)
	}
}

func TestTrackerCloseCancelsPendingSave(t *testing.T) {
	svc, store := newReadingFixture(30 * time.Millisecond)
	tracker := svc.Track("u", "c")

	tracker.Observe(500, 1100, 100)
	tracker.Close()

	time.Sleep(100 * time.Millisecond)
	if saves := store.saveHistory(); len(saves) != 0 {
		t.Errorf("close should cancel the pending save, got %d saves", len(saves))
	}
}

func TestTrackerAnonymousSkipsSaves(t *testing.T) {
	svc, store := newReadingFixture(10 * time.Millisecond)
	tracker := svc.Track("", "c")
	defer tracker.Close()

	if got := tracker.Observe(500, 1100, 100); got != 50 {
		t.Errorf("anonymous tracking should still report %%, got %d", got)
	}

	time.Sleep(60 * time.Millisecond)
	if saves := store.saveHistory(); len(saves) != 0 {
		t.Errorf("anonymous tracker pushed %d saves, want 0", len(saves))
	}
}

func TestTrackerReusedPerUserAndCertification(t *testing.T) {
	svc, _ := newReadingFixture(time.Hour)

	first := svc.Tracker("u", "c")
	if svc.Tracker("u", "c") != first {
		t.Error("same pair should reuse the open tracker")
	}
	if svc.Tracker("u", "other") == first {
		t.Error("different certification should get its own tracker")
	}

	svc.CloseTracker("u", "c")
	if svc.Tracker("u", "c") == first {
		t.Error("closing should make room for a fresh tracker")
	}
}

func TestReapTrackersRemovesIdle(t *testing.T) {
	svc, _ := newReadingFixture(time.Hour)

	idle := svc.Tracker("u", "c")
	idle.Observe(500, 1100, 100)
	active := svc.Tracker("u", "other")
	active.Observe(500, 1100, 100)

	idle.mu.Lock()
	idle.lastSeen = time.Now().Add(-2 * trackerIdleTimeout)
	idle.mu.Unlock()

	if removed := svc.ReapTrackers(time.Now()); removed != 1 {
		t.Errorf("reaped %d trackers, want 1", removed)
	}
	if got := svc.trackers.Len(); got != 1 {
		t.Errorf("%d trackers left, want 1", got)
	}

	// the reaped tracker is closed, so its pending save can never fire
	idle.mu.Lock()
	closed := idle.closed
	idle.mu.Unlock()
	if !closed {
		t.Error("reaped tracker should be closed")
	}
}

func TestRestore(t *testing.T) {
	svc, _ := newReadingFixture(time.Hour)

	if err := svc.Save(context.Background(), "u", "c", 42); err != nil {
		t.Fatal(err)
	}
	if got := svc.Restore(context.Background(), "u", "c"); got != 42 {
		t.Errorf("restore = %d, want 42", got)
	}

	// no record and anonymous both come back as zero
	if got := svc.Restore(context.Background(), "u", "other"); got != 0 {
		t.Errorf("restore without record = %d, want 0", got)
	}
	if got := svc.Restore(context.Background(), "", "c"); got != 0 {
		t.Errorf("anonymous restore = %d, want 0", got)
	}
}
