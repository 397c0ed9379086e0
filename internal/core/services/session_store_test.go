package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/services"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
)

func newStore(t *testing.T, now *time.Time) *services.SessionStore {
	t.Helper()

	return services.NewSessionStore(func() *services.Wizard {
		return newTestWizard(t, inventory())
	}, logger.NewNop(), services.WithSessionClock(func() time.Time { return *now }))
}

func TestSessionStore_CreateAndDo(t *testing.T) {
	now := fixedNow
	store := newStore(t, &now)

	id, snap := store.Create()
	assert.Equal(t, domain.StepSearch, snap.Step)

	err := store.Do(id.String(), func(w *services.Wizard) error {
		return w.SubmitSearch(context.Background(), searchFor(domain.PartyComposition{Adults: 1}))
	})
	require.NoError(t, err)

	var step domain.WizardStep
	require.NoError(t, store.Do(id.String(), func(w *services.Wizard) error {
		step = w.Step()
		return nil
	}))
	assert.Equal(t, domain.StepResults, step)
}

func TestSessionStore_UnknownAndMalformedIDs(t *testing.T) {
	now := fixedNow
	store := newStore(t, &now)

	err := store.Do("not-a-uuid", func(*services.Wizard) error { return nil })
	assert.True(t, domain.IsInvalidInput(err))

	err = store.Do(fixedRef.String(), func(*services.Wizard) error { return nil })
	assert.True(t, domain.IsNotFound(err))

	assert.True(t, domain.IsNotFound(store.Delete(fixedRef.String())))
}

func TestSessionStore_Delete(t *testing.T) {
	now := fixedNow
	store := newStore(t, &now)

	id, _ := store.Create()
	require.NoError(t, store.Delete(id.String()))
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_SweepIdle(t *testing.T) {
	now := fixedNow
	store := newStore(t, &now)

	stale, _ := store.Create()
	now = now.Add(20 * time.Minute)
	fresh, _ := store.Create()

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, store.Sweep(30*time.Minute))
	assert.Equal(t, 1, store.Len())

	assert.True(t, domain.IsNotFound(store.Do(stale.String(), func(*services.Wizard) error { return nil })))
	assert.NoError(t, store.Do(fresh.String(), func(*services.Wizard) error { return nil }))
}

func TestSessionStore_SerializesIntents(t *testing.T) {
	now := fixedNow
	store := newStore(t, &now)
	id, _ := store.Create()

	var wg sync.WaitGroup
	active, maxActive := 0, 0
	var mu sync.Mutex

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Do(id.String(), func(*services.Wizard) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestSessionStore_CleanupStopsOnCancel(t *testing.T) {
	now := fixedNow
	store := newStore(t, &now)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunBackgroundCleanup(ctx, time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
