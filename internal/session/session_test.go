package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/player"
	"github.com/poliorcetics/seven-families/internal/pool"
)

// noShuffle keeps the input order, so draws come from the end.
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

type recordingDisplay struct {
	mu     sync.Mutex
	values []time.Duration
}

func (d *recordingDisplay) ShowRemaining(r time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values = append(d.values, r)
}

func (d *recordingDisplay) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.values)
}

func (d *recordingDisplay) last() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.values) == 0 {
		return -1
	}
	return d.values[len(d.values)-1]
}

func testItems(n int) []catalog.Item {
	items := make([]catalog.Item, n)
	for i := range items {
		id := fmt.Sprintf("item%d", i+1)
		items[i] = catalog.Item{
			ID:           id,
			Category:     "x",
			Name:         id,
			CategoryClip: "x/0-famille.mp3",
			ItemClip:     catalog.Clip("x/" + id + ".mp3"),
		}
	}
	return items
}

type fixture struct {
	s       *Session
	audio   *player.Mock
	display *recordingDisplay
}

func newFixture(n int, d time.Duration) *fixture {
	audio := player.NewMock()
	display := &recordingDisplay{}
	s := New(pool.New(testItems(n), noShuffle{}), Options{
		Duration: d,
		Audio:    audio,
		Display:  display,
	})
	return &fixture{s: s, audio: audio, display: display}
}

// runLoop starts Run and wires the mock's finished callback into the queue.
func (f *fixture) runLoop(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	f.audio.OnFinished(func() { f.s.Post(ClipFinished{}) })
	go f.s.Run(ctx)
	t.Cleanup(func() {
		cancel()
		_ = f.s.Close()
	})
}

// driveTo brings a fresh fixture into the given state with synchronous
// events only.
func (f *fixture) driveTo(t *testing.T, k Kind) {
	t.Helper()
	steps := map[Kind][]Event{
		KindAwaitingPermission: nil,
		KindPlaying:            {PermissionGranted{}},
		KindPlayingPaused:      {PermissionGranted{}, PauseRequested{}},
		KindWaiting:            {PermissionGranted{}, ClipFinished{}, ClipFinished{}},
		KindWaitingPaused:      {PermissionGranted{}, ClipFinished{}, ClipFinished{}, PauseRequested{}},
	}
	for _, ev := range steps[k] {
		require.True(t, f.s.Handle(ev), "driving to %s: %s", k, ev.eventName())
	}
	require.Equal(t, k, f.s.State().Kind())
}

func TestKind_Predicates(t *testing.T) {
	tests := []struct {
		kind           Kind
		name           string
		canPause       bool
		canResume      bool
		canSetDuration bool
		terminal       bool
	}{
		{KindAwaitingPermission, "AwaitingPermission", false, false, true, false},
		{KindPlaying, "Playing", true, false, false, false},
		{KindPlayingPaused, "PlayingPaused", false, true, true, false},
		{KindWaiting, "Waiting", true, false, false, false},
		{KindWaitingPaused, "WaitingPaused", false, true, true, false},
		{KindFinished, "Finished", false, false, false, true},
		{Kind(42), "Unknown", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.canPause, tt.kind.CanPause())
			assert.Equal(t, tt.canResume, tt.kind.CanResume())
			assert.Equal(t, tt.canSetDuration, tt.kind.CanChangeDuration())
			assert.Equal(t, tt.terminal, tt.kind.IsTerminal())
		})
	}
}

func TestBounds(t *testing.T) {
	b := DefaultBounds()

	assert.Equal(t, 3*time.Second, b.ClampSeconds(1))
	assert.Equal(t, 3*time.Second, b.ClampSeconds(-5))
	assert.Equal(t, 25*time.Second, b.ClampSeconds(25))
	assert.Equal(t, 60*time.Second, b.ClampSeconds(200))
	assert.Equal(t, 60*time.Second, b.ClampSeconds(int(^uint(0)>>1)))

	assert.Equal(t, DefaultBounds(), Bounds{Min: 10 * time.Second, Max: time.Second}.normalized())
	assert.Equal(t, DefaultBounds(), Bounds{}.normalized())
}

func TestNew_DurationDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero selects default", 0, DefaultDuration},
		{"in range kept", 10 * time.Second, 10 * time.Second},
		{"too long clamped", 200 * time.Second, 60 * time.Second},
		{"too short clamped", time.Second, 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, Options{Duration: tt.in})
			defer s.Close()
			assert.Equal(t, tt.want, s.Duration())
			assert.Equal(t, AwaitingPermission{Duration: tt.want}, s.State())
			assert.NotEmpty(t, s.ID())
		})
	}
}

func TestPermissionGranted(t *testing.T) {
	t.Run("empty pool finishes", func(t *testing.T) {
		f := newFixture(0, 0)
		defer f.s.Close()

		assert.True(t, f.s.Handle(PermissionGranted{}))
		assert.Equal(t, Finished{}, f.s.State())
		assert.Zero(t, f.audio.Count("Play"))
	})

	t.Run("plays category clip first", func(t *testing.T) {
		f := newFixture(3, 0)
		defer f.s.Close()

		assert.True(t, f.s.Handle(PermissionGranted{}))
		st, ok := f.s.State().(Playing)
		require.True(t, ok)
		assert.Equal(t, PhaseCategory, st.Phase)
		assert.Equal(t, "item3", st.Item.ID)
		assert.Equal(t, []catalog.Clip{"x/0-famille.mp3"}, f.audio.PlayedClips())
		assert.Equal(t, 2, f.s.Snapshot().ItemsLeft)
	})
}

func TestScenarioA_FullGame(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(6, 0)
		defer f.s.Close()

		require.True(t, f.s.Handle(PermissionGranted{}))
		for i := 6; i >= 1; i-- {
			id := fmt.Sprintf("item%d", i)

			assert.Equal(t, KindPlaying, f.s.State().Kind())
			snap := f.s.Snapshot()
			assert.Equal(t, id, snap.Item.ID)
			assert.Equal(t, PhaseCategory, snap.Phase)

			require.True(t, f.s.Handle(ClipFinished{}))
			snap = f.s.Snapshot()
			assert.Equal(t, id, snap.Item.ID)
			assert.Equal(t, PhaseItem, snap.Phase)

			require.True(t, f.s.Handle(ClipFinished{}))
			if i == 1 {
				break
			}
			assert.Equal(t, Waiting{Remaining: DefaultDuration}, f.s.State())
			require.True(t, f.s.Handle(CountdownElapsed{}))
		}

		assert.Equal(t, Finished{}, f.s.State())

		var want []catalog.Clip
		for i := 6; i >= 1; i-- {
			want = append(want, "x/0-famille.mp3", catalog.Clip(fmt.Sprintf("x/item%d.mp3", i)))
		}
		assert.Equal(t, want, f.audio.PlayedClips())
	})
}

func TestScenarioA_DrivenByTimerAndAudio(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(2, 5*time.Second)
		f.runLoop(t)

		require.True(t, f.s.Handle(PermissionGranted{}))
		f.audio.SimulateFinished()
		synctest.Wait()
		f.audio.SimulateFinished()
		synctest.Wait()
		assert.Equal(t, KindWaiting, f.s.State().Kind())

		time.Sleep(4500 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, Waiting{Remaining: time.Second}, f.s.State())
		assert.Equal(t, time.Second, f.display.last())

		time.Sleep(500 * time.Millisecond)
		synctest.Wait()
		st, ok := f.s.State().(Playing)
		require.True(t, ok)
		assert.Equal(t, "item1", st.Item.ID)
		assert.Equal(t, PhaseCategory, st.Phase)

		f.audio.SimulateFinished()
		synctest.Wait()
		f.audio.SimulateFinished()
		synctest.Wait()
		assert.Equal(t, Finished{}, f.s.State())
	})
}

func TestScenarioB_PauseResumeWaiting(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(2, 20*time.Second)
		f.runLoop(t)
		f.driveTo(t, KindWaiting)

		time.Sleep(13 * time.Second)
		synctest.Wait()
		assert.Equal(t, Waiting{Remaining: 7 * time.Second}, f.s.State())

		require.True(t, f.s.Handle(PauseRequested{}))
		assert.Equal(t, WaitingPaused{Remaining: 7 * time.Second}, f.s.State())

		time.Sleep(time.Hour)
		synctest.Wait()
		assert.Equal(t, WaitingPaused{Remaining: 7 * time.Second}, f.s.State())

		shown := f.display.count()
		require.True(t, f.s.Handle(ResumeRequested{}))
		assert.Equal(t, Waiting{Remaining: 7 * time.Second}, f.s.State())
		assert.Equal(t, shown+1, f.display.count())
		assert.Equal(t, 7*time.Second, f.display.last())

		time.Sleep(6 * time.Second)
		synctest.Wait()
		assert.Equal(t, Waiting{Remaining: time.Second}, f.s.State())

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, KindPlaying, f.s.State().Kind())
	})
}

func TestScenarioC_DurationClamped(t *testing.T) {
	f := newFixture(1, 0)
	defer f.s.Close()

	require.True(t, f.s.Handle(DurationChanged{Seconds: 200}))
	assert.Equal(t, 60*time.Second, f.s.Duration())
	assert.Equal(t, AwaitingPermission{Duration: 60 * time.Second}, f.s.State())

	require.True(t, f.s.Handle(DurationChanged{Seconds: 1}))
	assert.Equal(t, 3*time.Second, f.s.Duration())
}

func TestDurationChanged_WhilePaused(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(2, 20*time.Second)
		defer f.s.Close()
		f.driveTo(t, KindWaitingPaused)

		require.True(t, f.s.Handle(DurationChanged{Seconds: 10}))
		assert.Equal(t, 10*time.Second, f.s.Duration())
		// The running countdown keeps its remaining time.
		assert.Equal(t, WaitingPaused{Remaining: 20 * time.Second}, f.s.State())
	})
}

func TestPlaying_PauseResumeRestartsClip(t *testing.T) {
	f := newFixture(2, 0)
	defer f.s.Close()
	f.driveTo(t, KindPlaying)
	require.True(t, f.s.Handle(ClipFinished{}))
	f.audio.Reset()

	require.True(t, f.s.Handle(PauseRequested{}))
	assert.Equal(t, KindPlayingPaused, f.s.State().Kind())
	require.True(t, f.s.Handle(ResumeRequested{}))

	st, ok := f.s.State().(Playing)
	require.True(t, ok)
	assert.Equal(t, PhaseItem, st.Phase)
	assert.Equal(t, []player.Call{
		{Op: "Pause", Clip: "x/item2.mp3"},
		{Op: "Play", Clip: "x/item2.mp3"},
	}, f.audio.Calls())
}

func TestNextRequested_SkipsCountdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(3, 20*time.Second)
		f.runLoop(t)
		f.driveTo(t, KindWaiting)

		time.Sleep(5 * time.Second)
		require.True(t, f.s.Handle(NextRequested{}))
		assert.Equal(t, KindPlaying, f.s.State().Kind())

		require.True(t, f.s.Handle(ClipFinished{}))
		require.True(t, f.s.Handle(ClipFinished{}))
		assert.Equal(t, KindWaiting, f.s.State().Kind())

		// The first countdown would have elapsed here.
		time.Sleep(15*time.Second + 500*time.Millisecond)
		synctest.Wait()
		assert.Equal(t, Waiting{Remaining: 5 * time.Second}, f.s.State())
	})
}

func TestStaleTimerEventsIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(2, 20*time.Second)
		defer f.s.Close()
		f.driveTo(t, KindWaiting)

		stale := f.s.token + 1
		assert.False(t, f.s.Handle(CountdownElapsed{token: stale}))
		assert.False(t, f.s.Handle(Tick{token: stale}))
		assert.Equal(t, Waiting{Remaining: 20 * time.Second}, f.s.State())

		assert.True(t, f.s.Handle(Tick{token: f.s.token}))
		assert.Equal(t, Waiting{Remaining: 19 * time.Second}, f.s.State())
	})
}

func TestInvalidEventsAreNoops(t *testing.T) {
	tests := []struct {
		from   Kind
		events []Event
	}{
		{KindAwaitingPermission, []Event{ClipFinished{}, CountdownElapsed{}, NextRequested{}, PauseRequested{}, ResumeRequested{}, Tick{}}},
		{KindPlaying, []Event{PermissionGranted{}, CountdownElapsed{}, NextRequested{}, ResumeRequested{}, DurationChanged{Seconds: 10}, Tick{}}},
		{KindPlayingPaused, []Event{PermissionGranted{}, ClipFinished{}, CountdownElapsed{}, NextRequested{}, PauseRequested{}, Tick{}}},
		{KindWaiting, []Event{PermissionGranted{}, ClipFinished{}, ResumeRequested{}, DurationChanged{Seconds: 10}}},
		{KindWaitingPaused, []Event{PermissionGranted{}, ClipFinished{}, CountdownElapsed{}, NextRequested{}, PauseRequested{}, Tick{}}},
	}

	for _, tt := range tests {
		for _, ev := range tt.events {
			t.Run(tt.from.String()+"/"+ev.eventName(), func(t *testing.T) {
				synctest.Test(t, func(t *testing.T) {
					f := newFixture(3, 20*time.Second)
					defer f.s.Close()
					f.driveTo(t, tt.from)

					before := f.s.Snapshot()
					calls := len(f.audio.Calls())

					assert.False(t, f.s.Handle(ev))
					assert.Equal(t, before, f.s.Snapshot())
					assert.Len(t, f.audio.Calls(), calls)
				})
			})
		}
	}
}

func TestFinished_AcceptsOnlyReturnToSelection(t *testing.T) {
	f := newFixture(0, 0)
	require.True(t, f.s.Handle(PermissionGranted{}))

	for _, ev := range []Event{
		PermissionGranted{}, ClipFinished{}, CountdownElapsed{}, NextRequested{},
		PauseRequested{}, ResumeRequested{}, DurationChanged{Seconds: 30}, Tick{},
	} {
		assert.False(t, f.s.Handle(ev), ev.eventName())
	}
	assert.Equal(t, Finished{}, f.s.State())
	assert.Equal(t, DefaultDuration, f.s.Duration())

	assert.True(t, f.s.Handle(ReturnToSelection{}))
	assert.True(t, f.s.Snapshot().Closed)
}

func TestReturnToSelection(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(3, 20*time.Second)
		f.runLoop(t)
		sub := f.s.Subscribe()
		f.driveTo(t, KindWaiting)

		require.True(t, f.s.Handle(ReturnToSelection{}))
		<-sub.Done
		<-f.s.Done()
		assert.True(t, f.s.Snapshot().Closed)
		assert.Equal(t, "Pause", f.audio.Calls()[len(f.audio.Calls())-1].Op)

		// The countdown is gone and nothing else is accepted.
		time.Sleep(time.Minute)
		synctest.Wait()
		assert.Equal(t, KindWaiting, f.s.State().Kind())
		assert.False(t, f.s.Handle(NextRequested{}))
		assert.False(t, f.s.Post(NextRequested{}))

		late := f.s.Subscribe()
		<-late.Done
	})
}

func TestSubscription_ReceivesChanges(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(2, 3*time.Second)
		f.runLoop(t)
		sub := f.s.Subscribe()

		require.True(t, f.s.Handle(PermissionGranted{}))
		e := <-sub.StateChanged
		assert.Equal(t, KindAwaitingPermission, e.Previous)
		assert.Equal(t, KindPlaying, e.Current.Kind)
		assert.Equal(t, 1, e.Current.ItemsLeft)

		f.driveClip(t)
		f.driveClip(t)
		<-sub.StateChanged // item phase
		e = <-sub.StateChanged
		assert.Equal(t, KindWaiting, e.Current.Kind)
		assert.Equal(t, 3*time.Second, e.Current.Remaining)
		c := <-sub.Countdown
		assert.Equal(t, 3*time.Second, c.Remaining)

		time.Sleep(time.Second)
		synctest.Wait()
		c = <-sub.Countdown
		assert.Equal(t, 2*time.Second, c.Remaining)
	})
}

func (f *fixture) driveClip(t *testing.T) {
	t.Helper()
	f.audio.SimulateFinished()
	synctest.Wait()
}

// drain applies every queued timer and audio event.
func (f *fixture) drain() {
	for {
		select {
		case ev := <-f.s.events:
			f.s.Handle(ev)
		default:
			return
		}
	}
}

func TestPauseAfterCountdownFired(t *testing.T) {
	items := testItems(2)

	t.Run("elapsed event dropped while paused", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			f := newFixture(2, 5*time.Second)
			defer f.s.Close()
			f.driveTo(t, KindWaiting)

			time.Sleep(5 * time.Second)
			synctest.Wait()

			// The pause lands before the queued elapsed event is applied.
			require.True(t, f.s.Handle(PauseRequested{}))
			assert.Equal(t, WaitingPaused{Remaining: 0}, f.s.State())
			f.drain()
			assert.Equal(t, KindWaitingPaused, f.s.State().Kind())

			require.True(t, f.s.Handle(ResumeRequested{}))
			assert.Equal(t, Playing{Item: items[0], Phase: PhaseCategory}, f.s.State())
		})
	})

	t.Run("elapsed event still queued on resume", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			f := newFixture(2, 5*time.Second)
			defer f.s.Close()
			f.driveTo(t, KindWaiting)

			time.Sleep(5 * time.Second)
			synctest.Wait()

			require.True(t, f.s.Handle(PauseRequested{}))
			require.True(t, f.s.Handle(ResumeRequested{}))
			f.drain()
			assert.Equal(t, Playing{Item: items[0], Phase: PhaseCategory}, f.s.State())
			assert.Equal(t, 0, f.s.Snapshot().ItemsLeft)
		})
	})
}

func TestSubscription_FinishedSurvivesFullBuffer(t *testing.T) {
	f := newFixture(1, 0)
	defer f.s.Close()
	sub := f.s.Subscribe()

	// Nobody reads StateChanged, so later changes are dropped.
	for range eventBufferSize {
		require.True(t, f.s.Handle(DurationChanged{Seconds: 10}))
	}
	require.True(t, f.s.Handle(PermissionGranted{}))
	require.True(t, f.s.Handle(ClipFinished{}))
	require.True(t, f.s.Handle(ClipFinished{}))
	require.Equal(t, KindFinished, f.s.State().Kind())

	select {
	case <-sub.Finished:
	default:
		t.Fatal("Finished not closed")
	}

	late := f.s.Subscribe()
	select {
	case <-late.Finished:
	default:
		t.Fatal("Finished not closed for a late subscriber")
	}
}
