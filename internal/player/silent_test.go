package player

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSilent_FinishesAfterLength(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var finished atomic.Int32
		s := NewSilent(2 * time.Second)
		s.OnFinished(func() { finished.Add(1) })

		s.SetClip("fruits/0-famille.mp3")
		s.Play()
		assert.Equal(t, Playing, s.State())

		time.Sleep(1999 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(0), finished.Load())

		time.Sleep(time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), finished.Load())
		assert.Equal(t, Stopped, s.State())
	})
}

func TestSilent_PauseCancelsFinish(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var finished atomic.Int32
		s := NewSilent(time.Second)
		s.OnFinished(func() { finished.Add(1) })

		s.SetClip("a.mp3")
		s.Play()
		time.Sleep(500 * time.Millisecond)
		s.Pause()
		assert.Equal(t, Paused, s.State())

		time.Sleep(time.Minute)
		synctest.Wait()
		assert.Equal(t, int32(0), finished.Load())

		// Play restarts the clip from the beginning.
		s.Play()
		time.Sleep(999 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(0), finished.Load())
		time.Sleep(time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), finished.Load())
	})
}

func TestSilent_SetClipStopsCurrent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var finished atomic.Int32
		s := NewSilent(time.Second)
		s.OnFinished(func() { finished.Add(1) })

		s.SetClip("a.mp3")
		s.Play()
		time.Sleep(500 * time.Millisecond)
		s.SetClip("b.mp3")
		assert.Equal(t, Stopped, s.State())

		time.Sleep(time.Minute)
		synctest.Wait()
		assert.Equal(t, int32(0), finished.Load())
	})
}

func TestSilent_PlayWithoutClipIsNoop(t *testing.T) {
	s := NewSilent(0)
	s.Play()
	assert.Equal(t, Stopped, s.State())
	assert.NoError(t, s.Close())
}

func TestSilent_MutedStillFinishes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var finished atomic.Int32
		s := NewSilent(time.Second)
		s.OnFinished(func() { finished.Add(1) })

		s.SetMuted(true)
		assert.True(t, s.Muted())
		s.SetClip("a.mp3")
		s.Play()

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, int32(1), finished.Load())
	})
}
