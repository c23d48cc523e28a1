package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-service/internal/logging"
)

// fakeSender fails the first failures calls per recipient, then succeeds.
type fakeSender struct {
	err      error
	failures int
	calls    map[string]int
	sent     []string
}

func (s *fakeSender) Send(to, subject, body string) error {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[to]++
	if s.err != nil && (s.failures == 0 || s.calls[to] <= s.failures) {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}

func zeroDelay(waits *int) Backoff {
	return Backoff{
		MaxAttempts: 3,
		Delay:       3 * time.Second,
		Sleep:       func(time.Duration) { *waits++ },
	}
}

func TestEmailChannel_DeliversOnThirdAttempt(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused"), failures: 2}
	var waits int
	channel := NewEmailChannel(sender, zeroDelay(&waits), logging.NewNop())

	notice := testNotice()
	channel.Update(notice)

	assert.Equal(t, 3, sender.calls["marcos.ponce@seismic.net"])
	assert.Equal(t, []string{"marcos.ponce@seismic.net"}, sender.sent)
	// Exactly two backoff waits: between attempts 1-2 and 2-3.
	assert.Equal(t, 2, waits)
}

func TestEmailChannel_ExhaustionMovesToNextRecipient(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	var waits int
	channel := NewEmailChannel(sender, zeroDelay(&waits), logging.NewNop())

	notice := testNotice()
	notice.Recipients = []string{"first@seismic.net", "second@seismic.net"}

	assert.NotPanics(t, func() { channel.Update(notice) })

	// Exactly three attempts per recipient; the first exhausting never
	// skips the second.
	assert.Equal(t, 3, sender.calls["first@seismic.net"])
	assert.Equal(t, 3, sender.calls["second@seismic.net"])
	assert.Empty(t, sender.sent)
}

func TestEmailChannel_NoRecipients(t *testing.T) {
	sender := &fakeSender{}
	channel := NewEmailChannel(sender, DefaultBackoff, logging.NewNop())

	notice := testNotice()
	notice.Recipients = nil
	channel.Update(notice)

	assert.Empty(t, sender.calls)
}

func TestEmailChannel_BodyCarriesClosureDetails(t *testing.T) {
	sender := &fakeSender{}
	channel := NewEmailChannel(sender, DefaultBackoff, logging.NewNop())

	channel.Update(testNotice())
	require.Len(t, sender.sent, 1)

	body := emailBody(testNotice())
	assert.Contains(t, body, "Seismograph ID: 1")
	assert.Contains(t, body, "New State: OutOfService")
	assert.Contains(t, body, "Reasons: 1")
	assert.Contains(t, body, "Comments: short circuit")
}

func TestBackoff_Run(t *testing.T) {
	logger := logging.NewNop()

	t.Run("succeeds without retry", func(t *testing.T) {
		calls := 0
		err := (Backoff{MaxAttempts: 3}).Run(logger, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("wraps the last error after exhaustion", func(t *testing.T) {
		boom := errors.New("boom")
		var waits int
		err := zeroDelay(&waits).Run(logger, func() error { return boom })
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, waits)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		err := (Backoff{}).Run(logger, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}
