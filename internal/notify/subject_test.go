package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-service/internal/logging"
	"inspection-service/internal/models"
)

type recordingChannel struct {
	name    string
	notices []models.ClosureNotice
	panics  bool
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Update(n models.ClosureNotice) {
	if c.panics {
		panic("broken channel")
	}
	c.notices = append(c.notices, n)
}

func testNotice() models.ClosureNotice {
	return models.ClosureNotice{
		SeismographID: 1,
		StateName:     models.StateOutOfService,
		ClosedAt:      time.Now(),
		Reasons:       []string{"1"},
		Comments:      []string{"short circuit"},
		Recipients:    []string{"marcos.ponce@seismic.net"},
	}
}

func TestSubject_NotifyInRegistrationOrder(t *testing.T) {
	subject := NewSubject(logging.NewNop())
	first := &recordingChannel{name: "first"}
	second := &recordingChannel{name: "second"}
	subject.Register(first)
	subject.Register(second)

	subject.Notify(testNotice())

	require.Len(t, first.notices, 1)
	require.Len(t, second.notices, 1)
}

func TestSubject_FailureIsolation(t *testing.T) {
	subject := NewSubject(logging.NewNop())
	broken := &recordingChannel{name: "broken", panics: true}
	display := &recordingChannel{name: "display"}
	subject.Register(broken)
	subject.Register(display)

	// Must not panic, and the channel after the broken one is still notified.
	assert.NotPanics(t, func() { subject.Notify(testNotice()) })
	require.Len(t, display.notices, 1)
}

func TestSubject_Unregister(t *testing.T) {
	subject := NewSubject(logging.NewNop())
	a := &recordingChannel{name: "a"}
	b := &recordingChannel{name: "b"}
	subject.Register(a)
	subject.Register(b)

	subject.Unregister(a)
	subject.Notify(testNotice())

	assert.Empty(t, a.notices)
	assert.Len(t, b.notices, 1)

	// Removing something never registered is a no-op.
	subject.Unregister(&recordingChannel{name: "ghost"})
	subject.Notify(testNotice())
	assert.Len(t, b.notices, 2)
}

func TestSubject_EmailFailureDoesNotStopDisplay(t *testing.T) {
	logger := logging.NewNop()
	subject := NewSubject(logger)
	feed := NewFeed(100)

	failing := NewEmailChannel(
		&fakeSender{err: errors.New("relay down")},
		Backoff{MaxAttempts: 3, Sleep: func(time.Duration) {}},
		logger,
	)
	subject.Register(failing)
	subject.Register(NewDisplayChannel(feed, nil, logger))

	subject.Notify(testNotice())

	require.Equal(t, 1, feed.Len())
	assert.Contains(t, feed.Snapshot()[0], "Seismograph ID: 1")
}

func TestFormatNotice(t *testing.T) {
	notice := testNotice()
	notice.ClosedAt = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	text := FormatNotice(notice)
	assert.Contains(t, text, "Seismograph ID: 1")
	assert.Contains(t, text, "New State: OutOfService")
	assert.Contains(t, text, "Closed At: 2026-03-14 15:09:26")
	assert.Contains(t, text, "Reasons: 1")
	assert.Contains(t, text, "Comments: short circuit")
	assert.Contains(t, text, "Responsible: marcos.ponce@seismic.net")

	empty := FormatNotice(models.ClosureNotice{})
	assert.Contains(t, empty, "Reasons: none")
	assert.Contains(t, empty, "Comments: none")
	assert.Contains(t, empty, "Responsible: none")
}
