package notify

import (
	"sync"

	"inspection-service/internal/logging"
	"inspection-service/internal/metrics"
	"inspection-service/internal/models"
)

// Channel is one notification sink. Update must swallow its own failures;
// the Subject additionally isolates panics so one broken channel never
// silences the rest.
type Channel interface {
	Name() string
	Update(notice models.ClosureNotice)
}

// Subject holds the registered channels and performs the broadcast. One
// Subject is built at process start and shared by every closure; it is not a
// per-request object.
type Subject struct {
	mu       sync.RWMutex
	channels []Channel
	logger   *logging.Logger
}

func NewSubject(logger *logging.Logger) *Subject {
	return &Subject{logger: logger}
}

// Register appends a channel. Duplicate registration is tolerated and may
// produce duplicate notifications; channels are registered once at startup.
func (s *Subject) Register(c Channel) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = append(s.channels, c)
	s.logger.Infof("Registered notification channel: %s", c.Name())
}

// Unregister removes a channel by identity. No-op when not present.
func (s *Subject) Unregister(c Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, registered := range s.channels {
		if registered == c {
			s.channels = append(s.channels[:i], s.channels[i+1:]...)
			s.logger.Infof("Unregistered notification channel: %s", c.Name())
			return
		}
	}
}

// Notify delivers the notice to every channel in registration order. It
// never fails: a channel failure is logged and counted, and the remaining
// channels are still notified.
func (s *Subject) Notify(notice models.ClosureNotice) {
	s.mu.RLock()
	channels := make([]Channel, len(s.channels))
	copy(channels, s.channels)
	s.mu.RUnlock()

	for _, c := range channels {
		s.dispatch(c, notice)
	}
}

func (s *Subject) dispatch(c Channel, notice models.ClosureNotice) {
	defer func() {
		if r := recover(); r != nil {
			metrics.NotifyFailuresTotal.WithLabelValues(c.Name()).Inc()
			s.logger.Errorf("Channel %s panicked during update: %v", c.Name(), r)
		}
	}()
	c.Update(notice)
}
