package hosting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name     string
	startErr error
	stopErr  error
	log      *eventLog
	stopped  chan struct{}
	once     sync.Once
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func newFake(name string, log *eventLog) *fakeService {
	return &fakeService{name: name, log: log, stopped: make(chan struct{})}
}

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	select {
	case <-ctx.Done():
	case <-s.stopped:
	}
	return nil
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.log.add("stop " + s.name)
	s.once.Do(func() { close(s.stopped) })
	return s.stopErr
}

func TestManagerStopsInReverseOnCancel(t *testing.T) {
	log := &eventLog{}
	m := NewManager(nil)
	m.Add("first", newFake("first", log))
	m.Add("second", newFake("second", log))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, []string{"stop second", "stop first"}, log.list())
}

func TestManagerStopsOnServiceError(t *testing.T) {
	log := &eventLog{}
	boom := errors.New("listen failed")

	failing := newFake("failing", log)
	failing.startErr = boom

	m := NewManager(nil).SetShutdownTimeout(time.Second)
	m.Add("healthy", newFake("healthy", log))
	m.Add("failing", failing)

	err := m.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"stop failing", "stop healthy"}, log.list())
}

func TestManagerAggregatesStopErrors(t *testing.T) {
	log := &eventLog{}
	stopErr := errors.New("stop failed")

	svc := newFake("svc", log)
	svc.stopErr = stopErr

	m := NewManager(nil)
	m.Add("svc", svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Run(ctx), stopErr)
}
