package evdevinput

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type device struct {
	events chan *evdev.InputEvent
	closed chan struct{}
	once   sync.Once
}

func newDevice() *device {
	return &device{events: make(chan *evdev.InputEvent), closed: make(chan struct{})}
}

func (d *device) ReadOne() (*evdev.InputEvent, error) {
	select {
	case ev := <-d.events:
		return ev, nil
	case <-d.closed:
		return nil, os.ErrClosed
	}
}

func (d *device) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}

func (d *device) send(code evdev.EvCode, value int32) {
	d.events <- &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

type navigator struct {
	mu    sync.Mutex
	steps []int
	backs int
}

func (n *navigator) Step(ctx context.Context, delta int, source string) *waypoint.Transition {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.steps = append(n.steps, delta)
	return nil
}

func (n *navigator) GoBack(ctx context.Context) *waypoint.Transition {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backs++
	return nil
}

func (n *navigator) snapshot() ([]int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int(nil), n.steps...), n.backs
}

func TestDecode(t *testing.T) {
	k := DefaultKeymap()
	tests := []struct {
		name string
		ev   evdev.InputEvent
		want Event
		ok   bool
	}{
		{"right press", evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_RIGHT, Value: 1}, Event{Action: ActionNext, Pressed: true}, true},
		{"left release", evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_LEFT, Value: 0}, Event{Action: ActionPrevious}, true},
		{"escape press", evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_ESC, Value: 1}, Event{Action: ActionBack, Pressed: true}, true},
		{"autorepeat", evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_RIGHT, Value: 2}, Event{}, false},
		{"unmapped key", evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 1}, Event{}, false},
		{"sync event", evdev.InputEvent{Type: evdev.EV_SYN}, Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := k.Decode(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReaderStepsAndGoesBack(t *testing.T) {
	dev := newDevice()
	nav := &navigator{}
	r := New("/dev/input/event0", nav, Options{
		RepeatDelay:    time.Hour,
		RepeatInterval: time.Hour,
	})
	r.opener = func(string) (eventSource, error) { return dev, nil }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	dev.send(evdev.KEY_RIGHT, 1)
	dev.send(evdev.KEY_RIGHT, 0)
	dev.send(evdev.KEY_UP, 1)
	dev.send(evdev.KEY_UP, 0)
	dev.send(evdev.KEY_ESC, 1)
	dev.send(evdev.KEY_ESC, 0)

	cancel()
	require.NoError(t, <-done)

	steps, backs := nav.snapshot()
	assert.Equal(t, []int{1, -1}, steps)
	assert.Equal(t, 1, backs)
}

func TestReaderRepeatsHeldKey(t *testing.T) {
	dev := newDevice()
	nav := &navigator{}
	r := New("/dev/input/event0", nav, Options{
		RepeatDelay:    10 * time.Millisecond,
		RepeatInterval: 10 * time.Millisecond,
		Tick:           time.Millisecond,
	})
	r.opener = func(string) (eventSource, error) { return dev, nil }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	dev.send(evdev.KEY_DOWN, 1)
	assert.Eventually(t, func() bool {
		steps, _ := nav.snapshot()
		return len(steps) >= 3
	}, 2*time.Second, 5*time.Millisecond)
	dev.send(evdev.KEY_DOWN, 0)

	cancel()
	require.NoError(t, <-done)

	steps, _ := nav.snapshot()
	for _, s := range steps {
		assert.Equal(t, 1, s)
	}
}

func TestReaderStopsWhenDeviceCloses(t *testing.T) {
	dev := newDevice()
	r := New("/dev/input/event9", &navigator{}, Options{})
	r.opener = func(string) (eventSource, error) { return dev, nil }

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()
	require.NoError(t, dev.Close())

	assert.NoError(t, <-done)
}
