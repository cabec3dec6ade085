package compositor

import (
	"sync"

	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/logging"
	"github.com/sirupsen/logrus"
)

// dispatch maps an event kind to its resync routine. A kind missing from
// the table is a no-op.
var dispatch = map[EventKind]func(c *Client, ev Event){
	EventWorkspacesChanged: func(c *Client, _ Event) {
		c.resyncWorkspaces()
	},
	EventActiveWindowChanged: func(c *Client, _ Event) {
		c.resyncActiveWindow()
	},
	EventFocusChanged: func(c *Client, _ Event) {
		c.resyncActiveWindow()
		c.resyncActiveOutput()
	},
	EventMonitorFocusChanged: func(c *Client, _ Event) {
		c.resyncWorkspaces()
		c.resyncActiveOutput()
	},
	EventKeyboardLayoutChanged: func(c *Client, _ Event) {
		c.resyncKeyboardLayout()
	},
	EventWindowUrgent: func(c *Client, ev Event) {
		c.flagUrgent(ev.UrgentWindow)
	},
}

// Client mirrors one compositor's state. It owns a single background
// goroutine reading the event stream; events are dispatched strictly in
// arrival order and the store is mutated only from that goroutine, so a
// command's result never races a compositor-reported update.
type Client struct {
	backend Backend
	store   *Store
	log     *logrus.Entry

	mu      sync.Mutex
	events  EventSource
	done    chan struct{}
	started bool
}

// New creates a Client for the given backend. Construct one per process
// and pass it to consumers; Start must be called before state is mirrored.
func New(backend Backend) *Client {
	return &Client{
		backend: backend,
		store:   NewStore(),
		log:     logging.NewLogger("compositor").WithField("backend", backend.Name()),
	}
}

// Backend returns the backend this client talks to.
func (c *Client) Backend() Backend { return c.backend }

// Store returns the state cache, for direct subscription access.
func (c *Client) Store() *Store { return c.store }

// Start opens the event stream, performs the initial resync of every
// topic, and launches the listener goroutine. It fails with an
// IPC_UNAVAILABLE error when the compositor socket does not exist; callers
// degrade to "unavailable" rather than crashing.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if !c.backend.Available() {
		return errors.IPCUnavailable(c.backend.Name(), c.backend.Socket())
	}

	events, err := c.backend.OpenEvents()
	if err != nil {
		return err
	}

	// Initial resync before the loop starts: events only trigger targeted
	// resyncs, so every topic needs one authoritative fetch up front. A
	// failed topic stays uninitialized until its next event.
	c.resyncWorkspaces()
	c.resyncActiveWindow()
	c.resyncKeyboardLayout()
	c.resyncActiveOutput()

	c.events = events
	c.done = make(chan struct{})
	c.started = true

	go c.listen(events, c.done)

	c.log.Info("compositor client started")
	return nil
}

// Close terminates the event stream and waits for the listener goroutine
// to exit. In-flight commands are unaffected.
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	events, done := c.events, c.done
	c.started = false
	c.events = nil
	c.mu.Unlock()

	err := events.Close()
	<-done
	return err
}

// listen reads the event stream until it fails. Dispatch is serialized:
// one event is fully handled before the next is read.
func (c *Client) listen(events EventSource, done chan struct{}) {
	defer close(done)

	for {
		ev, err := events.Next()
		if err != nil {
			c.log.WithError(err).Debug("event stream ended")
			return
		}
		c.handle(ev)
	}
}

func (c *Client) handle(ev Event) {
	handler, ok := dispatch[ev.Kind]
	if !ok {
		// Forward compatibility: unknown event types are informational
		c.log.WithError(errors.UnknownEvent(ev.Raw)).Info("ignoring unhandled event")
		return
	}
	handler(c, ev)
}

// Resync routines: one command round trip each, replacing the cached value
// atomically on success. On failure the previous value stays (stale but
// valid, never reverted to empty).

func (c *Client) resyncWorkspaces() {
	workspaces, err := c.backend.SyncWorkspaces()
	if err != nil {
		c.log.WithError(err).Warn("workspace resync failed")
		return
	}
	c.store.SetWorkspaces(workspaces)
}

func (c *Client) resyncActiveWindow() {
	window, err := c.backend.SyncActiveWindow()
	if err != nil {
		c.log.WithError(err).Warn("active window resync failed")
		return
	}
	c.store.SetActiveWindow(window)
}

func (c *Client) resyncKeyboardLayout() {
	layout, err := c.backend.SyncKeyboardLayout()
	if err != nil {
		c.log.WithError(err).Warn("keyboard layout resync failed")
		return
	}
	c.store.SetKeyboardLayout(layout)
}

func (c *Client) resyncActiveOutput() {
	output, err := c.backend.SyncActiveOutput()
	if err != nil {
		c.log.WithError(err).Warn("active output resync failed")
		return
	}
	c.store.SetActiveOutput(output)
}

// flagUrgent records an urgent window together with the workspace it sits
// on, so urgency can be surfaced per workspace. A failed lookup still flags
// the window; the workspace stays unresolved.
func (c *Client) flagUrgent(address string) {
	workspaceID, err := c.backend.WindowWorkspace(address)
	if err != nil {
		c.log.WithError(err).Warn("urgent window workspace lookup failed")
		workspaceID = 0
	}
	c.store.AddUrgent(address, workspaceID)
}

// Subscribe returns a channel receiving a Change each time one of the
// given topics is replaced. No topics means all topics.
func (c *Client) Subscribe(topics ...Topic) chan Change {
	return c.store.Subscribe(topics...)
}

// Unsubscribe releases a subscription channel.
func (c *Client) Unsubscribe(ch chan Change) {
	c.store.Unsubscribe(ch)
}

// Snapshot accessors, safe from any goroutine.

func (c *Client) Workspaces() []Workspace             { return c.store.Workspaces() }
func (c *Client) ActiveWorkspaces() []Workspace       { return c.store.ActiveWorkspaces() }
func (c *Client) FocusedWorkspace() (Workspace, bool) { return c.store.FocusedWorkspace() }
func (c *Client) ActiveWindow() *Window               { return c.store.ActiveWindow() }
func (c *Client) KeyboardLayout() KeyboardLayout      { return c.store.KeyboardLayout() }
func (c *Client) ActiveOutput() *Output               { return c.store.ActiveOutput() }
func (c *Client) UrgentWindows() []string             { return c.store.UrgentWindows() }
func (c *Client) UrgentWorkspaces() []int             { return c.store.UrgentWorkspaces() }

// SwitchToWorkspace asks the compositor to focus the given workspace. The
// cache is not updated optimistically; the ensuing event is authoritative.
func (c *Client) SwitchToWorkspace(target int) error {
	if !c.backend.Available() {
		return errors.IPCUnavailable(c.backend.Name(), c.backend.Socket())
	}
	return c.backend.SwitchToWorkspace(target)
}

// NextKeyboardLayout switches to the next configured keyboard layout.
func (c *Client) NextKeyboardLayout() error {
	if !c.backend.Available() {
		return errors.IPCUnavailable(c.backend.Name(), c.backend.Socket())
	}
	return c.backend.NextKeyboardLayout()
}

// Send passes a raw command through to the backend.
func (c *Client) Send(command string) ([]byte, error) {
	if !c.backend.Available() {
		return nil, errors.IPCUnavailable(c.backend.Name(), c.backend.Socket())
	}
	return c.backend.Send(command)
}
