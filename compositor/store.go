package compositor

import (
	"sort"
	"sync"
)

// Store is the in-memory state cache. It is thread-safe and supports
// per-topic pub/sub. A topic's value is only ever replaced atomically by a
// successful resync; a failed resync leaves the previous value untouched.
type Store struct {
	mu sync.RWMutex

	workspaces       []Workspace
	activeWorkspaces []Workspace
	activeWindow     *Window
	keyboardLayout   KeyboardLayout
	activeOutput     *Output

	// urgent maps urgent window addresses to the workspace the window sits
	// on (0 when the backend could not resolve it), so urgency can be
	// reported per window and per workspace from one source.
	urgent map[string]int

	subscribers map[chan Change]map[Topic]struct{}
}

// NewStore creates an empty Store. Every topic starts uninitialized
// (empty/default) until its first resync.
func NewStore() *Store {
	return &Store{
		urgent:      make(map[string]int),
		subscribers: make(map[chan Change]map[Topic]struct{}),
	}
}

// Subscribe creates a subscription channel for the given topics. Passing no
// topics subscribes to all of them. Notifications are dropped rather than
// blocking the dispatch path when a subscriber falls behind.
func (s *Store) Subscribe(topics ...Topic) chan Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filter map[Topic]struct{}
	if len(topics) > 0 {
		filter = make(map[Topic]struct{}, len(topics))
		for _, topic := range topics {
			filter[topic] = struct{}{}
		}
	}

	ch := make(chan Change, 64) // Buffered
	s.subscribers[ch] = filter
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (s *Store) Unsubscribe(ch chan Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// notify broadcasts one Change per topic to matching subscribers. Caller
// must hold the write lock.
func (s *Store) notify(topics ...Topic) {
	for _, topic := range topics {
		for ch, filter := range s.subscribers {
			if filter != nil {
				if _, ok := filter[topic]; !ok {
					continue
				}
			}
			select {
			case ch <- Change{Topic: topic}:
			default:
				// Non-blocking send so a slow subscriber cannot stall dispatch
			}
		}
	}
}

// Workspaces returns the cached workspace list, sorted by index.
func (s *Store) Workspaces() []Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Workspace, len(s.workspaces))
	copy(out, s.workspaces)
	return out
}

// ActiveWorkspaces returns the workspaces currently active on their outputs.
func (s *Store) ActiveWorkspaces() []Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Workspace, len(s.activeWorkspaces))
	copy(out, s.activeWorkspaces)
	return out
}

// FocusedWorkspace returns the single globally focused workspace, if any.
func (s *Store) FocusedWorkspace() (Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ws := range s.activeWorkspaces {
		if ws.IsFocused {
			return ws, true
		}
	}
	return Workspace{}, false
}

// ActiveWindow returns the focused window, or nil when nothing is focused.
func (s *Store) ActiveWindow() *Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeWindow == nil {
		return nil
	}
	w := *s.activeWindow
	return &w
}

// KeyboardLayout returns the cached keyboard layout state.
func (s *Store) KeyboardLayout() KeyboardLayout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kl := s.keyboardLayout
	kl.Names = append([]string(nil), s.keyboardLayout.Names...)
	return kl
}

// ActiveOutput returns the focused output, or nil before the first resync.
func (s *Store) ActiveOutput() *Output {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeOutput == nil {
		return nil
	}
	o := *s.activeOutput
	return &o
}

// UrgentWindows returns the addresses of windows requesting attention.
func (s *Store) UrgentWindows() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.urgent))
	for addr := range s.urgent {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// UrgentWorkspaces returns the IDs of workspaces holding at least one
// urgent window, sorted. Windows whose workspace could not be resolved are
// excluded.
func (s *Store) UrgentWorkspaces() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int]struct{}, len(s.urgent))
	out := make([]int, 0, len(s.urgent))
	for _, id := range s.urgent {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// IsUrgent reports whether the window address is flagged urgent.
func (s *Store) IsUrgent(address string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.urgent[address]
	return ok
}

// IsWorkspaceUrgent reports whether any urgent window sits on the given
// workspace.
func (s *Store) IsWorkspaceUrgent(workspaceID int) bool {
	if workspaceID == 0 {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.urgent {
		if id == workspaceID {
			return true
		}
	}
	return false
}

// SetWorkspaces replaces the workspace topic. The list is re-sorted by
// index ascending before caching; index, not arrival order, is
// authoritative for display order. The active-workspace topic is derived
// from the same snapshot and notified alongside.
func (s *Store) SetWorkspaces(workspaces []Workspace) {
	sorted := make([]Workspace, len(workspaces))
	copy(sorted, workspaces)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	active := make([]Workspace, 0, len(sorted))
	for _, ws := range sorted {
		if ws.IsActive {
			active = append(active, ws)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces = sorted
	s.activeWorkspaces = active
	s.notify(TopicWorkspaces, TopicActiveWorkspace)
}

// SetActiveWindow replaces the active-window topic. Focusing an urgent
// window clears its urgency flag; that is the only way the urgent set
// shrinks.
func (s *Store) SetActiveWindow(w *Window) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeWindow = w
	topics := []Topic{TopicActiveWindow}

	if w != nil {
		if _, ok := s.urgent[w.Address]; ok {
			delete(s.urgent, w.Address)
			topics = append(topics, TopicUrgentWindows)
		}
	}

	s.notify(topics...)
}

// SetKeyboardLayout replaces the keyboard-layout topic wholesale.
func (s *Store) SetKeyboardLayout(kl KeyboardLayout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyboardLayout = kl
	s.notify(TopicKeyboardLayout)
}

// SetActiveOutput replaces the active-output topic.
func (s *Store) SetActiveOutput(o *Output) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeOutput = o
	s.notify(TopicActiveOutput)
}

// AddUrgent flags a window as urgent, recording the workspace it sits on
// (0 when unresolved). The set only grows here; it shrinks exclusively in
// SetActiveWindow when the focused window matches.
func (s *Store) AddUrgent(address string, workspaceID int) {
	if address == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.urgent[address]; ok {
		return
	}
	s.urgent[address] = workspaceID
	s.notify(TopicUrgentWindows)
}
