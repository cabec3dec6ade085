package compositor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainChanges collects every pending notification without blocking.
func drainChanges(ch chan Change) []Topic {
	var topics []Topic
	for {
		select {
		case change := <-ch:
			topics = append(topics, change.Topic)
		case <-time.After(50 * time.Millisecond):
			return topics
		}
	}
}

func TestStoreSetWorkspacesSortsByIndex(t *testing.T) {
	s := NewStore()

	s.SetWorkspaces([]Workspace{
		{ID: 3, Index: 3, Name: "web"},
		{ID: 1, Index: 1, Name: "term", IsActive: true, IsFocused: true},
		{ID: 2, Index: 2, Name: "mail"},
	})

	workspaces := s.Workspaces()
	require.Len(t, workspaces, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{workspaces[0].Index, workspaces[1].Index, workspaces[2].Index})

	active := s.ActiveWorkspaces()
	require.Len(t, active, 1)
	assert.Equal(t, "term", active[0].Name)

	focused, ok := s.FocusedWorkspace()
	require.True(t, ok)
	assert.Equal(t, 1, focused.ID)
}

func TestStoreSetWorkspacesNotifiesBothTopics(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	s.SetWorkspaces([]Workspace{{ID: 1, Index: 1, IsActive: true}})

	topics := drainChanges(ch)
	assert.ElementsMatch(t, []Topic{TopicWorkspaces, TopicActiveWorkspace}, topics)
}

func TestStoreNotifiesEvenWhenValueIsUnchanged(t *testing.T) {
	s := NewStore()
	s.SetWorkspaces([]Workspace{{ID: 1, Index: 1}})

	ch := s.Subscribe(TopicWorkspaces)
	defer s.Unsubscribe(ch)

	s.SetWorkspaces([]Workspace{{ID: 1, Index: 1}})
	s.SetWorkspaces([]Workspace{{ID: 1, Index: 1}})

	topics := drainChanges(ch)
	assert.Equal(t, []Topic{TopicWorkspaces, TopicWorkspaces}, topics)
}

func TestStoreSubscriptionFiltering(t *testing.T) {
	s := NewStore()
	layoutOnly := s.Subscribe(TopicKeyboardLayout)
	defer s.Unsubscribe(layoutOnly)

	s.SetWorkspaces([]Workspace{{ID: 1, Index: 1}})
	s.SetActiveOutput(&Output{Name: "DP-1", Focused: true})
	s.SetKeyboardLayout(KeyboardLayout{Names: []string{"us", "de"}, CurrentIdx: 1})

	topics := drainChanges(layoutOnly)
	assert.Equal(t, []Topic{TopicKeyboardLayout}, topics)
}

func TestStoreUrgencyGrowsOnlyViaAddUrgent(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe(TopicUrgentWindows)
	defer s.Unsubscribe(ch)

	s.AddUrgent("aabb01", 2)
	s.AddUrgent("aabb02", 5)
	s.AddUrgent("aabb01", 2) // duplicate, no state change
	s.AddUrgent("", 3)       // no address, no state change

	assert.Equal(t, []string{"aabb01", "aabb02"}, s.UrgentWindows())
	assert.True(t, s.IsUrgent("aabb01"))
	assert.Len(t, drainChanges(ch), 2)
}

func TestStoreUrgentWorkspacesDerivedFromWindows(t *testing.T) {
	s := NewStore()

	s.AddUrgent("aabb01", 2)
	s.AddUrgent("aabb02", 2) // same workspace, reported once
	s.AddUrgent("aabb03", 5)
	s.AddUrgent("aabb04", 0) // unresolved workspace, excluded

	assert.Equal(t, []int{2, 5}, s.UrgentWorkspaces())
	assert.True(t, s.IsWorkspaceUrgent(2))
	assert.False(t, s.IsWorkspaceUrgent(3))
	assert.False(t, s.IsWorkspaceUrgent(0))

	// A workspace stays urgent while any of its windows is flagged.
	s.SetActiveWindow(&Window{Address: "aabb01"})
	assert.Equal(t, []int{2, 5}, s.UrgentWorkspaces())

	s.SetActiveWindow(&Window{Address: "aabb02"})
	assert.Equal(t, []int{5}, s.UrgentWorkspaces())
	assert.False(t, s.IsWorkspaceUrgent(2))
}

func TestStoreFocusClearsUrgency(t *testing.T) {
	s := NewStore()
	s.AddUrgent("aabb01", 1)
	s.AddUrgent("aabb02", 2)

	ch := s.Subscribe(TopicUrgentWindows)
	defer s.Unsubscribe(ch)

	// Focusing an unrelated window leaves the urgent set alone.
	s.SetActiveWindow(&Window{Address: "ccdd99"})
	assert.Empty(t, drainChanges(ch))
	assert.Len(t, s.UrgentWindows(), 2)

	// Focusing an urgent window is the only path that shrinks the set.
	s.SetActiveWindow(&Window{Address: "aabb01"})
	assert.Equal(t, []Topic{TopicUrgentWindows}, drainChanges(ch))
	assert.Equal(t, []string{"aabb02"}, s.UrgentWindows())
	assert.False(t, s.IsUrgent("aabb01"))

	// Clearing focus entirely does not touch urgency.
	s.SetActiveWindow(nil)
	assert.Empty(t, drainChanges(ch))
	assert.Equal(t, []string{"aabb02"}, s.UrgentWindows())
}

func TestStoreGettersReturnCopies(t *testing.T) {
	s := NewStore()
	s.SetWorkspaces([]Workspace{{ID: 1, Index: 1, Name: "one"}})
	s.SetKeyboardLayout(KeyboardLayout{Names: []string{"us"}, CurrentIdx: 0})
	s.SetActiveWindow(&Window{Address: "aabb01", Title: "editor"})

	s.Workspaces()[0].Name = "mutated"
	s.KeyboardLayout().Names[0] = "mutated"
	s.ActiveWindow().Title = "mutated"

	assert.Equal(t, "one", s.Workspaces()[0].Name)
	assert.Equal(t, "us", s.KeyboardLayout().Names[0])
	assert.Equal(t, "editor", s.ActiveWindow().Title)
}

func TestStoreUnsubscribeClosesChannel(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()
	s.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Double unsubscribe is a no-op, not a double close.
	s.Unsubscribe(ch)
}
