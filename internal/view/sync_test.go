package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/torii/internal/filter"
	"github.com/starford/torii/internal/models"
	"github.com/starford/torii/internal/query"
	"github.com/starford/torii/internal/records"
)

// recordingMap counts marker placements and removals.
type recordingMap struct {
	next    int
	live    map[int]Marker
	removed int
}

func newRecordingMap() *recordingMap {
	return &recordingMap{live: make(map[int]Marker)}
}

func (m *recordingMap) PlaceMarker(mk Marker, _ func()) MarkerHandle {
	m.next++
	m.live[m.next] = mk
	return m.next
}

func (m *recordingMap) RemoveMarker(h MarkerHandle) {
	id := h.(int)
	if _, ok := m.live[id]; ok {
		delete(m.live, id)
		m.removed++
	}
}

func ids(items []ListEntry) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.TempleID
	}
	return out
}

func markerIDs(ms []Marker) []int {
	out := make([]int, len(ms))
	for i, m := range ms {
		out[i] = m.TempleID
	}
	return out
}

func TestReconcile_FullRebuild(t *testing.T) {
	rm := newRecordingMap()
	snap := NewSnapshot()
	sync := NewSynchronizer(rm, snap, snap, snap)
	all := records.Default().All()

	sync.Reconcile(all)
	require.Len(t, rm.live, 5)

	sync.Reconcile(all[:2])
	assert.Len(t, rm.live, 2, "stale markers must be removed")
	assert.Equal(t, 5, rm.removed, "every previous marker is torn down")
	assert.Equal(t, []int{1, 2}, ids(snap.Items()))
	assert.Equal(t, 2, snap.Count())

	sync.Reconcile(nil)
	assert.Empty(t, rm.live)
	assert.Empty(t, snap.Items())
	assert.Equal(t, "0 temples", snap.CountLabel())
}

func TestReconcile_OrderAndStyle(t *testing.T) {
	sess, snap := NewSnapshotSession(records.NewHolder(records.Default()))
	sess.Refresh(query.New().WithFilter(query.FilterShinto))

	assert.Equal(t, []int{2, 4, 5}, ids(snap.Items()))
	assert.Equal(t, []int{2, 4, 5}, markerIDs(snap.Markers()))
	for _, m := range snap.Markers() {
		assert.Equal(t, StyleShinto, m.Style)
	}
	assert.Equal(t, "3 temples", snap.CountLabel())
}

func TestReconcile_Idempotent(t *testing.T) {
	sess, snap := NewSnapshotSession(records.NewHolder(records.Default()))
	st := query.New().WithSearch("shrine")

	sess.Refresh(st)
	firstItems, firstMarkers, firstCount := ids(snap.Items()), markerIDs(snap.Markers()), snap.Count()

	sess.Refresh(st)
	assert.Equal(t, firstItems, ids(snap.Items()))
	assert.Equal(t, firstMarkers, markerIDs(snap.Markers()))
	assert.Equal(t, firstCount, snap.Count())
}

func TestSession_SearchScenario(t *testing.T) {
	sess, snap := NewSnapshotSession(records.NewHolder(records.Default()))

	st := query.New().WithSearch("Senso")
	matching := sess.Refresh(st)
	assert.Equal(t, "senso", st.SearchTerm)
	assert.Len(t, matching, 1)
	assert.Equal(t, []int{1}, ids(snap.Items()))
	assert.Equal(t, "1 temples", snap.CountLabel())

	st = st.WithSearch("zzz-no-match")
	sess.Refresh(st)
	assert.Empty(t, snap.Items())
	assert.Empty(t, snap.Markers())
	assert.Equal(t, "0 temples", snap.CountLabel())

	st = st.WithSearch("").WithFilter(query.FilterFamous)
	sess.Refresh(st)
	assert.Equal(t, query.FilterFamous, st.ActiveFilter)
	assert.Len(t, snap.Items(), 5)
}

func TestSession_ActivateListEntryOpensDetail(t *testing.T) {
	holder := records.NewHolder(records.Default())
	sess, snap := NewSnapshotSession(holder)
	st := query.New().WithFilter(query.FilterShinto)
	sess.Refresh(st)
	before := st

	require.True(t, snap.ActivateItem(1))
	detail, ok := snap.Detail()
	require.True(t, ok)

	want, err := holder.Load().Get(4)
	require.NoError(t, err)
	assert.Equal(t, want, detail, "detail view shows exactly the activated record")
	assert.Equal(t, before, st, "activation does not alter query state")
	assert.Equal(t, []int{2, 4, 5}, ids(snap.Items()), "activation does not alter the list")

	snap.Dismiss()
	_, ok = snap.Detail()
	assert.False(t, ok)
	assert.Equal(t, 3, snap.Count())
}

func TestSession_ActivateMarker(t *testing.T) {
	sess, snap := NewSnapshotSession(records.NewHolder(records.Default()))
	sess.Refresh(query.New())

	require.True(t, snap.ActivateMarker(3))
	detail, ok := snap.Detail()
	require.True(t, ok)
	assert.Equal(t, "Zojo-ji", detail.Name)

	assert.False(t, snap.ActivateMarker(99))
	assert.False(t, snap.ActivateItem(-1))
}

func TestSession_ActivateByID(t *testing.T) {
	sess, snap := NewSnapshotSession(records.NewHolder(records.Default()))
	require.NoError(t, sess.Activate(5))
	detail, _ := snap.Detail()
	assert.Equal(t, "Kanda Myojin Shrine", detail.Name)
	assert.Error(t, sess.Activate(404))
}

func TestSession_EmptyStore(t *testing.T) {
	sess, snap := NewSnapshotSession(records.NewHolder(records.Empty()))
	sess.Refresh(query.New())
	assert.Equal(t, "0 temples", snap.CountLabel())
	assert.Empty(t, snap.Markers())
}

func TestSession_ReloadedStore(t *testing.T) {
	holder := records.NewHolder(records.Default())
	sess, snap := NewSnapshotSession(holder)
	st := query.New()
	sess.Refresh(st)
	require.Equal(t, 5, snap.Count())

	holder.Swap(records.NewStore(filter.Apply(holder.Load().All(), query.New().WithFilter(query.FilterBuddhist))))
	sess.Refresh(st)
	assert.Equal(t, []int{1, 3}, ids(snap.Items()))
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, StyleBuddhist, StyleFor(models.Temple{Type: models.TypeBuddhist}))
	assert.Equal(t, StyleShinto, StyleFor(models.Temple{Type: models.TypeShinto}))
}
