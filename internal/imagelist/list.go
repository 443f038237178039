// Package imagelist implements the thread-safe ordered ImageList of
// section 4.4: directory loading, the five ordering modes, adjacency
// traversal, and filesystem-monitor driven add/remove.
package imagelist

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/swayview/swayview/internal/imageio"
)

// Order selects the comparison used to sort entries.
type Order int

const (
	OrderNone Order = iota
	OrderAlpha
	OrderNumeric
	OrderMtime
	OrderSize
	OrderRandom
)

// Event is delivered to the FS-monitor handler registered via
// Initialize.
type Event struct {
	Kind  EventKind
	Image *imageio.Image
}

// EventKind enumerates the FS-monitor notifications of section 4.4.
type EventKind int

const (
	EventCreate EventKind = iota
	EventRemove
	EventModify
)

// List is a thread-safe ordered sequence of *imageio.Image, unique by
// Source. All mutating operations take the exclusive lock; read
// queries take the shared lock.
type List struct {
	mu      sync.RWMutex
	entries []*imageio.Image
	index   map[string]int

	order   Order
	reverse bool
	loop    bool

	handler func(Event)
	watcher *watcher
	rng     *rand.Rand
}

// New returns an empty list with the given ordering.
func New(order Order, reverse, loop bool) *List {
	return &List{
		entries: nil,
		index:   make(map[string]int),
		order:   order,
		reverse: reverse,
		loop:    loop,
	}
}

// Initialize binds the callback invoked on FS-monitor events. It must
// be called before Watch.
func (l *List) Initialize(handler func(Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = handler
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Order reports the current ordering mode and reverse flag.
func (l *List) Order() (Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.order, l.reverse
}

// SetOrder changes the ordering mode and re-sorts the list.
func (l *List) SetOrder(order Order, reverse bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = order
	l.reverse = reverse
	l.resort()
	l.reindex()
}

// Entries returns a snapshot slice of the current entries in order.
func (l *List) Entries() []*imageio.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*imageio.Image, len(l.entries))
	copy(out, l.entries)
	return out
}

// Load appends each file source and the files of each directory source
// (in lexicographic order), descending depth-first into subdirectories
// only when recursive is set, then reorders the whole list per the
// current order/reverse.
func (l *List) Load(sources []string, recursive bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, src := range sources {
		fi, err := os.Stat(src)
		if err != nil {
			continue // FS error kind: missing/unreadable sources are skipped.
		}
		if fi.IsDir() {
			l.loadDir(src, recursive)
			continue
		}
		l.insertUnordered(src)
	}
	l.resort()
	l.reindex()
	return nil
}

func (l *List) loadDir(dir string, recursive bool) {
	names, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Name() < names[j].Name() })
	for _, ent := range names {
		full := filepath.Join(dir, ent.Name())
		if ent.IsDir() {
			if recursive {
				l.loadDir(full, recursive)
			}
			continue
		}
		l.insertUnordered(full)
	}
}

// insertUnordered appends path to the tail if not already present.
// Callers must hold the exclusive lock.
func (l *List) insertUnordered(path string) {
	if _, ok := l.index[path]; ok {
		return // Duplicates are suppressed at insertion.
	}
	img := imageio.Create(path)
	img.ParentDir = filepath.Dir(path)
	l.entries = append(l.entries, img)
	l.index[path] = len(l.entries) - 1
}

// Add inserts path either at the tail (ordered=false) or at its sorted
// position (ordered=true). It reports whether an entry was added (false
// if path is already present).
func (l *List) Add(path string, ordered bool) (*imageio.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.index[path]; ok {
		return nil, false
	}
	l.insertUnordered(path)
	if ordered {
		l.resort()
	}
	l.reindex()
	return l.entries[l.index[path]], true
}

// Remove unlinks entry and returns the neighbor in the given direction
// (forward = true for Next, false for Prev), or nil if the list becomes
// empty.
func (l *List) Remove(entry *imageio.Image, forward bool) *imageio.Image {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[entry.Source]
	if !ok {
		return nil
	}
	var neighbor *imageio.Image
	if len(l.entries) > 1 {
		if forward {
			ni := i + 1
			if ni >= len(l.entries) {
				ni = i - 1
			}
			neighbor = l.entries[ni]
		} else {
			pi := i - 1
			if pi < 0 {
				pi = i + 1
			}
			neighbor = l.entries[pi]
		}
	}

	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	delete(l.index, entry.Source)
	l.reindex()
	if neighbor == entry {
		return nil
	}
	return neighbor
}

// reindex assigns each entry's Index field to its 0-based position.
// Callers must hold the exclusive lock.
func (l *List) reindex() {
	l.index = make(map[string]int, len(l.entries))
	for i, img := range l.entries {
		img.Index = i
		l.index[img.Source] = i
	}
}
