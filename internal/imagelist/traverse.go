package imagelist

import "github.com/swayview/swayview/internal/imageio"

// Pos enumerates the named traversal directions for Get.
type Pos int

const (
	First Pos = iota
	Last
	Next
	Prev
	NextParent
	PrevParent
	RandomPos
)

// Get resolves a positional traversal from entry `from`. It returns nil
// if the list is empty or no qualifying entry exists (e.g. NextParent
// with only one parent directory present, whatever the loop setting).
func (l *List) Get(from *imageio.Image, pos Pos) *imageio.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.entries)
	if n == 0 {
		return nil
	}
	switch pos {
	case First:
		return l.entries[0]
	case Last:
		return l.entries[n-1]
	case Next:
		return l.step(from, 1)
	case Prev:
		return l.step(from, -1)
	case NextParent:
		return l.stepParent(from, 1)
	case PrevParent:
		return l.stepParent(from, -1)
	case RandomPos:
		if l.rng == nil {
			return l.entries[0]
		}
		return l.entries[l.rng.Intn(n)]
	default:
		return nil
	}
}

// GetDistance jumps by a signed distance from `from`, clamping or
// wrapping at the ends depending on l.loop.
func (l *List) GetDistance(from *imageio.Image, dist int) *imageio.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.step(from, dist)
}

// step returns the entry dist positions away from `from`, wrapping
// around the ends when l.loop is set. Callers must hold at least the
// shared lock.
func (l *List) step(from *imageio.Image, dist int) *imageio.Image {
	n := len(l.entries)
	if n == 0 {
		return nil
	}
	i, ok := l.index[from.Source]
	if !ok {
		return nil
	}
	ni := i + dist
	if l.loop {
		ni = ((ni % n) + n) % n
	} else {
		if ni < 0 {
			ni = 0
		}
		if ni >= n {
			ni = n - 1
		}
	}
	return l.entries[ni]
}

// stepParent walks in direction dir (+1/-1) until an entry with a
// different ParentDir than `from` is found, wrapping around the list
// end once; it returns nil if no such entry exists.
func (l *List) stepParent(from *imageio.Image, dir int) *imageio.Image {
	n := len(l.entries)
	if n == 0 {
		return nil
	}
	i, ok := l.index[from.Source]
	if !ok {
		return nil
	}
	start := i
	for steps := 1; steps <= n; steps++ {
		i = ((i+dir)%n + n) % n
		if i == start {
			return nil
		}
		if l.entries[i].ParentDir != from.ParentDir {
			return l.entries[i]
		}
	}
	return nil
}

// Distance returns the signed step count from a to b along the current
// order, or 0 if either is absent.
func (l *List) Distance(a, b *imageio.Image) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ia, ok1 := l.index[a.Source]
	ib, ok2 := l.index[b.Source]
	if !ok1 || !ok2 {
		return 0
	}
	return ib - ia
}
