package imagelist

import (
	"math/rand"
	"sort"
	"time"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/swayview/swayview/internal/imageio"
)

var pathCollator = collate.New(language.Und)

// resort reorders l.entries according to l.order/l.reverse. Callers
// must hold the exclusive lock. Does not reindex; callers do that.
func (l *List) resort() {
	switch l.order {
	case OrderNone:
		return
	case OrderAlpha:
		sort.SliceStable(l.entries, func(i, j int) bool {
			return pathCollator.CompareString(l.entries[i].Source, l.entries[j].Source) < 0
		})
	case OrderNumeric:
		sort.SliceStable(l.entries, func(i, j int) bool {
			return numericLess(l.entries[i].Source, l.entries[j].Source)
		})
	case OrderMtime:
		sort.SliceStable(l.entries, func(i, j int) bool {
			a, b := l.entries[i], l.entries[j]
			if a.FileTime.Equal(b.FileTime) {
				return a.Source < b.Source
			}
			return a.FileTime.Before(b.FileTime)
		})
	case OrderSize:
		sort.SliceStable(l.entries, func(i, j int) bool {
			a, b := l.entries[i], l.entries[j]
			if a.FileSize == b.FileSize {
				return a.Source < b.Source
			}
			return a.FileSize < b.FileSize
		})
	case OrderRandom:
		l.shuffleOnce()
	}
	if l.reverse && l.order != OrderRandom {
		reverseEntries(l.entries)
	}
}

func reverseEntries(e []*imageio.Image) {
	for i, j := 0, len(e)-1; i < j; i, j = i+1, j-1 {
		e[i], e[j] = e[j], e[i]
	}
}

// shuffleOnce Fisher-Yates shuffles l.entries using a generator seeded
// once per List, from the current time, on its first shuffle.
func (l *List) shuffleOnce() {
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := l.rng
	for i := len(l.entries) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		l.entries[i], l.entries[j] = l.entries[j], l.entries[i]
	}
}

// numericLess compares two paths treating maximal decimal runs as
// integers and falling back to lexicographic order on ties, so
// "img2.png" sorts before "img10.png".
func numericLess(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ra) && j < len(rb) {
		ca, cb := ra[i], rb[j]
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			na, ni := readDigitRun(ra, i)
			nb, nj := readDigitRun(rb, j)
			if na != nb {
				return na < nb
			}
			i, j = ni, nj
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	if len(ra)-i != len(rb)-j {
		return len(ra)-i < len(rb)-j
	}
	return a < b
}

// readDigitRun reads the maximal decimal run starting at i, returning
// its integer value and the index just past it.
func readDigitRun(r []rune, i int) (int64, int) {
	start := i
	for i < len(r) && unicode.IsDigit(r[i]) {
		i++
	}
	var v int64
	for _, c := range r[start:i] {
		v = v*10 + int64(c-'0')
	}
	return v, i
}
