package viewport

import (
	"sync"
	"time"
)

// animation drives the single-shot timer of section 4.6: when
// frame_count > 1 and any frame has a nonzero duration, a timer is
// armed for the current frame's duration; on fire it advances the
// frame, invokes the callback, and re-arms.
type animation struct {
	mu       sync.Mutex
	timer    *time.Timer
	running  bool
	frame    int
	count    int
	duration func(frame int) time.Duration
	onChange func(frame int)
}

// AnimInit binds the viewport's animation state to a frame count, a
// per-frame duration lookup, and a frame-change callback. Any running
// timer is stopped first.
func (v *Viewport) AnimInit(count int, duration func(frame int) time.Duration, onChange func(frame int)) {
	v.AnimCtl(false)
	v.anim = &animation{count: count, duration: duration, onChange: onChange}
}

// AnimCtl starts or stops the animation timer.
func (v *Viewport) AnimCtl(start bool) {
	if v.anim == nil {
		return
	}
	v.anim.mu.Lock()
	defer v.anim.mu.Unlock()
	if start {
		v.anim.armLocked()
	} else {
		v.anim.stopLocked()
	}
}

func (a *animation) armLocked() {
	if a.count <= 1 || a.running {
		return
	}
	d := a.duration(a.frame)
	if d <= 0 {
		return
	}
	a.running = true
	a.timer = time.AfterFunc(d, a.fire)
}

func (a *animation) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
	}
	a.running = false
}

func (a *animation) fire() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.frame = (a.frame + 1) % a.count
	frame := a.frame
	a.running = false
	cb := a.onChange
	a.mu.Unlock()

	if cb != nil {
		cb(frame)
	}

	a.mu.Lock()
	a.armLocked()
	a.mu.Unlock()
}
