// Package action implements the command vocabulary of section 4.9: an
// enumerated Action tag with a free-form parameter, `;`-delimited
// sequences, and the Dispatcher that executes them against a set of
// named handlers.
package action

import "strings"

// Tag enumerates every recognized action.
type Tag string

const (
	FirstFile        Tag = "first_file"
	LastFile         Tag = "last_file"
	PrevFile         Tag = "prev_file"
	NextFile         Tag = "next_file"
	PrevDir          Tag = "prev_dir"
	NextDir          Tag = "next_dir"
	RandFile         Tag = "rand_file"
	SkipFile         Tag = "skip_file"
	PrevFrame        Tag = "prev_frame"
	NextFrame        Tag = "next_frame"
	Animation        Tag = "animation"
	Slideshow        Tag = "slideshow"
	Fullscreen       Tag = "fullscreen"
	Mode             Tag = "mode"
	StepLeft         Tag = "step_left"
	StepRight        Tag = "step_right"
	StepUp           Tag = "step_up"
	StepDown         Tag = "step_down"
	PageUp           Tag = "page_up"
	PageDown         Tag = "page_down"
	Zoom             Tag = "zoom"
	Scale            Tag = "scale"
	KeepZoom         Tag = "keep_zoom"
	RotateLeft       Tag = "rotate_left"
	RotateRight      Tag = "rotate_right"
	FlipVertical     Tag = "flip_vertical"
	FlipHorizontal   Tag = "flip_horizontal"
	Reload           Tag = "reload"
	Antialiasing     Tag = "antialiasing"
	Info             Tag = "info"
	Exec             Tag = "exec"
	Export           Tag = "export"
	Status           Tag = "status"
	Exit             Tag = "exit"
	Help             Tag = "help"
	None             Tag = "none"
)

// Action is a single enumerated command with an optional parameter,
// e.g. Action{Tag: Scale, Param: "2.0"}.
type Action struct {
	Tag   Tag
	Param string
}

// ParseSequence splits a `;`-delimited action string into individual
// actions. Each segment may carry a parameter after a colon, e.g.
// "scale:2.0;step_right".
func ParseSequence(s string) []Action {
	parts := strings.Split(s, ";")
	actions := make([]Action, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tag, param, _ := strings.Cut(p, ":")
		actions = append(actions, Action{Tag: Tag(strings.TrimSpace(tag)), Param: strings.TrimSpace(param)})
	}
	return actions
}

// Handler executes a single action and returns an error if the action
// failed to apply (unrecognized tag, out-of-range parameter, etc).
type Handler func(Action) error

// Dispatcher holds the handlers for every recognized tag and executes
// sequences to completion in order, per section 5's ordering guarantee
// that a sequence runs before the next event is processed.
type Dispatcher struct {
	handlers map[Tag]Handler
}

// NewDispatcher returns a Dispatcher with no handlers registered;
// unregistered tags are no-ops when dispatched.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Tag]Handler)}
}

// Register binds a handler to a tag, replacing any prior binding.
func (d *Dispatcher) Register(tag Tag, h Handler) {
	d.handlers[tag] = h
}

// Dispatch executes a single action via its registered handler. It is
// a no-op returning nil if no handler is registered for the tag.
func (d *Dispatcher) Dispatch(a Action) error {
	h, ok := d.handlers[a.Tag]
	if !ok {
		return nil
	}
	return h(a)
}

// Run parses and executes a `;`-delimited action sequence in order,
// stopping at the first handler error.
func (d *Dispatcher) Run(sequence string) error {
	for _, a := range ParseSequence(sequence) {
		if err := d.Dispatch(a); err != nil {
			return err
		}
	}
	return nil
}
