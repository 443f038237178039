package action

import "testing"

func TestParseSequenceSplitsOnSemicolon(t *testing.T) {
	got := ParseSequence("step_right;step_right;scale:2.0")
	want := []Action{
		{Tag: StepRight},
		{Tag: StepRight},
		{Tag: Scale, Param: "2.0"},
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseSequenceSkipsEmptySegments(t *testing.T) {
	got := ParseSequence("next_file;;prev_file;")
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
}

func TestDispatcherRunExecutesInOrder(t *testing.T) {
	d := NewDispatcher()
	var order []Tag
	d.Register(NextFile, func(a Action) error { order = append(order, a.Tag); return nil })
	d.Register(StepRight, func(a Action) error { order = append(order, a.Tag); return nil })

	if err := d.Run("next_file;step_right"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 2 || order[0] != NextFile || order[1] != StepRight {
		t.Fatalf("order = %v, want [next_file step_right]", order)
	}
}

func TestDispatcherRunStopsAtFirstError(t *testing.T) {
	d := NewDispatcher()
	var ran bool
	wantErr := &testError{"boom"}
	d.Register(NextFile, func(a Action) error { return wantErr })
	d.Register(StepRight, func(a Action) error { ran = true; return nil })

	if err := d.Run("next_file;step_right"); err != wantErr {
		t.Fatalf("Run error = %v, want %v", err, wantErr)
	}
	if ran {
		t.Fatalf("step_right handler ran after an earlier action failed")
	}
}

func TestDispatcherDispatchUnregisteredTagIsNoop(t *testing.T) {
	d := NewDispatcher()
	if err := d.Dispatch(Action{Tag: Help}); err != nil {
		t.Fatalf("Dispatch of unregistered tag returned %v, want nil", err)
	}
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
