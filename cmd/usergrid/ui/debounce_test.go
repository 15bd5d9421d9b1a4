package ui

import (
	"testing"
	"time"
)

func TestDebouncer_SingleCall(t *testing.T) {
	d := NewDebouncer(time.Millisecond)

	msg := d.Trigger("an")()
	dm, ok := msg.(debounceMsg)
	if !ok {
		t.Fatalf("expected debounceMsg, got %T", msg)
	}
	if !d.Current(dm) || dm.value != "an" {
		t.Errorf("expected current message with value an, got %+v", dm)
	}
}

func TestDebouncer_RapidCalls(t *testing.T) {
	d := NewDebouncer(time.Millisecond)

	var cmds []func() interface{}
	for _, v := range []string{"a", "an", "ann"} {
		cmd := d.Trigger(v)
		cmds = append(cmds, func() interface{} { return cmd() })
	}

	current := 0
	for _, c := range cmds {
		dm := c().(debounceMsg)
		if d.Current(dm) {
			current++
			if dm.value != "ann" {
				t.Errorf("expected last value ann, got %s", dm.value)
			}
		}
	}
	if current != 1 {
		t.Errorf("Expected 1 current message for rapid succession, got %d", current)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(time.Millisecond)

	dm := d.Trigger("x")().(debounceMsg)
	d.Cancel()

	if d.Current(dm) {
		t.Error("cancelled window should not be current")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	if d := NewDebouncer(0); d.duration != DefaultSearchDebounce {
		t.Errorf("expected default duration, got %v", d.duration)
	}
}
