package core

import (
	"testing"
)

func TestEmitEventDisabled(t *testing.T) {
	state := NewAppState()
	rec := &RecordingEmitter{}
	state.Emitter = rec
	state.DisableEvents = true

	state.EmitEvent(EventThemeChanged, "dark")

	if len(rec.Events("")) != 0 {
		t.Error("expected no events while DisableEvents is set")
	}
}

func TestEmitEventRecorded(t *testing.T) {
	state := NewAppState()
	rec := &RecordingEmitter{}
	state.SetEmitter(rec)

	state.EmitEvent(EventThemeChanged, "dark")
	state.EmitEvent(EventThemeApply, "light")

	changed := rec.Events(EventThemeChanged)
	if len(changed) != 1 {
		t.Fatalf("expected 1 %s event, got %d", EventThemeChanged, len(changed))
	}
	if changed[0].Data != "dark" {
		t.Errorf("expected payload dark, got %v", changed[0].Data)
	}
	if len(rec.Events("")) != 2 {
		t.Errorf("expected 2 events total, got %d", len(rec.Events("")))
	}
}

func TestEmitEventNilEmitter(t *testing.T) {
	state := NewAppState()
	// Must not panic
	state.EmitEvent(EventThemeChanged, nil)
}

func TestInvalidSelectionErrorMessage(t *testing.T) {
	err := &InvalidSelectionError{Value: "sepia"}
	if err.Error() != `invalid theme selection: "sepia"` {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
