package domain

import "testing"

func TestValidActivityKind(t *testing.T) {
	for _, k := range []ActivityKind{ActivityNote, ActivityCall, ActivityEmail} {
		if !ValidActivityKind(k) {
			t.Errorf("%q should be valid", k)
		}
	}
	for _, k := range []ActivityKind{"", "meeting", "Note", "NOTE"} {
		if ValidActivityKind(k) {
			t.Errorf("%q should be invalid", k)
		}
	}
}
