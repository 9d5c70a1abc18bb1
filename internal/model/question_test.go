package model

import (
	"encoding/json"
	"sort"
	"testing"
)

func TestAnswerKeyUnmarshal(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantKeys  []string
		wantMulti bool
		wantErr   bool
	}{
		{"single key", `"B"`, []string{"B"}, false, false},
		{"multi key", `["A","C"]`, []string{"A", "C"}, true, false},
		{"empty array is still multi", `[]`, []string{}, true, false},
		{"number is invalid", `42`, nil, false, true},
		{"object is invalid", `{"a":1}`, nil, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var key AnswerKey
			err := json.Unmarshal([]byte(tc.input), &key)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", key)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key.Multi != tc.wantMulti {
				t.Errorf("Multi = %v, want %v", key.Multi, tc.wantMulti)
			}
			if len(key.Keys) != len(tc.wantKeys) {
				t.Fatalf("Keys = %v, want %v", key.Keys, tc.wantKeys)
			}
			for i := range tc.wantKeys {
				if key.Keys[i] != tc.wantKeys[i] {
					t.Errorf("Keys = %v, want %v", key.Keys, tc.wantKeys)
				}
			}
		})
	}
}

func TestAnswerKeyMarshalRoundTrip(t *testing.T) {
	for _, input := range []string{`"B"`, `["A","C"]`} {
		var key AnswerKey
		if err := json.Unmarshal([]byte(input), &key); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		out, err := json.Marshal(key)
		if err != nil {
			t.Fatalf("marshal %s: %v", input, err)
		}
		if string(out) != input {
			t.Errorf("round trip of %s produced %s", input, out)
		}
	}
}

func TestAnswerToggle(t *testing.T) {
	var a Answer

	a = a.Toggle("A")
	if !a.Contains("A") {
		t.Fatal("A should be selected after first toggle")
	}

	a = a.Toggle("C")
	if len(a) != 2 {
		t.Fatalf("expected 2 selected keys, got %v", a)
	}

	a = a.Toggle("A")
	if a.Contains("A") || len(a) != 1 {
		t.Fatalf("A should be removed after second toggle, got %v", a)
	}
}

func TestAnswerToggleDoesNotMutateReceiver(t *testing.T) {
	a := Answer{"A", "B"}
	_ = a.Toggle("B")
	_ = a.Toggle("C")

	got := append([]string(nil), a...)
	sort.Strings(got)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("receiver mutated: %v", a)
	}
}

func TestAnswerEqualsSet(t *testing.T) {
	testCases := []struct {
		name   string
		answer Answer
		keys   []string
		want   bool
	}{
		{"same order", Answer{"A", "C"}, []string{"A", "C"}, true},
		{"reversed order", Answer{"C", "A"}, []string{"A", "C"}, true},
		{"subset is not equal", Answer{"A"}, []string{"A", "C"}, false},
		{"superset is not equal", Answer{"A", "B", "C"}, []string{"A", "C"}, false},
		{"empty vs empty", Answer{}, []string{}, true},
		{"case sensitive", Answer{"a"}, []string{"A"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.answer.EqualsSet(tc.keys); got != tc.want {
				t.Errorf("EqualsSet(%v, %v) = %v, want %v", tc.answer, tc.keys, got, tc.want)
			}
		})
	}
}
