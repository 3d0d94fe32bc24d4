package conditions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnyOf(t *testing.T) {
	tests := []struct {
		name   string
		in     []bool
		want   bool
		result Result
	}{
		{name: "empty", in: nil, want: false, result: Result{}},
		{name: "one true", in: []bool{false, true, false}, want: true, result: Result{Pass: 1, Count: 3}},
		{name: "all false", in: []bool{false, false}, want: false, result: Result{Pass: 0, Count: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, r := AnyOf(tt.in...)
			if got != tt.want {
				t.Fatalf("AnyOf(%v) = %v; want %v", tt.in, got, tt.want)
			}
			if diff := cmp.Diff(tt.result, r); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllOf(t *testing.T) {
	if ok, _ := AllOf(); ok {
		t.Fatalf("AllOf() with no children must fail")
	}
	if ok, r := AllOf(true, true); !ok || r.Count != 2 {
		t.Fatalf("AllOf(true, true) = %v %+v", ok, r)
	}
	if ok, _ := AllOf(true, false); ok {
		t.Fatalf("AllOf(true, false) must fail")
	}
}

func TestEvaluator_AnyOfTraces(t *testing.T) {
	tracer := &recordingTracer{}
	e := New(nil, tracer)

	ok, r := e.AnyOf(false, true, false)
	if !ok || r.Count != 3 {
		t.Fatalf("AnyOf = %v %+v", ok, r)
	}
	if diff := cmp.Diff([]string{"AnyOf: results: [false true false]"}, tracer.messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"AnyOf 1/3 true"}, tracer.results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestMapBinder(t *testing.T) {
	target := map[string]any{"Name": "web", "empty": nil}
	b := MapBinder{}

	if v, ok := b.GetField(target, "name", false); !ok || v != "web" {
		t.Fatalf("case-insensitive lookup failed: %v %v", v, ok)
	}
	if _, ok := b.GetField(target, "name", true); ok {
		t.Fatalf("case-sensitive lookup should fail")
	}
	if v, ok := b.GetField(target, "empty", true); !ok || v != nil {
		t.Fatalf("present nil field should be found: %v %v", v, ok)
	}
	if _, ok := b.GetField("not a map", "name", false); ok {
		t.Fatalf("non-map target should not bind")
	}
}
