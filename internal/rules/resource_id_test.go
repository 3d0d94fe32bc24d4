package rules

import "testing"

func TestParseResourceId(t *testing.T) {
	tests := []struct {
		in        string
		wantScope string
		wantName  string
		wantStr   string
	}{
		{in: `TestModule\rule-001`, wantScope: "TestModule", wantName: "rule-001", wantStr: `TestModule\rule-001`},
		{in: "rule-001", wantScope: "", wantName: "rule-001", wantStr: "rule-001"},
		{in: ` .\Local.Rule `, wantScope: ".", wantName: "Local.Rule", wantStr: `.\Local.Rule`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id := ParseResourceId(tt.in)
			if id.Scope != tt.wantScope || id.Name != tt.wantName {
				t.Fatalf("ParseResourceId(%q) = %+v", tt.in, id)
			}
			if got := id.String(); got != tt.wantStr {
				t.Fatalf("String() = %q; want %q", got, tt.wantStr)
			}
		})
	}
}

func TestResourceId_EqualIgnoresCase(t *testing.T) {
	a := ParseResourceId(`TestModule\Rule-003`)
	b := NewResourceId("testmodule", "rule-003")
	if !a.Equal(b) {
		t.Fatalf("expected %v == %v", a, b)
	}
	if a.Equal(NewResourceId("OtherModule", "rule-003")) {
		t.Fatalf("expected scope mismatch to be unequal")
	}
}
