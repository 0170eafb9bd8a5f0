package types

import "testing"

func TestLocationKeys(t *testing.T) {
	tests := []struct {
		loc Location
		key string
	}{
		{Register{Name: 14}, "r14"},
		{Stack{Offset: 82}, "s82"},
		{Stack{Offset: -8}, "s-8"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := tc.loc.JSONKey(); got != tc.key {
				t.Errorf("JSONKey() = %q, want %q", got, tc.key)
			}
			parsed, err := ParseLocation(tc.key)
			if err != nil {
				t.Fatalf("ParseLocation: %v", err)
			}
			if parsed != tc.loc {
				t.Errorf("ParseLocation(%q) = %v, want %v", tc.key, parsed, tc.loc)
			}
		})
	}
}

func TestParseLocationErrors(t *testing.T) {
	for _, key := range []string{"", "r", "x14", "rabc"} {
		if _, err := ParseLocation(key); err == nil {
			t.Errorf("ParseLocation(%q) succeeded, want error", key)
		}
	}
}

func TestVariableRoundTrip(t *testing.T) {
	v := &Variable{
		Typ:  &Pointer{TargetTypeName: "node"},
		Name: "head",
		User: true,
	}
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	decoded, err := DecodeVariable(data)
	if err != nil {
		t.Fatalf("DecodeVariable: %v", err)
	}
	if decoded.Name != v.Name || decoded.User != v.User {
		t.Errorf("round trip changed fields: %+v", decoded)
	}
	if decoded.Typ.Key() != v.Typ.Key() {
		t.Errorf("round trip changed type: %s", decoded.Typ.Key())
	}
	if got, want := decoded.String(), "node * head (U)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
