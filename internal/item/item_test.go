package item

import "testing"

func TestTagPayloadRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		tag     Tag
		payload uint64
	}{
		{"list handle zero", List, 0},
		{"map handle large", Map, (uint64(1) << 55) - 1},
		{"int64 slot index", Int64, 12345},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			it := Make(tc.tag, tc.payload)
			if got := it.Tag(); got != tc.tag {
				t.Errorf("Tag() = %v, want %v", got, tc.tag)
			}
			if got := it.Payload(); got != tc.payload {
				t.Errorf("Payload() = %d, want %d", got, tc.payload)
			}
		})
	}
}

func TestIsContainer(t *testing.T) {
	testCases := []struct {
		tag  Tag
		want bool
	}{
		{Null, false},
		{Int, false},
		{Decimal, false},
		{List, true},
		{Map, true},
		{Element, true},
		{Any, true},
	}
	for _, tc := range testCases {
		if got := tc.tag.IsContainer(); got != tc.want {
			t.Errorf("%s.IsContainer() = %v, want %v", tc.tag, got, tc.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	testCases := []struct {
		name string
		it   Item
		want bool
	}{
		{"null is falsy", NullItem, false},
		{"undefined is falsy", UndefinedItem, false},
		{"error is falsy", ErrorItem, false},
		{"bool true", MakeBool(true), true},
		{"bool false", MakeBool(false), false},
		{"int zero", MakeInt(0), false},
		{"int nonzero", MakeInt(42), true},
		{"string (container) truthy", Make(String, 0), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.it.Truthy(); got != tc.want {
				t.Errorf("Truthy() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSafeBoolPreservesError(t *testing.T) {
	if got := SafeBool(ErrorItem); got.Tag() != Error {
		t.Errorf("SafeBool(ERROR) tag = %v, want ERROR", got.Tag())
	}
	if got := SafeBool(MakeInt(7)); got.Tag() != Bool || !got.BoolValue() {
		t.Errorf("SafeBool(7) = %v, want BOOL(true)", got)
	}
}

func TestTristate(t *testing.T) {
	if got := Tristate(true, false); got.Tag() != Bool || !got.BoolValue() {
		t.Errorf("Tristate(true,false) = %v, want BOOL(true)", got)
	}
	if got := Tristate(false, true); !got.IsError() {
		t.Errorf("Tristate(_,true) = %v, want ERROR", got)
	}
}
