package typesystem

import "testing"

func TestTypeListIndicesAreModuleLocal(t *testing.T) {
	a := NewTypeList()
	b := NewTypeList()

	idxA := a.Add(TCon{Name: "String"})
	idxB := b.Add(TCon{Name: "Int"})

	if idxA != idxB {
		t.Fatalf("expected identical indices across independent lists, got %d and %d", idxA, idxB)
	}

	gotA, ok := a.At(idxA)
	if !ok || gotA.String() != "String" {
		t.Errorf("a.At(%d) = %v, want String", idxA, gotA)
	}
	gotB, ok := b.At(idxB)
	if !ok || gotB.String() != "Int" {
		t.Errorf("b.At(%d) = %v, want Int", idxB, gotB)
	}
}

func TestWithTypeListRestoresPrevious(t *testing.T) {
	ctx := NewContext()
	original := ctx.Active
	swapped := NewTypeList()
	swapped.Add(TCon{Name: "Pair"})

	var sawSwapped bool
	ctx.WithTypeList(swapped, func() {
		sawSwapped = ctx.Active == swapped
	})

	if !sawSwapped {
		t.Errorf("WithTypeList did not swap Active during fn")
	}
	if ctx.Active != original {
		t.Errorf("WithTypeList did not restore Active after fn")
	}
}

func TestTypeMapShapeAsRecord(t *testing.T) {
	shape := TypeMapShape{
		Name: "Pair",
		Fields: []FieldShape{
			{Name: "a", Type: TCon{Name: "Int"}},
			{Name: "b", Type: TCon{Name: "String"}},
		},
	}
	rec := shape.AsRecord()
	if len(rec.Fields) != 2 {
		t.Fatalf("AsRecord() has %d fields, want 2", len(rec.Fields))
	}
	if rec.Fields["b"].String() != "String" {
		t.Errorf("field b = %v, want String", rec.Fields["b"])
	}
}
