package eval

import (
	"errors"
	"math/big"
	"testing"
)

func TestValue_EqualCrossVariant(t *testing.T) {
	t.Run("different kinds are unequal", func(t *testing.T) {
		if NewString("1").Equal(NewIntegerFromInt64(1)) {
			t.Fatal("string and integer should never be equal")
		}
	})

	t.Run("file equals string of the same path", func(t *testing.T) {
		if !NewFile("/tmp/x").Equal(NewString("/tmp/x")) {
			t.Fatal("a File and a String naming the same path should be equal")
		}
	})

	t.Run("streams are never equal, even to themselves", func(t *testing.T) {
		_, recv := NewRowStream(nil)
		s := NewTableStream(recv)
		if s.Equal(s) {
			t.Fatal("table streams must never compare equal")
		}
	})
}

func TestValue_OrderingSameVariantOnly(t *testing.T) {
	t.Run("integers order numerically", func(t *testing.T) {
		less, err := NewIntegerFromInt64(1).Less(NewIntegerFromInt64(2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !less {
			t.Fatal("1 should be less than 2")
		}
	})

	t.Run("cross-kind ordering errors", func(t *testing.T) {
		_, err := NewIntegerFromInt64(1).Less(NewString("1"))
		if !errors.Is(err, ErrInvalidData) {
			t.Fatalf("expected an ErrInvalidData-wrapped error, got %v", err)
		}
	})
}

func TestValue_HashAcceptsHashableAndRejectsFloat(t *testing.T) {
	t.Run("string hashes without error", func(t *testing.T) {
		if _, err := NewString("x").Hash(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("float cannot be hashed", func(t *testing.T) {
		_, err := NewFloat(1.5).Hash()
		if err == nil {
			t.Fatal("expected float hashing to be rejected")
		}
	})

	t.Run("equal hashable values hash the same", func(t *testing.T) {
		a, err := NewIntegerFromInt64(42).Hash()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := NewInteger(big.NewInt(42)).Hash()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a != b {
			t.Fatal("equal integers must hash identically")
		}
	})
}

func TestValue_CloneRejectsTableStream(t *testing.T) {
	_, recv := NewRowStream(nil)
	s := NewTableStream(recv)
	if _, err := s.Clone(); err == nil {
		t.Fatal("cloning a table stream must be rejected")
	}
}

func TestValue_CastStringToInteger(t *testing.T) {
	v, err := NewString("7").Cast(KindInteger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.AsInteger()
	if !ok || i.Int64() != 7 {
		t.Fatalf("expected integer 7, got %v", v)
	}
}

func TestValue_FieldAccess(t *testing.T) {
	t.Run("list supports negative index", func(t *testing.T) {
		l := NewList(NewListData(TInteger, []Value{
			NewIntegerFromInt64(10), NewIntegerFromInt64(20), NewIntegerFromInt64(30),
		}))
		v, err := l.Field(NewIntegerFromInt64(-1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		i, _ := v.AsInteger()
		if i.Int64() != 30 {
			t.Fatalf("expected last element 30, got %v", v)
		}
	})

	t.Run("struct field by name", func(t *testing.T) {
		s := NewStructData([]string{"x"}, map[string]Value{"x": NewIntegerFromInt64(5)})
		v, err := NewStruct(s).Field(NewString("x"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		i, _ := v.AsInteger()
		if i.Int64() != 5 {
			t.Fatalf("expected 5, got %v", v)
		}
	})
}

func TestValue_MaterializeDrainsStream(t *testing.T) {
	sender, receiver := NewRowStream([]ColumnType{{Name: "n", Type: TInteger}})
	go func() {
		sender.Send(Row{NewIntegerFromInt64(1)})
		sender.Send(Row{NewIntegerFromInt64(2)})
		sender.Close()
	}()

	v, err := NewTableStream(receiver).Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, ok := v.AsTable()
	if !ok {
		t.Fatalf("expected a materialized table, got %v", v.Kind())
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
}
