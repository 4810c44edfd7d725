package pb

import (
	"errors"
	"testing"

	"go.uber.org/multierr"
)

func TestFieldTypeWidth(t *testing.T) {
	tests := []struct {
		t     FieldType
		width int
		fixed bool
	}{
		{String, 0, false},
		{Float32, 4, true},
		{Float64, 8, true},
		{Int8, 1, true},
		{Int16, 2, true},
		{Int32, 4, true},
		{UInt8, 1, true},
		{UInt16, 2, true},
		{UInt32, 4, true},
		{Boolean, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.t.String(), func(t *testing.T) {
			w, fixed := tt.t.Width()
			if w != tt.width || fixed != tt.fixed {
				t.Errorf("Width() = %d,%v want %d,%v", w, fixed, tt.width, tt.fixed)
			}
		})
	}
}

func TestFieldTypeUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown type")
		}
	}()
	FieldType(200).Width()
}

func TestBuildLayout(t *testing.T) {
	c, err := NewStruct(7).
		String("name", 16).
		Float32("f").
		Float64("d").
		Int8("i8").
		Int16("i16").
		Int32("i32").
		UInt8("u8").
		UInt16("u16").
		UInt32("u32").
		Boolean("ok").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.ID() != 7 {
		t.Errorf("ID() = %d", c.ID())
	}
	want := PreambleSize + 16 + 4 + 8 + 1 + 2 + 4 + 1 + 2 + 4 + 1
	if c.TotalLength() != want {
		t.Errorf("TotalLength() = %d want %d", c.TotalLength(), want)
	}
	offset := PreambleSize
	for _, f := range c.Fields() {
		if f.Offset != offset {
			t.Errorf("field %s offset %d want %d", f.Name, f.Offset, offset)
		}
		offset += f.Width
	}
}

func TestUnsignedEntryPointsKeepUnsignedTypes(t *testing.T) {
	c := NewStruct(1).UInt8("a").UInt16("b").UInt32("c").MustBuild()
	for name, want := range map[string]FieldType{"a": UInt8, "b": UInt16, "c": UInt32} {
		f, ok := c.Field(name)
		if !ok || f.Type != want {
			t.Errorf("field %s type %s want %s", name, f.Type, want)
		}
	}
}

func TestBuildSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Struct
		count int
	}{
		{"duplicate", func() *Struct { return NewStruct(1).Int8("a").Int16("a") }, 1},
		{"empty name", func() *Struct { return NewStruct(1).Boolean("") }, 1},
		{"zero capacity", func() *Struct { return NewStruct(1).String("s", 0) }, 1},
		{"negative capacity", func() *Struct { return NewStruct(1).String("s", -3) }, 1},
		{"unknown type", func() *Struct { return NewStruct(1).Field("x", FieldType(99), 4) }, 1},
		{"wrong width", func() *Struct { return NewStruct(1).Field("x", Int32, 2) }, 1},
		{"several", func() *Struct { return NewStruct(1).Int8("a").Int8("a").String("b", 0) }, 2},
		{"too long", func() *Struct { return NewStruct(1).String("a", MaxLength) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build().Build()
			if c != nil {
				t.Fatal("expected no codec")
			}
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("expected schema error, got %v", err)
			}
			if n := len(multierr.Errors(err)); n != tt.count {
				t.Errorf("got %d errors want %d: %v", n, tt.count, err)
			}
		})
	}
}

func TestBuildTwice(t *testing.T) {
	s := NewStruct(3).Int8("a")
	if _, err := s.Build(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Build(); !errors.Is(err, ErrSchema) {
		t.Fatalf("second Build: %v", err)
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewStruct(1).String("s", 0).MustBuild()
}

func TestMaxLengthFits(t *testing.T) {
	c, err := NewStruct(1).String("a", MaxLength-PreambleSize).Build()
	if err != nil {
		t.Fatal(err)
	}
	buf, err := c.Serialize(Object{"a": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := PeekLength(buf); n != MaxLength || len(buf) != MaxLength {
		t.Errorf("length %d buf %d", n, len(buf))
	}
}
