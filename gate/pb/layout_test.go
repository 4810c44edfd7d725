package pb

import (
	"errors"
	"strings"
	"testing"
)

func TestLayout(t *testing.T) {
	s := character.Layout()
	for _, want := range []string{"character(1) 23 bytes", "<length>", "<id>", "string[16] name", "19     4 uint32     level"} {
		if !strings.Contains(s, want) {
			t.Errorf("layout missing %q:\n%s", want, s)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		t    FieldType
		in   string
		want interface{}
	}{
		{String, "abc", "abc"},
		{Float32, "1.5", float32(1.5)},
		{Float64, "-2.25", -2.25},
		{Int8, "-128", int64(-128)},
		{Int32, "0x10", int64(16)},
		{UInt16, "65535", uint64(65535)},
		{Boolean, "true", true},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.t, tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseValue(%s, %q) = %#v, %v", tt.t, tt.in, got, err)
		}
	}
	for _, bad := range []struct {
		t  FieldType
		in string
	}{{Int8, "128"}, {UInt8, "-1"}, {Boolean, "yes"}, {Float64, "x"}} {
		if _, err := ParseValue(bad.t, bad.in); !errors.Is(err, ErrEncoding) {
			t.Errorf("ParseValue(%s, %q): %v", bad.t, bad.in, err)
		}
	}
}
