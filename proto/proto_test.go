package proto

import (
	"reflect"
	"testing"

	"github.com/liangmanlin/gostruct/gate/pb"
)

func TestLengths(t *testing.T) {
	tests := []struct {
		codec *pb.Codec
		want  int
	}{
		{Character, 23},
		{Login, 71},
		{Position, 18},
		{Status, 19},
	}
	for _, tt := range tests {
		t.Run(tt.codec.Name(), func(t *testing.T) {
			if tt.codec.TotalLength() != tt.want {
				t.Errorf("TotalLength() = %d want %d", tt.codec.TotalLength(), tt.want)
			}
		})
	}
}

func TestStructs(t *testing.T) {
	tests := []struct {
		codec *pb.Codec
		in    interface{}
		out   interface{}
	}{
		{Character, &CharacterMsg{Name: "Dustin", Level: 3}, &CharacterMsg{}},
		{Login, &LoginMsg{UniqueID: 42, Username: "hawkins", Password: "eleven"}, &LoginMsg{}},
		{Position, &PositionMsg{X: 1.5, Y: -2, Z: 0.25, Heading: -90, Moving: true}, &PositionMsg{}},
		{Status, &StatusMsg{HP: -5, MP: 300, Buff: -1, Flags: 0x81, Exp: 12.5}, &StatusMsg{}},
	}
	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.codec.Name(), func(t *testing.T) {
			buf, err := tt.codec.Pack(tt.in)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}
			id, _, err := r.Dispatch(buf)
			if err != nil || id != tt.codec.ID() {
				t.Fatalf("Dispatch = %d, %v", id, err)
			}
			if err = tt.codec.Unpack(buf, tt.out); err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			if !reflect.DeepEqual(tt.in, tt.out) {
				t.Errorf("got %+v want %+v", tt.out, tt.in)
			}
		})
	}
}

func TestAllOrdered(t *testing.T) {
	for i, c := range All() {
		if int(c.ID()) != i+1 {
			t.Errorf("codec %s has id %d at %d", c, c.ID(), i)
		}
	}
}
