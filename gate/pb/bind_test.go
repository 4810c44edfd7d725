package pb

import (
	"errors"
	"strings"
	"testing"
)

type characterMsg struct {
	Name    string `pb:"name"`
	Level   uint32
	Ignored int `pb:"-"`
	private int
}

func TestPackUnpack(t *testing.T) {
	in := characterMsg{Name: "Dustin", Level: 53, Ignored: 4}
	buf, err := character.Pack(&in)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 23 {
		t.Fatalf("len %d", len(buf))
	}
	var out characterMsg
	if err = character.Unpack(buf, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != in.Name || out.Level != in.Level || out.Ignored != 0 {
		t.Errorf("got %+v", out)
	}
}

func TestPackWidensStructTypes(t *testing.T) {
	type wide struct {
		Name  []byte
		Level int64
	}
	buf, err := character.Pack(wide{Name: []byte("w"), Level: 70000})
	if err != nil {
		t.Fatal(err)
	}
	var out wide
	if err = character.Unpack(buf, &out); err != nil {
		t.Fatal(err)
	}
	if string(out.Name) != "w" || out.Level != 70000 {
		t.Errorf("got %+v", out)
	}
}

func TestPackMissingField(t *testing.T) {
	type partial struct {
		Name string
	}
	_, err := character.Pack(partial{Name: "x"})
	if !errors.Is(err, ErrEncoding) || !strings.Contains(err.Error(), "level") {
		t.Errorf("got %v", err)
	}
}

func TestUnpackNarrowTarget(t *testing.T) {
	type narrow struct {
		Name  string
		Level uint8
	}
	buf, _ := character.Serialize(Object{"name": "n", "level": uint32(300)})
	var out narrow
	if err := character.Unpack(buf, &out); !errors.Is(err, ErrEncoding) {
		t.Errorf("expected encoding error, got %v", err)
	}
}

func TestBindRejectsNonStruct(t *testing.T) {
	if _, err := character.Pack(5); !errors.Is(err, ErrEncoding) {
		t.Errorf("Pack(5): %v", err)
	}
	var p *characterMsg
	if _, err := character.Pack(p); !errors.Is(err, ErrEncoding) {
		t.Errorf("Pack(nil): %v", err)
	}
	var out characterMsg
	if err := character.FromObject(Object{}, out); !errors.Is(err, ErrEncoding) {
		t.Errorf("FromObject(value): %v", err)
	}
}
