package pb

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func newTestRegistry(t *testing.T) (*Registry, []*Codec) {
	codecs := []*Codec{
		NewStruct(1).Name("one").Int32("a").MustBuild(),
		NewStruct(2).Name("two").String("name", 8).Float64("score").Boolean("on").MustBuild(),
		NewStruct(3).Name("three").UInt16("x").MustBuild(),
	}
	r := NewRegistry()
	for _, c := range codecs {
		if err := r.Register(c.ID(), c); err != nil {
			t.Fatal(err)
		}
	}
	return r, codecs
}

func TestDispatch(t *testing.T) {
	r, codecs := newTestRegistry(t)
	in := Object{"name": "kit", "score": 9.5, "on": true}
	buf, err := codecs[1].Serialize(in)
	if err != nil {
		t.Fatal(err)
	}
	id, out, err := r.Dispatch(buf)
	if err != nil {
		t.Fatal(err)
	}
	if id != 2 || !reflect.DeepEqual(in, out) {
		t.Errorf("id %d obj %#v", id, out)
	}
}

func TestDispatchUnregistered(t *testing.T) {
	r, _ := newTestRegistry(t)
	c := NewStruct(9).Int8("a").MustBuild()
	buf, _ := c.Serialize(Object{"a": 1})
	id, obj, err := r.Dispatch(buf)
	if !errors.Is(err, ErrUnregistered) {
		t.Fatalf("expected unregistered error, got %v", err)
	}
	if id != 9 || obj != nil {
		t.Errorf("id %d obj %v", id, obj)
	}
	// 后续消息不受影响
	buf, _ = r.Lookup(3).Serialize(Object{"x": 4})
	if _, obj, err = r.Dispatch(buf); err != nil || obj["x"] != uint16(4) {
		t.Errorf("after failure: %v %v", obj, err)
	}
}

func TestDispatchShortBuffer(t *testing.T) {
	r, codecs := newTestRegistry(t)
	if _, _, err := r.Dispatch([]byte{1, 0}); !errors.Is(err, ErrBufferBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
	buf, _ := codecs[0].Serialize(Object{"a": 1})
	if _, _, err := r.Dispatch(buf[:len(buf)-1]); !errors.Is(err, ErrBufferBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
}

func TestRegisterOverwriteAndMismatch(t *testing.T) {
	r, _ := newTestRegistry(t)
	replacement := NewStruct(1).Name("uno").Boolean("b").MustBuild()
	if err := r.Register(1, replacement); err != nil {
		t.Fatal(err)
	}
	if r.Lookup(1) != replacement {
		t.Error("last registration should win")
	}
	if err := r.Register(5, replacement); !errors.Is(err, ErrSchema) {
		t.Errorf("mismatched id: %v", err)
	}
	if r.Lookup(5) != nil {
		t.Error("mismatched codec registered")
	}
	if err := r.Register(6, nil); !errors.Is(err, ErrSchema) {
		t.Errorf("nil codec: %v", err)
	}
	if r.LookupName("uno") != replacement || r.LookupName("one") != nil {
		t.Error("LookupName")
	}
	if n := len(r.Codecs()); n != 3 {
		t.Errorf("Codecs() has %d entries", n)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r, codecs := newTestRegistry(t)
	buf, _ := codecs[2].Serialize(Object{"x": 77})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if _, obj, err := r.Dispatch(buf); err != nil || obj["x"] != uint16(77) {
					t.Errorf("dispatch: %v %v", obj, err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_ = r.Register(3, codecs[2])
			}
		}()
	}
	wg.Wait()
}

func TestDefaultRegistry(t *testing.T) {
	c := NewStruct(250).Name("default").Int16("v").MustBuild()
	if err := Register(250, c); err != nil {
		t.Fatal(err)
	}
	if GetCodec(250) != c || Default().Lookup(250) != c {
		t.Fatal("GetCodec")
	}
	buf, _ := c.Serialize(Object{"v": -5})
	id, obj, err := Dispatch(buf)
	if err != nil || id != 250 || obj["v"] != int16(-5) {
		t.Errorf("Dispatch = %d %v %v", id, obj, err)
	}
}
