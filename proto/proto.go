// Package proto declares the message set spoken by the example server and
// the shell.
package proto

import "github.com/liangmanlin/gostruct/gate/pb"

const (
	CharacterID uint8 = iota + 1
	LoginID
	PositionID
	StatusID
)

var (
	Character = pb.NewStruct(CharacterID).Name("character").
		String("name", 16).
		UInt32("level").
		MustBuild()

	Login = pb.NewStruct(LoginID).Name("login").
		UInt32("uniqueId").
		String("username", 32).
		String("password", 32).
		MustBuild()

	Position = pb.NewStruct(PositionID).Name("position").
		Float32("x").
		Float32("y").
		Float32("z").
		Int16("heading").
		Boolean("moving").
		MustBuild()

	Status = pb.NewStruct(StatusID).Name("status").
		Int32("hp").
		UInt16("mp").
		Int8("buff").
		UInt8("flags").
		Float64("exp").
		MustBuild()
)

type CharacterMsg struct {
	Name  string
	Level uint32
}

type LoginMsg struct {
	UniqueID uint32 `pb:"uniqueId"`
	Username string
	Password string
}

type PositionMsg struct {
	X, Y, Z float32
	Heading int16
	Moving  bool
}

type StatusMsg struct {
	HP    int32  `pb:"hp"`
	MP    uint16 `pb:"mp"`
	Buff  int8
	Flags uint8
	Exp   float64
}

// All returns every codec in id order.
func All() []*pb.Codec {
	return []*pb.Codec{Character, Login, Position, Status}
}

// NewRegistry returns a registry holding every codec of the set.
func NewRegistry() *pb.Registry {
	r := pb.NewRegistry()
	for _, c := range All() {
		if err := r.Register(c.ID(), c); err != nil {
			panic(err)
		}
	}
	return r
}
