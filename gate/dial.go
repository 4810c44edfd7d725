package gate

import (
	"net"
	"time"

	"github.com/liangmanlin/gostruct/gate/pb"
)

// Dial connects to a gate. Use Recv for request/response style reads or
// StartReader to receive asynchronously.
func Dial(addr string, timeout time.Duration) (*ConnNet, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return newConnNet(conn, pb.MaxLength), nil
}

// SendObject encodes obj with codec and writes it to c in one call.
func SendObject(c Conn, codec *pb.Codec, obj pb.Object) error {
	buf, err := codec.SerializeBuff(obj)
	if err != nil {
		return err
	}
	defer buf.Free()
	_, err = c.Send(buf.ToBytes())
	return err
}
