package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/liangmanlin/gostruct/gate"
	"github.com/liangmanlin/gostruct/gate/pb"
)

var errExit = errors.New("exit")

type shell struct {
	reg     *pb.Registry
	conn    *gate.ConnNet // 为nil时只能本地编码
	out     io.Writer
	timeout time.Duration
}

func newShell(reg *pb.Registry, out io.Writer) *shell {
	return &shell{reg: reg, out: out, timeout: 2 * time.Second}
}

type command struct {
	name  string
	usage string
	run   func(s *shell, argv []string) error
}

// 每个已注册的消息类型都有一个同名命令
func (s *shell) commands() []command {
	l := make([]command, 0, 8)
	for _, c := range s.reg.Codecs() {
		if c.Name() == "" {
			continue
		}
		codec := c
		l = append(l, command{name: c.Name(), usage: usageOf(c), run: func(s *shell, argv []string) error {
			return s.send(codec, argv)
		}})
	}
	return append(l,
		command{"send", "send <id> <values...>", (*shell).sendID},
		command{"layout", "layout <id>", (*shell).layout},
		command{"dump", "dump <hex>", (*shell).dump},
		command{"help", "help", (*shell).help},
		command{"exit", "exit", func(*shell, []string) error { return errExit }},
	)
}

func usageOf(c *pb.Codec) string {
	sl := []string{c.Name()}
	for _, f := range c.Fields() {
		sl = append(sl, "<"+f.Name+">")
	}
	return strings.Join(sl, " ")
}

// exec runs one input line. errExit asks the caller to stop.
func (s *shell) exec(line string) error {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return nil
	}
	for _, cmd := range s.commands() {
		if cmd.name == argv[0] {
			return cmd.run(s, argv[1:])
		}
	}
	return fmt.Errorf("unknown command %q, try help", argv[0])
}

func (s *shell) help([]string) error {
	sl := make([]string, 0, 8)
	for _, cmd := range s.commands() {
		sl = append(sl, cmd.usage)
	}
	fmt.Fprintln(s.out, boxStyle.Render(titleStyle.Render("commands")+"\n"+strings.Join(sl, "\n")))
	return nil
}

func (s *shell) lookup(arg string) (*pb.Codec, error) {
	id, err := strconv.ParseUint(arg, 0, 8)
	if err != nil {
		return nil, fmt.Errorf("bad id %q", arg)
	}
	c := s.reg.Lookup(uint8(id))
	if c == nil {
		return nil, fmt.Errorf("id %d not registered", id)
	}
	return c, nil
}

func (s *shell) sendID(argv []string) error {
	if len(argv) == 0 {
		return errors.New("usage: send <id> <values...>")
	}
	c, err := s.lookup(argv[0])
	if err != nil {
		return err
	}
	return s.send(c, argv[1:])
}

func (s *shell) layout(argv []string) error {
	if len(argv) != 1 {
		return errors.New("usage: layout <id>")
	}
	c, err := s.lookup(argv[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, boxStyle.Render(strings.TrimRight(c.Layout(), "\n")))
	return nil
}

func (s *shell) dump(argv []string) error {
	buf, err := hex.DecodeString(strings.Join(argv, ""))
	if err != nil {
		return err
	}
	id, obj, err := s.reg.Dispatch(buf)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, formatObject(s.reg.Lookup(id), obj))
	return nil
}

// buildObject 参数按字段顺序，数量必须一致
func buildObject(c *pb.Codec, argv []string) (pb.Object, error) {
	fields := c.Fields()
	if len(argv) != len(fields) {
		return nil, fmt.Errorf("usage: %s", usageOf(c))
	}
	obj := make(pb.Object, len(fields))
	for i, f := range fields {
		v, err := pb.ParseValue(f.Type, argv[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		obj[f.Name] = v
	}
	return obj, nil
}

func (s *shell) send(c *pb.Codec, argv []string) error {
	obj, err := buildObject(c, argv)
	if err != nil {
		return err
	}
	buf, err := c.Serialize(obj)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, labelStyle.Render("encoded")+" "+hex.EncodeToString(buf))
	if s.conn == nil {
		return nil
	}
	if _, err = s.conn.Send(buf); err != nil {
		return err
	}
	pack, err := s.conn.Recv(s.timeout)
	if err != nil {
		var ne interface{ Timeout() bool }
		if errors.As(err, &ne) && ne.Timeout() {
			// 服务端不一定回包
			fmt.Fprintln(s.out, labelStyle.Render("sent")+" no reply")
			return nil
		}
		return err
	}
	defer pack.Free()
	id, reply, err := s.reg.Dispatch(pack.ToBytes())
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, labelStyle.Render("reply")+"\n"+formatObject(s.reg.Lookup(id), reply))
	return nil
}

func formatObject(c *pb.Codec, obj pb.Object) string {
	sl := []string{titleStyle.Render(c.String())}
	for _, f := range c.Fields() {
		v := obj[f.Name]
		if str, ok := v.(string); ok {
			sl = append(sl, fmt.Sprintf("%s = %q", f.Name, str))
		} else {
			sl = append(sl, fmt.Sprintf("%s = %v", f.Name, v))
		}
	}
	return boxStyle.Render(strings.Join(sl, "\n"))
}
