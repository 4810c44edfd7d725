package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/liangmanlin/gostruct/args"
	"github.com/liangmanlin/gostruct/gate"
	"github.com/liangmanlin/gostruct/kernel"
	"github.com/liangmanlin/gostruct/proto"
	"github.com/liangmanlin/readline"
	"golang.org/x/term"
)

type config struct {
	Addr    string `command:"addr"`
	Timeout int    `command:"timeout"` // 秒
}

func main() {
	kernel.Env.WriteLogStd = false
	kernel.Env.LogPath = ""
	cfg := &config{Timeout: 2}
	args.FillEvn(cfg)
	s := newShell(proto.NewRegistry(), os.Stdout)
	s.timeout = time.Duration(cfg.Timeout) * time.Second
	kernel.KernelStart(func() {
		if cfg.Addr != "" {
			conn, err := gate.Dial(cfg.Addr, s.timeout)
			if err != nil {
				println("cannot connect " + cfg.Addr + ": " + err.Error())
				os.Exit(1)
			}
			s.conn = conn
		}
		go func() {
			defer kernel.InitStop()
			if term.IsTerminal(int(os.Stdin.Fd())) {
				s.interactive(cfg.Addr)
			} else {
				s.batch(os.Stdin)
			}
		}()
	}, func() {
		if s.conn != nil {
			s.conn.Close()
		}
	})
}

func (s *shell) interactive(addr string) {
	if addr == "" {
		addr = "offline"
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:              "(" + addr + ")\033[31m>\033[0m ",
		AutoComplete:        readline.NewPrefixCompleter(s.completer()...),
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	log.SetOutput(l.Stderr())
	s.out = l.Stdout()
	println("\nwelcome to use gshell\n")
	println("command: help for more information\n")
	println("To exit: \u001B[31mCtrl-C\u001B[0m\n")
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}
		if !s.run(line) {
			break
		}
	}
}

// batch 非终端输入，每行一个命令
func (s *shell) batch(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !s.run(scanner.Text()) {
			return
		}
	}
}

func (s *shell) run(line string) bool {
	err := s.exec(line)
	if err == errExit {
		return false
	}
	if err != nil {
		fmt.Fprintln(s.out, errStyle.Render(err.Error()))
	}
	return true
}

func (s *shell) completer() []readline.PrefixCompleterInterface {
	var ids []readline.PrefixCompleterInterface
	for _, c := range s.reg.Codecs() {
		ids = append(ids, readline.PcItem(fmt.Sprint(c.ID())))
	}
	var pl []readline.PrefixCompleterInterface
	for _, cmd := range s.commands() {
		switch cmd.name {
		case "layout", "send":
			pl = append(pl, readline.PcItem(cmd.name, ids...))
		default:
			pl = append(pl, readline.PcItem(cmd.name))
		}
	}
	return pl
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
