package kernel

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.buf.String()
}

func TestErrorLog(t *testing.T) {
	Env.WriteLogStd = false
	w := &syncBuffer{}
	Touch(w)
	ErrorLog("hello %s %d", "gate", 1)
	out := w.String()
	if !strings.Contains(out, "hello gate 1") || !strings.Contains(out, "[kernel_test.go:") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestDebugLogLevel(t *testing.T) {
	Env.WriteLogStd = false
	w := &syncBuffer{}
	Touch(w)
	SetLogLevel(2)
	DebugLog("hidden")
	SetLogLevel(1)
	DebugLog("shown")
	SetLogLevel(2)
	out := w.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected log: %q", out)
	}
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	Env.WriteLogStd = false
	Touch(nil)
	Env.LogPath = dir
	resetLogger()
	ErrorLog("to file")
	syncLogger()
	matches, _ := filepath.Glob(filepath.Join(dir, "*", "sy_*.log"))
	if len(matches) != 1 {
		t.Fatalf("log files: %v", matches)
	}
	data, _ := os.ReadFile(matches[0])
	if !strings.Contains(string(data), "to file") {
		t.Errorf("file content %q", data)
	}
	Env.LogPath = ""
	resetLogger()
}

func TestKernelStart(t *testing.T) {
	Env.WriteLogStd = false
	w := &syncBuffer{}
	Touch(w)
	go func() {
		time.Sleep(100 * time.Millisecond)
		InitStop()
	}()
	var started, stopped bool
	KernelStart(func() {
		started = true
		log.Print("from std log")
	}, func() {
		stopped = true
		panic("stop panics are caught")
	})
	if !started || !stopped {
		t.Errorf("started %v stopped %v", started, stopped)
	}
	out := w.String()
	for _, want := range []string{"kernel start complete", "from std log", "catch error:stop panics are caught", "kernel stopped"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q", want)
		}
	}
}
