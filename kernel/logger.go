package kernel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

var (
	logMux    sync.RWMutex
	sugar     *zap.SugaredLogger
	base      *zap.Logger
	logWriter io.Writer
	logFile   *hourFile
	undoStd   func()

	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Touch sends the log to writer instead of a log file.
func Touch(writer io.Writer) {
	logMux.Lock()
	Env.LogPath = ""
	logWriter = writer
	logMux.Unlock()
	resetLogger()
}

// SetLogLevel 小于2时输出DebugLog
func SetLogLevel(l LogLevel) {
	Env.LogLevel = int(l)
	if l < 2 {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

func DebugLog(format string, args ...interface{}) {
	getLogger().Debugf(format, args...)
}

func ErrorLog(format string, args ...interface{}) {
	getLogger().Errorf(format, args...)
}

// Logger exposes the underlying zap logger, for libraries that take one.
func Logger() *zap.Logger {
	getLogger()
	logMux.RLock()
	defer logMux.RUnlock()
	return base
}

func getLogger() *zap.SugaredLogger {
	logMux.RLock()
	s := sugar
	logMux.RUnlock()
	if s != nil {
		return s
	}
	resetLogger()
	logMux.RLock()
	defer logMux.RUnlock()
	return sugar
}

// resetLogger 根据Env重新创建logger
func resetLogger() {
	logMux.Lock()
	defer logMux.Unlock()
	SetLogLevel(LogLevel(Env.LogLevel))
	if base != nil {
		_ = base.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	var ws []zapcore.WriteSyncer
	if Env.WriteLogStd {
		ws = append(ws, zapcore.Lock(os.Stdout))
	}
	if Env.LogPath != "" {
		logFile = &hourFile{root: Env.LogPath}
		ws = append(ws, logFile)
	}
	if logWriter != nil {
		ws = append(ws, zapcore.AddSync(logWriter))
	}
	if len(ws) == 0 {
		base = zap.NewNop()
	} else {
		core := zapcore.NewCore(newEncoder(), zapcore.NewMultiWriteSyncer(ws...), level)
		base = zap.New(core, zap.AddCaller())
	}
	sugar = base.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// 2022-1-2 15:04:05 [file.go:12] message
func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:    "time",
		CallerKey:  "caller",
		MessageKey: "msg",
		EncodeTime: zapcore.TimeEncoderOfLayout("2006-1-2 15:04:05"),
		EncodeCaller: func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + filepath.Base(caller.File) + ":" + strconv.Itoa(caller.Line) + "]")
		},
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
}

// 捕获go内置log信息
func redirectStdLog() {
	logMux.Lock()
	defer logMux.Unlock()
	if undoStd != nil {
		undoStd()
	}
	undoStd = zap.RedirectStdLog(base)
}

func syncLogger() {
	logMux.RLock()
	defer logMux.RUnlock()
	if base != nil {
		_ = base.Sync()
	}
}

// hourFile 每小时一个日志文件: path/2022_1_2/sy_2022_1_2___15.log
type hourFile struct {
	mux  sync.Mutex
	root string
	hour int64
	file *os.File
}

func (h *hourFile) Write(p []byte) (int, error) {
	h.mux.Lock()
	defer h.mux.Unlock()
	now := time.Now()
	if hour := now.Unix() / 3600; h.file == nil || hour != h.hour {
		if err := h.rotate(now); err != nil {
			return 0, err
		}
		h.hour = hour
	}
	return h.file.Write(p)
}

func (h *hourFile) rotate(t time.Time) error {
	if h.file != nil {
		_ = h.file.Close()
		h.file = nil
	}
	year, month, day := t.Date()
	dir := filepath.Join(h.root, fmt.Sprintf("%d_%d_%d", year, month, day))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	name := filepath.Join(dir, fmt.Sprintf("sy_%d_%d_%d___%02d.log", year, month, day, t.Hour()))
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	h.file = f
	return nil
}

func (h *hourFile) Sync() error {
	h.mux.Lock()
	defer h.mux.Unlock()
	if h.file == nil {
		return nil
	}
	return h.file.Sync()
}

func (h *hourFile) Close() error {
	h.mux.Lock()
	defer h.mux.Unlock()
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}
