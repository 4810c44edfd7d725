package kernel

import (
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

var mainCh = make(chan int, 1)

// KernelStart 初始化日志，执行start，然后阻塞直到InitStop或者收到退出信号，
// 退出前执行stop
func KernelStart(start func(), stop func()) {
	resetLogger()
	redirectStdLog()
	ErrorLog("kernel start complete")
	start()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	// block the main goroutine
	select {
	case <-mainCh:
	case s := <-sig:
		ErrorLog("receive signal: %s", s)
	}
	signal.Stop(sig)
	if stop != nil {
		CatchFun(stop)
	}
	ErrorLog("kernel stopped")
	syncLogger()
}

// 停止整个服务
func InitStop() {
	ErrorLog("init stop")
	select {
	case mainCh <- 1:
	default:
	}
}

func Catch() {
	p := recover()
	if p != nil {
		ErrorLog("catch error:%s,Stack:%s", p, debug.Stack())
	}
}

func CatchFun(f func()) {
	defer Catch()
	f()
}
