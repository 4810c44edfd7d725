package gate

import "github.com/liangmanlin/gostruct/gate/pb"

func WithAcceptNum(num int) optFun {
	return func(o *optStruct) {
		o.acceptNum = num
	}
}

// 使用nbio的epoll模式
func WithUseEpoll() optFun {
	return func(o *optStruct) {
		o.isUseNbio = true
	}
}

// 超过该长度的消息会直接断开连接，不能超过协议能表示的最大长度，<=0使用最大长度
func WithMaxPackSize(size int) optFun {
	return func(o *optStruct) {
		if size <= 0 || size > pb.MaxLength {
			size = pb.MaxLength
		}
		o.maxPackSize = size
	}
}

type optFun func(o *optStruct)

type optStruct struct {
	isUseNbio   bool
	acceptNum   int
	maxPackSize int
}

func parseOpt(opt []optFun) *optStruct {
	df := &optStruct{acceptNum: 4, maxPackSize: pb.MaxLength}
	for _, f := range opt {
		f(df)
	}
	if df.acceptNum <= 0 {
		df.acceptNum = 1
	}
	return df
}
