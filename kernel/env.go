package kernel

var Env = &env{
	WriteLogStd: true,
	LogPath:     "", //如果为空，则不会输出到文件
	LogLevel:    2,
}

// 可以通过 args.FillEvn(kernel.Env) 从命令行填充
type env struct {
	LogPath     string `command:"log_path"`
	WriteLogStd bool   `command:"write_log_std"`
	LogLevel    int    `command:"log_level"`
}
