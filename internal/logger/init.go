package logger

import (
	"os"
	"strconv"
)

// InitLogger 根据环境变量初始化日志器
//
// 支持的变量: LOG_LEVEL, LOG_FILE_PATH, LOG_CONSOLE_OUTPUT, LOG_JSON_FORMAT, LOG_REPORT_CALLER。
// 未设置LOG_FILE_PATH时只输出到控制台。
func InitLogger(serviceName string) (Logger, error) {
	cfg := DefaultConfig()
	cfg.ServiceName = serviceName

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	cfg.FilePath = os.Getenv("LOG_FILE_PATH")
	cfg.ConsoleOutput = envBool("LOG_CONSOLE_OUTPUT", cfg.ConsoleOutput)
	cfg.JSONFormat = envBool("LOG_JSON_FORMAT", cfg.JSONFormat)
	cfg.ReportCaller = envBool("LOG_REPORT_CALLER", cfg.ReportCaller)

	return NewLogger(cfg)
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
