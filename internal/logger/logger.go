package logger

import "go.uber.org/zap"

var log = zap.NewNop().Sugar()

// Init swaps the no-op logger for a real one. mode "production" gives JSON output.
func Init(mode string) {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, kv...)
}

func Sync() {
	_ = log.Sync()
}
