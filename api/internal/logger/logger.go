package logger

import (
	"fmt"
	"gateway/api/internal/config"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
)

// Logger logs through the process-wide slog default installed by Init. The
// zero value is usable, which keeps constructors and tests free of wiring.
type Logger struct{}

func Init(config *config.Config) Logger {
	slogOpts := &slog.HandlerOptions{}

	if !config.Prod_env {
		slogOpts.Level = slog.LevelDebug
	}

	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   true,
	}

	log := slog.New(devslog.NewHandler(os.Stdout, opts))

	slog.SetDefault(log)

	return Logger{}
}

// example Info("webhook sent", "event_id", id)
func (l Logger) Info(message string, args ...any) {
	_, file, line, _ := runtime.Caller(callerSkip(args))
	printLog(LL_INFO, message, file, line, stripSkip(args)...)
}

func (l Logger) Error(message string, args ...any) {
	_, file, line, _ := runtime.Caller(callerSkip(args))
	printLog(LL_ERROR, message, file, line, stripSkip(args)...)
}

func (l Logger) Fatal(message string, args ...any) {
	_, file, line, _ := runtime.Caller(callerSkip(args))
	printLog(LL_FATAL, message, file, line, stripSkip(args)...)
}

func (l Logger) Debug(message string, args ...any) {
	_, file, line, _ := runtime.Caller(callerSkip(args))
	printLog(LL_DEBUG, message, file, line, stripSkip(args)...)
}

// templates pass templateSkip as the first arg so the reported source is the
// template's caller, not templates.go
type skipMarker struct{}

var templateSkip = skipMarker{}

func callerSkip(args []any) int {
	if len(args) > 0 {
		if _, ok := args[0].(skipMarker); ok {
			return 2
		}
	}
	return 1
}

func stripSkip(args []any) []any {
	if len(args) > 0 {
		if _, ok := args[0].(skipMarker); ok {
			return args[1:]
		}
	}
	return args
}

func printLog(ll LogLevel, message string, file string, line int, args ...any) {
	args = append(args, "source", file+":"+strconv.Itoa(line))
	switch ll {
	case LL_ERROR, LL_FATAL:
		slog.Error(message, args...)
	case LL_INFO:
		slog.Info(message, args...)
	case LL_DEBUG:
		slog.Debug(message, args...)
	}
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

func GenErrorId() string {
	var errorId string
	uuid, err := uuid.NewRandom()
	if err != nil {
		errorId = NA
	} else {
		errorId = uuid.String()
	}
	return errorId
}
