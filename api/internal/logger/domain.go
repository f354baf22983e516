package logger

const NA = "N/A"

// log level
const (
	LL_ERROR = iota
	LL_FATAL
	LL_INFO
	LL_DEBUG
)

type LogLevel uint8

func (l LogLevel) ToString() string {
	return [...]string{"ERROR", "FATAL", "INFO", "DEBUG"}[l]
}
