package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// ********************************************************
// ********* LOGGING **************************************
// ********************************************************

// Output destinations accepted by SetLogOutput
const (
	OutputConsole = "console"
	OutputFile    = "file"
	OutputBoth    = "both"
)

// DefaultLogPath is used when file output is requested without a path
const DefaultLogPath = "/tmp/hoops.log"

var (
	mu            sync.RWMutex
	showDateTime  bool
	defaultLogger *Logger
	logFile       *os.File
)

type LogLevel int

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorOrange  = "\033[38;5;208m"
)

const (
	DEBUG LogLevel = iota
	INFO
	INFORM
	HIGHLIGHT
	WARN
	ERROR
	FATAL
)

type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	level       LogLevel
	colour      bool
}

func init() {
	defaultLogger = NewLogger(INFO, os.Stderr, os.Stderr)
}

func flags() int {
	if showDateTime {
		return log.Ldate | log.Ltime
	}
	return 0
}

// NewLogger writes INFO and below to info, WARN and above to errs
func NewLogger(level LogLevel, info, errs io.Writer) *Logger {
	return &Logger{
		infoLogger:  log.New(info, "", flags()),
		errorLogger: log.New(errs, "", flags()),
		level:       level,
		colour:      true,
	}
}

func SetShowDateTime(value bool) {
	mu.Lock()
	defer mu.Unlock()
	showDateTime = value
	defaultLogger.infoLogger.SetFlags(flags())
	defaultLogger.errorLogger.SetFlags(flags())
}

// SetLevel changes the minimum level written by the package functions
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger.level = level
}

// GetLevel returns the current minimum level
func GetLevel() LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger.level
}

// ParseLevel maps a config string to a level, case insensitive
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "inform":
		return INFORM, nil
	case "highlight":
		return HIGHLIGHT, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "fatal":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// SetLogOutput sets the output destination for logs: console, file or both.
// Console output goes to stderr because stdout carries the MCP protocol.
func SetLogOutput(output, path string) error {
	switch strings.ToLower(output) {
	case "", OutputConsole, "c", OutputFile, "f", OutputBoth, "b":
	default:
		return fmt.Errorf("invalid log output %q", output)
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	if path == "" {
		path = DefaultLogPath
	}

	openFile := func() error {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		return nil
	}

	var w io.Writer
	colour := true
	switch strings.ToLower(output) {
	case "", OutputConsole, "c":
		w = os.Stderr
	case OutputFile, "f":
		if err := openFile(); err != nil {
			return err
		}
		w = logFile
		colour = false
	case OutputBoth, "b":
		if err := openFile(); err != nil {
			return err
		}
		w = io.MultiWriter(os.Stderr, logFile)
	}

	defaultLogger.infoLogger = log.New(w, "", flags())
	defaultLogger.errorLogger = log.New(w, "", flags())
	defaultLogger.colour = colour
	return nil
}

// SetWriter sends all output to w without colour codes, mostly for tests
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger.infoLogger = log.New(w, "", flags())
	defaultLogger.errorLogger = log.New(w, "", flags())
	defaultLogger.colour = false
}

// Close releases the log file if one is open
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func (l *Logger) log(level LogLevel, format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	msg := format
	var jsonObjects []string
	if len(v) > 0 {
		processedArgs, jsonStrings := processArgs(v...)
		jsonObjects = jsonStrings
		if len(processedArgs) > 0 {
			msg = format + " " + strings.Join(processedArgs, " ")
		}
	}

	colorCode, reset := level.colour(), colorReset
	if !l.colour {
		colorCode, reset = "", ""
	}

	out := l.infoLogger
	if level >= WARN {
		out = l.errorLogger
	}
	out.Printf("[%s] %s:%d: %s%s%s", level, file, line, colorCode, msg, reset)
	for _, obj := range jsonObjects {
		out.Printf("[%s] %s:%d: %s%s%s", level, file, line, colorCode, obj, reset)
	}
}

func (l LogLevel) colour() string {
	switch l {
	case DEBUG:
		return colorBlue
	case INFO:
		return colorGreen
	case INFORM:
		return colorMagenta
	case HIGHLIGHT:
		return colorCyan
	case WARN:
		return colorYellow
	case ERROR:
		return colorOrange
	case FATAL:
		return colorRed
	default:
		return colorReset
	}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case INFORM:
		return "INFORM"
	case HIGHLIGHT:
		return "HIGHLIGHT"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// processArgs processes arguments, converting non-primitives to JSON
// Returns a slice of string representations for primitive types and a slice of JSON strings for complex types
func processArgs(args ...any) ([]string, []string) {
	var primitives []string
	var jsonObjects []string

	for _, arg := range args {
		if isPrimitive(arg) {
			switch v := arg.(type) {
			case float32:
				primitives = append(primitives, fmt.Sprintf("%.2f", v))
			case float64:
				primitives = append(primitives, fmt.Sprintf("%.2f", v))
			case string:
				primitives = append(primitives, v)
			case error:
				primitives = append(primitives, v.Error())
			case nil:
				primitives = append(primitives, "nil")
			default:
				primitives = append(primitives, fmt.Sprintf("%v", v))
			}
			continue
		}
		jsonBytes, err := json.MarshalIndent(arg, "", "  ")
		if err != nil {
			primitives = append(primitives, fmt.Sprintf("%v", arg))
			continue
		}
		primitives = append(primitives, fmt.Sprintf("[Object of type %s]", reflect.TypeOf(arg)))
		jsonObjects = append(jsonObjects, string(jsonBytes))
	}
	return primitives, jsonObjects
}

// isPrimitive checks if a value is a primitive type
func isPrimitive(v any) bool {
	if v == nil {
		return true
	}

	switch v.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, error:
		return true
	default:
		return false
	}
}

// Convenience methods using the default logger
func Debug(format string, v ...any) {
	defaultLogger.log(DEBUG, format, v...)
}

func Info(format string, v ...any) {
	defaultLogger.log(INFO, format, v...)
}

func Inform(format string, v ...any) {
	defaultLogger.log(INFORM, format, v...)
}

func Highlight(format string, v ...any) {
	defaultLogger.log(HIGHLIGHT, format, v...)
}

func Warn(format string, v ...any) {
	defaultLogger.log(WARN, format, v...)
}

func Error(format string, v ...any) {
	defaultLogger.log(ERROR, format, v...)
}

func Fatal(format string, v ...any) {
	defaultLogger.log(FATAL, format, v...)
	os.Exit(1)
}
