package logger

// Messages are collected as they happen and printed to stderr in the same
// "kind: text" form that esbuild uses. Parse failures are reported here and
// never turned into an "Unknown" media type.

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Info
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		panic("Internal error")
	}
}

type Msg struct {
	Kind MsgKind
	Text string

	// The specifier this message is about, if any
	Subject string

	Notes []string
}

// This type is just so we can use Go's native sort function
type msgsArray []Msg

func (a msgsArray) Len() int          { return len(a) }
func (a msgsArray) Swap(i int, j int) { a[i], a[j] = a[j], a[i] }

func (a msgsArray) Less(i int, j int) bool {
	ai := a[i]
	aj := a[j]

	// Subject
	if ai.Subject != aj.Subject {
		return ai.Subject < aj.Subject
	}

	// Kind
	if ai.Kind != aj.Kind {
		return ai.Kind < aj.Kind
	}

	// Text
	return ai.Text < aj.Text
}

func plural(prefix string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, prefix)
	}
	return fmt.Sprintf("%d %ss", count, prefix)
}

func errorAndWarningSummary(errors int, warnings int) string {
	switch {
	case errors == 0:
		return plural("warning", warnings)
	case warnings == 0:
		return plural("error", errors)
	default:
		return fmt.Sprintf("%s and %s",
			plural("warning", warnings),
			plural("error", errors))
	}
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
	Height          int
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type StderrOptions struct {
	ErrorLimit int
	Color      StderrColor
	LogLevel   LogLevel
}

// Terminal info only matters for color. Pass an empty one for anything that
// isn't a terminal.
func NewWriterLog(out io.Writer, terminalInfo TerminalInfo, options StderrOptions) Log {
	var mutex sync.Mutex
	var msgs msgsArray
	errors := 0
	warnings := 0
	errorLimitWasHit := false

	switch options.Color {
	case ColorNever:
		terminalInfo.UseColorEscapes = false
	case ColorAlways:
		terminalInfo.UseColorEscapes = SupportsColorEscapes
	}

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			msgs = append(msgs, msg)

			// Be silent if we're past the limit so we don't flood the terminal
			if errorLimitWasHit {
				return
			}

			switch msg.Kind {
			case Error:
				errors++
				if options.LogLevel <= LevelError {
					io.WriteString(out, msg.String(terminalInfo))
				}
			case Warning:
				warnings++
				if options.LogLevel <= LevelWarning {
					io.WriteString(out, msg.String(terminalInfo))
				}
			case Info:
				if options.LogLevel <= LevelInfo {
					io.WriteString(out, msg.String(terminalInfo))
				}
			}

			// Silence further output if we reached the error limit
			if options.ErrorLimit != 0 && errors >= options.ErrorLimit {
				errorLimitWasHit = true
				if options.LogLevel <= LevelError {
					io.WriteString(out, fmt.Sprintf(
						"%s reached (disable error limit with --error-limit=0)\n", errorAndWarningSummary(errors, warnings)))
				}
			}
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return errors > 0
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()

			// Print out a summary if the error limit wasn't hit
			if !errorLimitWasHit && options.LogLevel <= LevelInfo && (warnings != 0 || errors != 0) {
				io.WriteString(out, fmt.Sprintf("%s\n", errorAndWarningSummary(errors, warnings)))
			}

			sort.Stable(msgs)
			return msgs
		},
	}
}

func PrintErrorToStderr(osArgs []string, text string) {
	PrintMessageToStderr(osArgs, Msg{Kind: Error, Text: text})
}

func PrintMessageToStderr(osArgs []string, msg Msg) {
	PrintMessageToWriter(os.Stderr, GetTerminalInfo(os.Stderr), osArgs, msg)
}

// Like "PrintMessageToStderr" but for a caller that owns its own stderr
func PrintMessageToWriter(out io.Writer, terminalInfo TerminalInfo, osArgs []string, msg Msg) {
	options := StderrOptions{}

	// Implement a mini argument parser so these options always work even if we
	// haven't yet gotten to the general-purpose argument parsing code
	for _, arg := range osArgs {
		switch arg {
		case "--color=false":
			options.Color = ColorNever
		case "--color=true":
			options.Color = ColorAlways
		case "--log-level=info":
			options.LogLevel = LevelInfo
		case "--log-level=warning":
			options.LogLevel = LevelWarning
		case "--log-level=error":
			options.LogLevel = LevelError
		case "--log-level=silent":
			options.LogLevel = LevelSilent
		}
	}

	log := NewWriterLog(out, terminalInfo, options)
	log.AddMsg(msg)
	log.Done()
}

func NewDeferLog() Log {
	var msgs msgsArray
	var mutex sync.Mutex
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.Stable(msgs)
			return msgs
		},
	}
}

const colorReset = "\033[0m"
const colorRed = "\033[31m"
const colorGreen = "\033[32m"
const colorMagenta = "\033[35m"
const colorDim = "\033[37m"
const colorBold = "\033[1m"
const colorResetBold = "\033[0;1m"

func (msg Msg) String(terminalInfo TerminalInfo) string {
	kind := msg.Kind.String()
	kindColor := colorRed

	switch msg.Kind {
	case Warning:
		kindColor = colorMagenta
	case Info:
		kindColor = colorGreen
	}

	sb := strings.Builder{}

	if terminalInfo.UseColorEscapes {
		sb.WriteString(fmt.Sprintf("%s%s%s: %s%s%s\n",
			colorBold, kindColor, kind,
			colorResetBold, msg.Text,
			colorReset))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s\n", kind, msg.Text))
	}

	for _, note := range msg.Notes {
		if terminalInfo.UseColorEscapes {
			sb.WriteString(fmt.Sprintf("  %s%s%s\n", colorDim, note, colorReset))
		} else {
			sb.WriteString(fmt.Sprintf("  %s\n", note))
		}
	}

	return sb.String()
}

func (log Log) AddError(subject string, text string) {
	log.AddMsg(Msg{
		Kind:    Error,
		Text:    text,
		Subject: subject,
	})
}

func (log Log) AddErrorWithNotes(subject string, text string, notes []string) {
	log.AddMsg(Msg{
		Kind:    Error,
		Text:    text,
		Subject: subject,
		Notes:   notes,
	})
}

func (log Log) AddWarning(subject string, text string) {
	log.AddMsg(Msg{
		Kind:    Warning,
		Text:    text,
		Subject: subject,
	})
}

func hasNoColorEnvironmentVariable() bool {
	// https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return false
}
