package scape

import (
	"fmt"
	"time"
)

// LogCategory classifies a BuildContext log entry.
type LogCategory int

// Log categories.
const (
	LogProgress LogCategory = 1 + iota // A progress log entry.
	LogWarning                         // A warning log entry.
	LogError                           // An error log entry.
)

// TimerLabel identifies one of the accumulated build timers.
type TimerLabel int

// Timer labels, one per build stage whose cost is worth tracking.
const (
	TimerTotal TimerLabel = iota
	TimerInsert
	TimerScan
	TimerSwap
	TimerIO
	maxTimers
)

const maxMessages = 1000

// BuildContext carries logging and performance-timing state through a
// simplifier run. Both facilities can be disabled independently; disabling
// logging does not disable timers and vice-versa.
//
// debug controls how verbose the scan engine's progress logging is (spec.md
// §6's debug ∈ {0,1,2,3}); 0 disables per-scan logging entirely, higher
// values log increasingly more of the scan-line detail that scan.C guarded
// behind "if (debug>1)"/"if (debug>2)".
type BuildContext struct {
	logEnabled   bool
	timerEnabled bool
	debug        int

	startTime [maxTimers]time.Time
	accTime   [maxTimers]time.Duration

	messages    [maxMessages]string
	numMessages int
}

// NewBuildContext returns a BuildContext with logging and timers enabled
// according to state, and debug verbosity set to debug.
func NewBuildContext(state bool, debug int) *BuildContext {
	return &BuildContext{logEnabled: state, timerEnabled: state, debug: debug}
}

// EnableLog enables or disables logging.
func (ctx *BuildContext) EnableLog(state bool) { ctx.logEnabled = state }

// EnableTimer enables or disables the performance timers.
func (ctx *BuildContext) EnableTimer(state bool) { ctx.timerEnabled = state }

// ResetLog clears all log entries.
func (ctx *BuildContext) ResetLog() {
	if ctx.logEnabled {
		ctx.numMessages = 0
	}
}

// ResetTimers clears all performance timers.
func (ctx *BuildContext) ResetTimers() {
	if ctx.timerEnabled {
		for i := range ctx.accTime {
			ctx.accTime[i] = 0
		}
	}
}

// Debug returns the configured debug verbosity level.
func (ctx *BuildContext) Debug() int { return ctx.debug }

// Log records a formatted message under category, subject to logEnabled.
func (ctx *BuildContext) Log(category LogCategory, format string, v ...interface{}) {
	if !ctx.logEnabled || ctx.numMessages >= maxMessages {
		return
	}
	var prefix string
	switch category {
	case LogProgress:
		prefix = "PROG "
	case LogWarning:
		prefix = "WARN "
	case LogError:
		prefix = "ERR "
	}
	ctx.messages[ctx.numMessages] = prefix + fmt.Sprintf(format, v...)
	ctx.numMessages++
}

// Progressf logs a progress message.
func (ctx *BuildContext) Progressf(format string, v ...interface{}) {
	ctx.Log(LogProgress, format, v...)
}

// Warningf logs a warning message.
func (ctx *BuildContext) Warningf(format string, v ...interface{}) {
	ctx.Log(LogWarning, format, v...)
}

// Errorf logs an error message.
func (ctx *BuildContext) Errorf(format string, v ...interface{}) {
	ctx.Log(LogError, format, v...)
}

// DebugLogf logs a message only when the configured debug verbosity
// exceeds level, mirroring scan.C's "if (debug>level) cout << ..." gates.
func (ctx *BuildContext) DebugLogf(level int, format string, v ...interface{}) {
	if ctx.debug > level {
		ctx.Log(LogProgress, format, v...)
	}
}

// DumpLog prints header followed by every recorded log message.
func (ctx *BuildContext) DumpLog(header string, args ...interface{}) {
	fmt.Printf(header+"\n", args...)
	for i := 0; i < ctx.numMessages; i++ {
		fmt.Println(ctx.messages[i])
	}
}

// LogCount returns the number of recorded log messages.
func (ctx *BuildContext) LogCount() int { return ctx.numMessages }

// LogText returns the i-th recorded log message.
func (ctx *BuildContext) LogText(i int) string { return ctx.messages[i] }

// StartTimer starts the timer identified by label.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// StopTimer stops the timer identified by label and accumulates its delta.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.accTime[label] += time.Since(ctx.startTime[label])
	}
}

// AccumulatedTime returns the total accumulated time of the timer
// identified by label, or 0 if timers are disabled.
func (ctx *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	if ctx.timerEnabled {
		return ctx.accTime[label]
	}
	return 0
}
