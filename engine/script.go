package engine

import (
	"regexp"
	"strings"
)

// RiskKind names a higher-cost LSL construct found in a script.
type RiskKind string

const (
	RiskSensorRepeat RiskKind = "sensor_repeat"
	RiskTimerLoop    RiskKind = "timer_loop"
	RiskListenerLeak RiskKind = "listener_leak"
)

// AnalysisMode selects the instruction block sent alongside a script.
type AnalysisMode string

const (
	ModeCompleteness AnalysisMode = "completeness"
	ModePerformance  AnalysisMode = "performance"
	ModeConstrained  AnalysisMode = "constrained"
	ModeRewrite      AnalysisMode = "rewrite"
)

// LSL event handlers that anchor the "looks like a script" heuristic.
var lslEvents = []string{
	"state_entry", "state_exit", "touch_start", "touch_end",
	"listen", "timer", "sensor", "no_sensor", "collision_start",
	"changed", "on_rez", "attach", "dataserver", "http_response",
	"money", "link_message",
}

var (
	llCallRe      = regexp.MustCompile(`\bll[A-Z][A-Za-z]*\s*\(`)
	eventHeaderRe = regexp.MustCompile(`\b(` + strings.Join(lslEvents, "|") + `)\s*\(`)
	defaultRe     = regexp.MustCompile(`\bdefault\b`)
	timerZeroRe   = regexp.MustCompile(`llSetTimerEvent\s*\(\s*0*\.?0*\s*\)`)
)

// Signals that the user wants a rewrite for a constrained environment.
var constrainedSignals = []string{
	"low lag", "bajo lag", "poco lag", "low memory", "poca memoria",
	"optimizado para sim", "otimizado para sim", "mono",
}

// LooksLikeScript reports whether text resembles an LSL snippet. It
// is a keyword heuristic, not a parser; misfires are acceptable.
func LooksLikeScript(text string) bool {
	return eventHeaderRe.MatchString(text) || llCallRe.MatchString(text)
}

// IsIncomplete reports a missing mandatory default block or an
// unbalanced brace count. Purely lexical.
func IsIncomplete(text string) bool {
	if !defaultRe.MatchString(text) {
		return true
	}
	return strings.Count(text, "{") != strings.Count(text, "}")
}

// RiskFlags scans for the costly constructs we know about and returns
// the matching subset in a fixed order.
func RiskFlags(text string) []RiskKind {
	var flags []RiskKind
	if strings.Contains(text, "llSensorRepeat") {
		flags = append(flags, RiskSensorRepeat)
	}
	if strings.Contains(text, "llSetTimerEvent") && !timerZeroRe.MatchString(text) {
		flags = append(flags, RiskTimerLoop)
	}
	if strings.Contains(text, "llListen") && !strings.Contains(text, "llListenRemove") {
		flags = append(flags, RiskListenerLeak)
	}
	return flags
}

// SelectMode picks the analysis sub-mode in fixed priority:
// incomplete, then risky, then a constrained-rewrite request, else a
// plain rewrite.
func SelectMode(text string) (AnalysisMode, []RiskKind) {
	if IsIncomplete(text) {
		return ModeCompleteness, nil
	}
	if flags := RiskFlags(text); len(flags) > 0 {
		return ModePerformance, flags
	}
	if hasConstrainedSignal(text) {
		return ModeConstrained, nil
	}
	return ModeRewrite, nil
}

func hasConstrainedSignal(text string) bool {
	lower := strings.ToLower(text)
	for _, signal := range constrainedSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}

func riskReplyKey(k RiskKind) string {
	return "risk_" + string(k)
}
