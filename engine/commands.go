package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type command struct {
	needsArg bool
	run      func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string
}

var commands = map[string]command{
	"help": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.AppendHistory("listed commands")
		return loc.CommandList()
	}},

	"list": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.AppendHistory("listed memory")
		return renderMemory(loc, ses)
	}},

	"list_scripts": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.AppendHistory("listed scripts")
		arts := ses.ListArtifacts()
		if len(arts) == 0 {
			return loc.Reply("no_scripts")
		}
		lines := make([]string, 0, len(arts))
		for _, a := range arts {
			lines = append(lines, fmt.Sprintf("%s (%s)", a.ID, a.SavedAt.Format("2006-01-02 15:04")))
		}
		return strings.Join(lines, "\n")
	}},

	"script": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		id := strings.TrimSpace(arg)
		a, ok := ses.ArtifactByID(id)
		if !ok {
			return loc.Reply("script_unknown", id)
		}
		ses.AppendHistory("showed script " + id)
		return a.Text
	}},

	"remember": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		key, value, ok := splitKeyValue(arg)
		if !ok {
			return loc.Reply("missing_argument", usageHint(loc, "remember"))
		}
		ses.SetReminder(key, value)
		ses.AppendHistory("saved reminder " + key)
		return loc.Reply("reminder_saved", key)
	}},

	"reminders": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.AppendHistory("listed reminders")
		items := ses.AllReminders()
		if len(items) == 0 {
			return loc.Reply("no_reminders")
		}
		return renderKeyValues(items)
	}},

	"note": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		id, text, ok := splitKeyValue(arg)
		if !ok {
			return loc.Reply("missing_argument", usageHint(loc, "note"))
		}
		ses.SetNote(id, text)
		ses.AppendHistory("saved note " + id)
		return loc.Reply("note_saved", id)
	}},

	"notes": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.AppendHistory("listed notes")
		items := ses.AllNotes()
		if len(items) == 0 {
			return loc.Reply("no_notes")
		}
		return renderKeyValues(items)
	}},

	"task": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		t := ses.AddTask(strings.TrimSpace(arg))
		ses.AppendHistory("added task " + t.ID)
		return loc.Reply("task_added", t.ID)
	}},

	"tasks": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.AppendHistory("listed tasks")
		items := ses.AllTasks()
		if len(items) == 0 {
			return loc.Reply("no_tasks")
		}
		return renderTasks(items)
	}},

	"done": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		id := strings.TrimSpace(arg)
		if !ses.CompleteTask(id) {
			return loc.Reply("task_unknown", id)
		}
		ses.AppendHistory("completed task " + id)
		return loc.Reply("task_done", id)
	}},

	"history": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		entries := ses.HistoryEntries()
		if len(entries) == 0 {
			return loc.Reply("no_history")
		}
		lines := make([]string, 0, len(entries))
		for _, h := range entries {
			lines = append(lines, h.At.Format("2006-01-02 15:04")+" "+h.Description)
		}
		ses.AppendHistory("listed history")
		return strings.Join(lines, "\n")
	}},

	"weather": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		city := strings.TrimSpace(arg)
		out, err := e.info.Weather(ctx, city)
		if err != nil {
			e.logger.Warn("provider_error", "provider", "weather", "error", err.Error())
			return loc.Reply("provider_unavailable")
		}
		ses.AppendHistory("asked weather for " + city)
		return out
	}},

	"news": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		out, err := e.info.Headlines(ctx)
		if err != nil {
			e.logger.Warn("provider_error", "provider", "news", "error", err.Error())
			return loc.Reply("provider_unavailable")
		}
		ses.AppendHistory("asked headlines")
		return out
	}},

	"wiki": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		term := strings.TrimSpace(arg)
		out, err := e.info.Summary(ctx, term)
		if err != nil {
			e.logger.Warn("provider_error", "provider", "wiki", "error", err.Error())
			return loc.Reply("provider_unavailable")
		}
		ses.AppendHistory("asked wiki for " + term)
		return out
	}},

	"convert": {needsArg: true, run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		amount, from, to, ok := parseConversion(arg)
		if !ok {
			return loc.Reply("missing_argument", usageHint(loc, "convert"))
		}
		out, err := e.info.Convert(ctx, amount, from, to)
		if err != nil {
			e.logger.Warn("provider_error", "provider", "currency", "error", err.Error())
			return loc.Reply("provider_unavailable")
		}
		ses.AppendHistory(fmt.Sprintf("converted %s to %s", from, to))
		return out
	}},

	"analysis_on": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.SetFlag(FlagAnalysis, true)
		ses.AppendHistory("enabled script analysis")
		return loc.Reply("analysis_on")
	}},

	"analysis_off": {run: func(e *Engine, ctx context.Context, loc *Locale, arg string, ses *Session) string {
		ses.SetFlag(FlagAnalysis, false)
		ses.AppendHistory("disabled script analysis")
		return loc.Reply("analysis_off")
	}},
}

// splitKeyValue separates the first token from the remainder.
func splitKeyValue(arg string) (string, string, bool) {
	arg = strings.TrimSpace(arg)
	idx := strings.IndexByte(arg, ' ')
	if idx <= 0 {
		return "", "", false
	}
	key := arg[:idx]
	value := strings.TrimSpace(arg[idx+1:])
	if value == "" {
		return "", "", false
	}
	return key, value, true
}

// parseConversion understands "10 USD EUR" and "10.5 usd eur".
func parseConversion(arg string) (float64, string, string, bool) {
	fields := strings.Fields(arg)
	if len(fields) != 3 {
		return 0, "", "", false
	}
	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || amount < 0 {
		return 0, "", "", false
	}
	return amount, fields[1], fields[2], true
}

func renderKeyValues(items map[string]string) string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+items[k])
	}
	return strings.Join(lines, "\n")
}

func renderTasks(items map[string]Task) string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return taskOrdinal(keys[i]) < taskOrdinal(keys[j])
	})
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		t := items[k]
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		lines = append(lines, mark+" "+t.ID+" "+t.Text)
	}
	return strings.Join(lines, "\n")
}

func taskOrdinal(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "t"))
	if err != nil {
		return 0
	}
	return n
}

func renderMemory(loc *Locale, ses *Session) string {
	reminders := ses.AllReminders()
	notes := ses.AllNotes()
	tasks := ses.AllTasks()
	if len(reminders) == 0 && len(notes) == 0 && len(tasks) == 0 {
		return loc.Reply("nothing_saved")
	}
	var parts []string
	if len(reminders) > 0 {
		parts = append(parts, loc.Reply("list_header_reminders")+"\n"+renderKeyValues(reminders))
	}
	if len(notes) > 0 {
		parts = append(parts, loc.Reply("list_header_notes")+"\n"+renderKeyValues(notes))
	}
	if len(tasks) > 0 {
		parts = append(parts, loc.Reply("list_header_tasks")+"\n"+renderTasks(tasks))
	}
	return strings.Join(parts, "\n")
}
