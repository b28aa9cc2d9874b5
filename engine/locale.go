package engine

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLanguage is used for new sessions and as the alias fallback
// so commands stay callable whatever language a conversation is in.
const DefaultLanguage = "es"

type CommandSpec struct {
	Aliases     []string `yaml:"aliases"`
	Description string   `yaml:"description"`
}

// Locale is immutable configuration data: alias tables, reply
// templates, persona text and mode instructions for one language.
type Locale struct {
	Code              string
	Persona           string                 `yaml:"persona"`
	Commands          map[string]CommandSpec `yaml:"commands"`
	ContinuationWords []string               `yaml:"continuation_words"`
	AffirmationWords  []string               `yaml:"affirmation_words"`
	Replies           map[string]string      `yaml:"replies"`
	Modes             map[string]string      `yaml:"modes"`
}

// Listing order for the capabilities reply.
var commandOrder = []string{
	"help", "list", "list_scripts", "script",
	"remember", "reminders", "note", "notes",
	"task", "tasks", "done", "history",
	"weather", "news", "wiki", "convert",
	"analysis_on", "analysis_off",
}

var locales = mustLoadLocales()

func mustLoadLocales() map[string]*Locale {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		panic(fmt.Sprintf("engine: read locales: %v", err))
	}
	out := make(map[string]*Locale, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		code := strings.TrimSuffix(name, ".yaml")
		raw, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			panic(fmt.Sprintf("engine: read locale %s: %v", name, err))
		}
		loc := &Locale{Code: code}
		if err := yaml.Unmarshal(raw, loc); err != nil {
			panic(fmt.Sprintf("engine: parse locale %s: %v", name, err))
		}
		for _, logical := range commandOrder {
			if _, ok := loc.Commands[logical]; !ok {
				panic(fmt.Sprintf("engine: locale %s missing command %q", code, logical))
			}
		}
		out[code] = loc
	}
	if _, ok := out[DefaultLanguage]; !ok {
		panic("engine: default locale missing")
	}
	return out
}

// LocaleFor returns the table for a language code, falling back to the
// default language for unknown codes.
func LocaleFor(code string) *Locale {
	if loc, ok := locales[strings.ToLower(strings.TrimSpace(code))]; ok {
		return loc
	}
	return locales[DefaultLanguage]
}

func SupportedLanguage(code string) bool {
	_, ok := locales[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

func SupportedLanguages() []string {
	out := make([]string, 0, len(locales))
	for code := range locales {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Reply formats a reply template by key. A missing key is a
// programming error surfaced loudly in the reply text rather than a
// panic mid-request.
func (l *Locale) Reply(key string, args ...any) string {
	tmpl, ok := l.Replies[key]
	if !ok {
		return "[missing reply: " + key + "]"
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

func (l *Locale) Mode(key string) string {
	return l.Modes[key]
}

// CommandList renders the localized capabilities listing, one command
// per line with its primary alias.
func (l *Locale) CommandList() string {
	var b strings.Builder
	b.WriteString(l.Reply("command_list_header"))
	for _, logical := range commandOrder {
		spec := l.Commands[logical]
		if len(spec.Aliases) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(commandPrefix)
		b.WriteString(" ")
		b.WriteString(spec.Aliases[0])
		b.WriteString(" - ")
		b.WriteString(spec.Description)
	}
	return b.String()
}
