package engine

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// commandPrefix is the reserved marker that signals command intent.
const commandPrefix = "@zenko"

type boundAlias struct {
	alias   string
	logical string
}

// dispatch matches normalized text against the localized command
// table. The boolean reports whether the message was command intent
// at all; with the prefix present the dispatcher always answers,
// even if only with a rejection.
func (e *Engine) dispatch(ctx context.Context, text string, loc *Locale, ses *Session) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(text), commandPrefix) {
		return "", false
	}
	rest := strings.TrimLeft(text[len(commandPrefix):], " ")
	if rest == "" {
		// Bare "@zenko" reads as a capabilities request.
		ses.AppendHistory("listed commands")
		return loc.CommandList(), true
	}
	lowRest := strings.ToLower(rest)

	// Language-change directive: prefix plus a two-letter code.
	if isLanguageCode(lowRest) {
		if !SupportedLanguage(lowRest) {
			return loc.Reply("invalid_language", strings.Join(SupportedLanguages(), ", ")), true
		}
		ses.SetLanguage(lowRest)
		ses.AppendHistory("language set to " + lowRest)
		return LocaleFor(lowRest).Reply("language_set", lowRest), true
	}

	for _, bound := range aliasTable(loc) {
		if !strings.HasPrefix(lowRest, bound.alias) {
			continue
		}
		// Keyword boundary: exact or followed by a space.
		if len(rest) > len(bound.alias) && rest[len(bound.alias)] != ' ' {
			continue
		}
		raw := rest[len(bound.alias):]
		// One space is the separator; anything beyond belongs to
		// the argument.
		if strings.HasPrefix(raw, " ") {
			raw = raw[1:]
		}

		cmd, ok := commands[bound.logical]
		if !ok {
			continue
		}
		if cmd.needsArg && strings.TrimSpace(raw) == "" {
			return loc.Reply("missing_argument", usageHint(loc, bound.logical)), true
		}
		return cmd.run(e, ctx, loc, raw, ses), true
	}

	// Prefix present but nothing matched: explicit rejection, no
	// fallthrough to free-text classification.
	return loc.Reply("unknown_command"), true
}

// aliasTable merges the conversation language's aliases with the base
// language's, longest alias first so "lista scripts" wins over
// "lista".
func aliasTable(loc *Locale) []boundAlias {
	var out []boundAlias
	seen := map[string]bool{}
	add := func(l *Locale) {
		for logical, spec := range l.Commands {
			for _, alias := range spec.Aliases {
				alias = strings.ToLower(alias)
				if seen[alias] {
					continue
				}
				seen[alias] = true
				out = append(out, boundAlias{alias: alias, logical: logical})
			}
		}
	}
	add(loc)
	if loc.Code != DefaultLanguage {
		add(LocaleFor(DefaultLanguage))
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].alias) != len(out[j].alias) {
			return len(out[i].alias) > len(out[j].alias)
		}
		return out[i].alias < out[j].alias
	})
	return out
}

func usageHint(loc *Locale, logical string) string {
	spec := loc.Commands[logical]
	if len(spec.Aliases) == 0 {
		return commandPrefix
	}
	return commandPrefix + " " + spec.Aliases[0] + " ..."
}

func isLanguageCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
