// Package engine is the intent router and session context engine:
// it normalizes inbound chat text, dispatches localized commands,
// classifies free text and assembles replies, delegating to the
// generation backend where needed.
package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/darch7/zenko/llm"
	"github.com/darch7/zenko/providers/info"
)

type Options struct {
	Client           llm.Client
	Info             *info.Client
	Model            string
	Logger           *slog.Logger
	DefaultLanguage  string
	MaxConcurrentLLM int
}

type Engine struct {
	store  *Store
	client llm.Client
	info   *info.Client
	model  string
	logger *slog.Logger
	sem    chan struct{}
}

func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxConcurrentLLM <= 0 {
		opts.MaxConcurrentLLM = 8
	}
	if opts.Info == nil {
		opts.Info = info.New(info.Options{})
	}
	return &Engine{
		store:  NewStore(opts.DefaultLanguage),
		client: opts.Client,
		info:   opts.Info,
		model:  opts.Model,
		logger: opts.Logger,
		sem:    make(chan struct{}, opts.MaxConcurrentLLM),
	}
}

func (e *Engine) Store() *Store {
	return e.store
}

// Handle processes one inbound message for one user and returns the
// reply. All failures are recovered into localized reply text; the
// caller never sees an error.
func (e *Engine) Handle(ctx context.Context, userID, message string) string {
	requestID := uuid.NewString()
	text := Normalize(message)
	ses := e.store.GetOrCreate(userID)
	ses.Touch()
	loc := LocaleFor(ses.Lang())

	if text == "" {
		return Normalize(loc.Reply("empty_message"))
	}

	var reply string
	if r, handled := e.dispatch(ctx, text, loc, ses); handled {
		e.logger.Info("chat_command", "request_id", requestID, "user_id", userID)
		reply = r
	} else {
		intent := Classify(text, loc, ses)
		e.logger.Info("chat_request", "request_id", requestID, "user_id", userID, "intent", intent.String())
		reply = e.assemble(ctx, intent, text, loc, ses)
	}

	// The display surface downstream only handles the constrained
	// repertoire, so every reply goes through the normalizer too.
	return Normalize(reply)
}

func (e *Engine) assemble(ctx context.Context, intent Intent, text string, loc *Locale, ses *Session) string {
	switch intent {
	case IntentContinuation:
		return e.assembleContinuation(ctx, text, loc, ses)

	case IntentDomainContent:
		return e.assembleScript(ctx, text, loc, ses)

	case IntentLongText:
		// Never summarize unasked; store the text and offer.
		ses.SetContext(ContextSummary, text)
		ses.AppendHistory("offered summary")
		return loc.Reply("summary_offer")

	case IntentDiagnostic:
		risks := RiskFlags(text)
		if len(risks) == 0 {
			return loc.Reply("diagnostic_clarify")
		}
		return loc.Reply("diagnostic_found", renderRisks(loc, risks))

	default:
		return e.assembleChat(ctx, text, loc, ses)
	}
}

func (e *Engine) assembleContinuation(ctx context.Context, text string, loc *Locale, ses *Session) string {
	cont := ses.Continuation()
	if cont == nil {
		return loc.Reply("no_context")
	}
	switch cont.Kind {
	case ContextScript:
		mode, risks := SelectMode(cont.Payload)
		// "optimize it" style follow-ups force the constrained mode.
		if mode == ModeRewrite && hasConstrainedSignal(text) {
			mode = ModeConstrained
		}
		ses.AppendHistory("continued script analysis")
		return e.generateScript(ctx, loc, cont.Payload, mode, risks)

	case ContextSummary:
		ses.AppendHistory("continued summary")
		out, err := e.generate(ctx, loc.Persona+"\n\n"+loc.Reply("summary_instruction"),
			[]llm.Message{{Role: "user", Content: cont.Payload}})
		if err != nil {
			return loc.Reply("backend_unavailable")
		}
		return out

	default:
		// Unrecognized stored kind: explicit refusal, not a crash.
		return loc.Reply("cannot_continue")
	}
}

func (e *Engine) assembleScript(ctx context.Context, text string, loc *Locale, ses *Session) string {
	// Artifact and context commit before the backend call; a failed
	// delegation must not lose the saved script.
	a := ses.PutArtifact(text)
	ses.SetContext(ContextScript, text)
	ses.AppendHistory("analyzed script " + a.ID)

	mode, risks := SelectMode(text)
	out := e.generateScript(ctx, loc, text, mode, risks)
	return loc.Reply("script_saved", a.ID) + "\n\n" + out
}

func (e *Engine) generateScript(ctx context.Context, loc *Locale, payload string, mode AnalysisMode, risks []RiskKind) string {
	sys := loc.Persona + "\n\n" + loc.Mode(string(mode))
	if mode == ModePerformance && len(risks) > 0 {
		sys += "\n" + renderRisks(loc, risks)
	}
	out, err := e.generate(ctx, sys, []llm.Message{{Role: "user", Content: payload}})
	if err != nil {
		return loc.Reply("backend_unavailable")
	}
	return out
}

func (e *Engine) assembleChat(ctx context.Context, text string, loc *Locale, ses *Session) string {
	ses.AppendChat("user", text)
	out, err := e.generate(ctx, loc.Persona, ses.ChatWindow())
	if err != nil {
		return loc.Reply("backend_unavailable")
	}
	ses.AppendChat("assistant", out)
	return out
}

// generate performs one bounded call to the generation backend.
func (e *Engine) generate(ctx context.Context, system string, msgs []llm.Message) (string, error) {
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-e.sem }()

	req := llm.Request{
		Model:       e.model,
		Messages:    append([]llm.Message{{Role: "system", Content: system}}, msgs...),
		Temperature: 0.7,
		MaxTokens:   1024,
	}
	res, err := e.client.Chat(ctx, req)
	if err != nil {
		e.logger.Warn("llm_call_error", "error", err.Error())
		return "", err
	}
	return strings.TrimSpace(res.Text), nil
}

func renderRisks(loc *Locale, risks []RiskKind) string {
	lines := make([]string, 0, len(risks))
	for _, r := range risks {
		lines = append(lines, "- "+loc.Reply(riskReplyKey(r)))
	}
	return strings.Join(lines, "\n")
}
