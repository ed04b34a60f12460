// Package icebreaker runs one generation request: validate, fetch both
// parties concurrently, build the prompt, call the model and parse the reply.
package icebreaker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/icebreaker/internal/completion"
	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
	"github.com/MrSnakeDoc/icebreaker/internal/prompt"
)

// ProfileSource fetches profile data for a handle.
type ProfileSource interface {
	CheckConfig() error
	FetchProfile(ctx context.Context, h domain.Handle) (domain.Profile, error)
	FetchPosts(ctx context.Context, h domain.Handle) ([]domain.Post, error)
}

// StyleResolver turns a client style into prompt text.
type StyleResolver interface {
	Resolve(raw string) string
}

// UsageRecorder counts generation outcomes. Optional.
type UsageRecorder interface {
	IncrementUsage(ctx context.Context, outcome string) error
}

// Request is one generation request, already decoded from its transport.
type Request struct {
	SenderURL   string
	ReceiverURL string
	Objective   string
	Challenge   string // optional
	Style       string // optional, preset id/label or free text
}

// Result is a successful generation.
type Result struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Messages  []string
	// Structured is false when the reply had no "Message N:" markers and
	// Messages holds the whole reply as a single entry.
	Structured bool
}

type Service struct {
	profiles ProfileSource
	model    completion.Completer
	styles   StyleResolver
	usage    UsageRecorder
	logger   logger.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

type Option func(*Service)

// WithUsageRecorder records every outcome (best effort).
func WithUsageRecorder(u UsageRecorder) Option {
	return func(s *Service) { s.usage = u }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(profiles ProfileSource, model completion.Completer, styles StyleResolver, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		profiles: profiles,
		model:    model,
		styles:   styles,
		logger:   log,
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckConfig reports the first collaborator that cannot serve requests.
func (s *Service) CheckConfig() error {
	if err := s.profiles.CheckConfig(); err != nil {
		return err
	}
	return s.model.CheckConfig()
}

// ModelName identifies the configured model backend.
func (s *Service) ModelName() string { return s.model.Name() }

// settled holds the outcome of one fan-out branch.
type settled[T any] struct {
	value T
	err   error
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

// settle runs fn into r. The returned func always reports nil; failures,
// panics included, are kept in r.err.
func settle[T any](r *settled[T], fn func() (T, error)) func() error {
	return func() error {
		defer func() {
			if p := recover(); p != nil {
				r.err = &panicError{value: p, stack: debug.Stack()}
			}
		}()
		r.value, r.err = fn()
		return nil
	}
}

// Generate runs a full request. Every failure is returned as *Error.
func (s *Service) Generate(ctx context.Context, req Request) (res Result, err error) {
	start := s.now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during generation",
				logger.String("panic", fmt.Sprint(r)),
				logger.String("stack", string(debug.Stack())))
			res = Result{}
			err = &Error{Kind: KindInternal, Message: "unexpected error while generating messages", Err: fmt.Errorf("panic: %v", r)}
		}
		s.record(ctx, err)
	}()

	// Validating
	sender, receiver, verr := validate(req)
	if verr != nil {
		return Result{}, verr
	}

	log := s.logger.With(logger.String("sender", sender.String()), logger.String("receiver", receiver.String()))

	if cerr := s.profiles.CheckConfig(); cerr != nil {
		return Result{}, &Error{Kind: KindMisconfigured, Message: "profile data provider is not configured", Err: cerr}
	}
	if cerr := s.model.CheckConfig(); cerr != nil {
		return Result{}, &Error{Kind: KindMisconfigured, Message: "model provider is not configured", Err: cerr}
	}

	// FetchingConcurrently: settle all four, never fail fast.
	var (
		senderProfile, receiverProfile settled[domain.Profile]
		senderPosts, receiverPosts     settled[[]domain.Post]
		g                              errgroup.Group
	)
	g.Go(settle(&senderProfile, func() (domain.Profile, error) { return s.profiles.FetchProfile(ctx, sender) }))
	g.Go(settle(&receiverProfile, func() (domain.Profile, error) { return s.profiles.FetchProfile(ctx, receiver) }))
	g.Go(settle(&senderPosts, func() ([]domain.Post, error) { return s.profiles.FetchPosts(ctx, sender) }))
	g.Go(settle(&receiverPosts, func() ([]domain.Post, error) { return s.profiles.FetchPosts(ctx, receiver) }))
	_ = g.Wait()

	for _, ferr := range []error{senderProfile.err, receiverProfile.err, senderPosts.err, receiverPosts.err} {
		var pe *panicError
		if errors.As(ferr, &pe) {
			log.Error("panic during fetch", logger.String("panic", fmt.Sprint(pe.value)), logger.String("stack", string(pe.stack)))
			return Result{}, &Error{Kind: KindInternal, Message: "unexpected error while generating messages", Err: pe}
		}
	}

	if senderProfile.err != nil {
		log.Warn("sender profile fetch failed", logger.Error(senderProfile.err))
		return Result{}, profileError(SideSender, senderProfile.err)
	}
	if receiverProfile.err != nil {
		log.Warn("receiver profile fetch failed", logger.Error(receiverProfile.err))
		return Result{}, profileError(SideReceiver, receiverProfile.err)
	}
	if senderPosts.err != nil {
		log.Warn("sender posts unavailable, continuing without them", logger.Error(senderPosts.err))
		senderPosts.value = nil
	}
	if receiverPosts.err != nil {
		log.Warn("receiver posts unavailable, continuing without them", logger.Error(receiverPosts.err))
		receiverPosts.value = nil
	}

	// Assembling
	text := prompt.Build(prompt.Input{
		Sender:        senderProfile.value,
		Receiver:      receiverProfile.value,
		SenderPosts:   senderPosts.value,
		ReceiverPosts: receiverPosts.value,
		Objective:     req.Objective,
		Challenge:     req.Challenge,
		Style:         s.resolveStyle(req.Style),
	})

	// Completing
	reply, cerr := s.model.Complete(ctx, text)
	if cerr != nil {
		log.Error("completion failed", logger.String("model", s.model.Name()), logger.Error(cerr))
		return Result{}, completionError(cerr)
	}

	// Parsing
	messages, perr := prompt.ParseMessages(reply)
	structured := true
	switch {
	case errors.Is(perr, prompt.ErrNoDelimitersFound):
		structured = false
		log.Warn("model reply had no message markers, returning it whole")
	case perr != nil:
		return Result{}, &Error{Kind: KindInternal, Message: "could not read model reply", Err: perr}
	}
	if len(messages) == 0 {
		return Result{}, &Error{Kind: KindUpstream, Message: "model provider did not return a usable reply", Err: errors.New("no messages in reply")}
	}

	res = Result{
		ID:         s.newID(),
		CreatedAt:  s.now().UTC(),
		Messages:   messages,
		Structured: structured,
	}
	log.Info("icebreakers generated",
		logger.String("id", res.ID.String()),
		logger.Int("count", len(messages)),
		logger.Bool("structured", structured),
		logger.Int("sender_posts", len(senderPosts.value)),
		logger.Int("receiver_posts", len(receiverPosts.value)),
		logger.Duration("took", s.now().Sub(start)))

	return res, nil
}

func validate(req Request) (sender, receiver domain.Handle, err *Error) {
	sender, ok := domain.ExtractHandle(req.SenderURL)
	if !ok {
		return "", "", invalidInput(FieldSenderURL, "sender URL is not a LinkedIn profile URL")
	}
	receiver, ok = domain.ExtractHandle(req.ReceiverURL)
	if !ok {
		return "", "", invalidInput(FieldReceiverURL, "receiver URL is not a LinkedIn profile URL")
	}
	if strings.TrimSpace(req.Objective) == "" {
		return "", "", invalidInput(FieldObjective, "objective must not be empty")
	}
	return sender, receiver, nil
}

func (s *Service) resolveStyle(raw string) string {
	if s.styles == nil {
		return raw
	}
	return s.styles.Resolve(raw)
}

func (s *Service) record(ctx context.Context, err error) {
	if s.usage == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	// Detached so a cancelled request still gets counted.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if uerr := s.usage.IncrementUsage(rctx, outcome); uerr != nil {
		s.logger.Debug("usage not recorded", logger.Error(uerr))
	}
}
