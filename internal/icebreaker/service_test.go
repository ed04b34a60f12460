package icebreaker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
	"github.com/MrSnakeDoc/icebreaker/internal/index"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	senderURL   = "https://www.linkedin.com/in/alice/"
	receiverURL = "https://linkedin.com/in/bob?trk=x"
)

type fakeProfiles struct {
	configErr    error
	profileErrs  map[domain.Handle]error
	postsErrs    map[domain.Handle]error
	panicOn      domain.Handle
	profileCalls atomic.Int32
	postsCalls   atomic.Int32
}

func (f *fakeProfiles) CheckConfig() error { return f.configErr }

func (f *fakeProfiles) FetchProfile(_ context.Context, h domain.Handle) (domain.Profile, error) {
	f.profileCalls.Add(1)
	if err := f.profileErrs[h]; err != nil {
		return domain.Profile{}, err
	}
	name := strings.ToUpper(h.String()[:1]) + h.String()[1:]
	return domain.Profile{
		Username:  h.String(),
		FirstName: name,
		LastName:  "Test",
		Headline:  name + " headline",
		Positions: []domain.Position{{Title: "Engineer", CompanyName: name + " Corp"}},
	}, nil
}

func (f *fakeProfiles) FetchPosts(_ context.Context, h domain.Handle) ([]domain.Post, error) {
	f.postsCalls.Add(1)
	if h == f.panicOn {
		panic("boom")
	}
	if err := f.postsErrs[h]; err != nil {
		return nil, err
	}
	return []domain.Post{{Text: h.String() + " post", LikeCount: 4}}, nil
}

type fakeModel struct {
	configErr error
	reply     string
	err       error

	mu      sync.Mutex
	prompts []string
}

func (m *fakeModel) Name() string       { return "fake/model" }
func (m *fakeModel) CheckConfig() error { return m.configErr }

func (m *fakeModel) Complete(_ context.Context, p string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, p)
	return m.reply, m.err
}

func (m *fakeModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

type fakeUsage struct {
	mu       sync.Mutex
	outcomes []string
}

func (u *fakeUsage) IncrementUsage(_ context.Context, outcome string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.outcomes = append(u.outcomes, outcome)
	return nil
}

const threeMessages = "Message 1: Hi Bob\nMessage 2: Hello Bob\nMessage 3: Hey Bob"

func newService(p *fakeProfiles, m *fakeModel, opts ...Option) *Service {
	return NewService(p, m, index.NewMemoryIndex(domain.DefaultStyles()), logger.NewNop(), opts...)
}

func validRequest() Request {
	return Request{
		SenderURL:   senderURL,
		ReceiverURL: receiverURL,
		Objective:   "Discuss a data partnership",
	}
}

func TestGenerateHappyPath(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("x", 3600))
	p := &fakeProfiles{}
	m := &fakeModel{reply: threeMessages}
	s := newService(p, m, WithClock(func() time.Time { return fixed }))

	res, err := s.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"Hi Bob", "Hello Bob", "Hey Bob"}, res.Messages)
	assert.True(t, res.Structured)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, fixed.UTC(), res.CreatedAt)
	assert.Equal(t, int32(2), p.profileCalls.Load())
	assert.Equal(t, int32(2), p.postsCalls.Load())

	require.Equal(t, 1, m.calls())
	assert.Contains(t, m.prompts[0], "from Alice to Bob")
	assert.Contains(t, m.prompts[0], `"alice post..."`)
	assert.Contains(t, m.prompts[0], `"bob post..."`)
}

func TestGeneratePartialPostsFailureStillSucceeds(t *testing.T) {
	p := &fakeProfiles{postsErrs: map[domain.Handle]error{
		"alice": fmt.Errorf("%w: status 500", domain.ErrUpstream),
	}}
	m := &fakeModel{reply: threeMessages}

	res, err := newService(p, m).Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Len(t, res.Messages, 3)

	require.Equal(t, 1, m.calls())
	sent := m.prompts[0]
	senderSection := sent[strings.Index(sent, "**Sender's Information:**"):strings.Index(sent, "**Receiver's Information:**")]
	assert.Contains(t, senderSection, "- Recent Posts:")
	assert.NotContains(t, senderSection, "Post 1:")
	assert.Contains(t, sent, `"bob post..."`)
}

func TestGenerateReceiverNotFoundSkipsModel(t *testing.T) {
	p := &fakeProfiles{profileErrs: map[domain.Handle]error{
		"bob": fmt.Errorf("%w: bob", domain.ErrNotFound),
	}}
	m := &fakeModel{reply: threeMessages}

	_, err := newService(p, m).Generate(context.Background(), validRequest())
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.Equal(t, SideReceiver, e.Side)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, m.calls())
	// settle-all: every fetch ran even though one failed
	assert.Equal(t, int32(2), p.postsCalls.Load())
}

func TestGenerateBothProfilesFailReportsSender(t *testing.T) {
	p := &fakeProfiles{profileErrs: map[domain.Handle]error{
		"alice": fmt.Errorf("%w: timeout", domain.ErrUpstream),
		"bob":   fmt.Errorf("%w: bob", domain.ErrNotFound),
	}}

	_, err := newService(p, &fakeModel{}).Generate(context.Background(), validRequest())

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindUpstream, e.Kind)
	assert.Equal(t, SideSender, e.Side)
}

func TestGenerateDecodeErrorIsUpstream(t *testing.T) {
	p := &fakeProfiles{profileErrs: map[domain.Handle]error{
		"alice": &domain.DecodeError{Resource: "profile", Err: errors.New("bad shape")},
	}}

	_, err := newService(p, &fakeModel{}).Generate(context.Background(), validRequest())
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestGenerateInvalidInputMakesNoCalls(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"empty objective", func(r *Request) { r.Objective = "" }, FieldObjective},
		{"blank objective", func(r *Request) { r.Objective = "  \n\t" }, FieldObjective},
		{"bad sender", func(r *Request) { r.SenderURL = "https://example.com/alice" }, FieldSenderURL},
		{"empty receiver", func(r *Request) { r.ReceiverURL = "" }, FieldReceiverURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProfiles{}
			m := &fakeModel{reply: threeMessages}
			req := validRequest()
			tt.mutate(&req)

			_, err := newService(p, m).Generate(context.Background(), req)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, KindInvalidInput, e.Kind)
			assert.Equal(t, tt.wantField, e.Field)
			assert.Zero(t, p.profileCalls.Load()+p.postsCalls.Load())
			assert.Zero(t, m.calls())
		})
	}
}

func TestGenerateMisconfigured(t *testing.T) {
	t.Run("profile provider", func(t *testing.T) {
		p := &fakeProfiles{configErr: fmt.Errorf("%w: no key", domain.ErrMisconfigured)}
		_, err := newService(p, &fakeModel{}).Generate(context.Background(), validRequest())
		assert.Equal(t, KindMisconfigured, KindOf(err))
		assert.Zero(t, p.profileCalls.Load())
	})
	t.Run("model provider", func(t *testing.T) {
		p := &fakeProfiles{}
		m := &fakeModel{configErr: fmt.Errorf("%w: no key", domain.ErrMisconfigured)}
		_, err := newService(p, m).Generate(context.Background(), validRequest())
		assert.Equal(t, KindMisconfigured, KindOf(err))
		assert.Zero(t, p.profileCalls.Load())
		assert.Zero(t, m.calls())
	})
}

func TestGenerateCompletionFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"upstream", fmt.Errorf("%w: 500", domain.ErrUpstream), KindUpstream},
		{"deadline", context.DeadlineExceeded, KindUpstream},
		{"unknown", errors.New("weird"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(&fakeProfiles{}, &fakeModel{err: tt.err}).Generate(context.Background(), validRequest())
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestGenerateUnstructuredReply(t *testing.T) {
	m := &fakeModel{reply: "  Hi Bob, great to connect!  "}
	res, err := newService(&fakeProfiles{}, m).Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, res.Structured)
	assert.Equal(t, []string{"Hi Bob, great to connect!"}, res.Messages)
}

func TestGenerateEmptyParseIsUpstream(t *testing.T) {
	m := &fakeModel{reply: "Message 1: -"}
	_, err := newService(&fakeProfiles{}, m).Generate(context.Background(), validRequest())
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestGenerateRecoversPanics(t *testing.T) {
	p := &fakeProfiles{panicOn: "alice"}
	usage := &fakeUsage{}

	var err error
	assert.NotPanics(t, func() {
		_, err = newService(p, &fakeModel{reply: threeMessages}, WithUsageRecorder(usage)).Generate(context.Background(), validRequest())
	})
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, []string{"internal_error"}, usage.outcomes)
}

func TestGenerateStyleResolution(t *testing.T) {
	styles := index.NewMemoryIndex(domain.DefaultStyles())
	direct, _ := styles.GetStyle("direct")

	tests := []struct {
		style string
		want  string
	}{
		{"direct", direct.Hint},
		{"like a sea shanty", "like a sea shanty"},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			m := &fakeModel{reply: threeMessages}
			req := validRequest()
			req.Style = tt.style

			_, err := NewService(&fakeProfiles{}, m, styles, logger.NewNop()).Generate(context.Background(), req)
			require.NoError(t, err)
			assert.Contains(t, m.prompts[0], "**Writing Style:** "+tt.want)
		})
	}
}

func TestGenerateRecordsUsage(t *testing.T) {
	usage := &fakeUsage{}
	s := newService(&fakeProfiles{}, &fakeModel{reply: threeMessages}, WithUsageRecorder(usage))

	_, _ = s.Generate(context.Background(), validRequest())
	_, _ = s.Generate(context.Background(), Request{})

	assert.Equal(t, []string{"ok", "invalid_input"}, usage.outcomes)
}

func TestErrorMessageHidesNothingFromLogs(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	e := &Error{Kind: KindUpstream, Message: "could not fetch sender profile", Err: cause}

	assert.Equal(t, "upstream_unavailable: could not fetch sender profile: dial tcp: refused", e.Error())
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, KindInternal, KindOf(cause))
}
