// Package speech plays target-language text aloud, one utterance at a time.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/worker"
)

// DefaultLocale is Bengali as spoken in Bangladesh.
var DefaultLocale = language.MustParse("bn-BD")

type Request struct {
	Text   string
	Locale language.Tag
}

// NewRequest parses locale, falling back to DefaultLocale when it is empty or invalid.
func NewRequest(text, locale string) Request {
	return Request{Text: text, Locale: ParseLocale(locale)}
}

func ParseLocale(s string) language.Tag {
	if strings.TrimSpace(s) == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	return tag
}

// Synthesizer renders one utterance, returning when playback ends or ctx is cancelled.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) error
}

// CommandSynthesizer shells out to a TTS binary such as espeak-ng.
// The voice argument is the locale's base language.
type CommandSynthesizer struct {
	Path string
	Args []string
}

func (c CommandSynthesizer) Synthesize(ctx context.Context, req Request) error {
	base, _ := req.Locale.Base()
	args := append(append([]string{}, c.Args...), "-v", base.String(), req.Text)
	cmd := exec.CommandContext(ctx, c.Path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", c.Path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Speaker keeps at most one utterance active: each Speak cancels the previous one.
// Failures are logged and otherwise ignored.
type Speaker struct {
	synth Synthesizer
	pool  *worker.Pool
	log   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// NewSpeaker returns a Speaker; a nil synth makes Speak a no-op.
func NewSpeaker(synth Synthesizer, pool *worker.Pool) *Speaker {
	return &Speaker{
		synth: synth,
		pool:  pool,
		log:   logger.Default().WithPrefix("speech"),
	}
}

// Enabled reports whether server-side playback is configured.
func (s *Speaker) Enabled() bool {
	return s != nil && s.synth != nil && s.pool != nil
}

// Speak cancels any in-flight utterance and queues req.
func (s *Speaker) Speak(req Request) {
	if !s.Enabled() || strings.TrimSpace(req.Text) == "" {
		return
	}
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if !s.pool.Submit(&utterance{speaker: s, req: req, ctx: ctx, seq: seq}) {
		s.log.Warn("utterance dropped with %d pending", s.pool.QueueSize())
		cancel()
	}
}

// Cancel stops the in-flight utterance, if any.
func (s *Speaker) Cancel() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Speaker) finished(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == seq && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type utterance struct {
	speaker *Speaker
	req     Request
	ctx     context.Context
	seq     uint64
}

func (u *utterance) Name() string {
	return "speak:" + u.req.Locale.String()
}

func (u *utterance) Run(ctx context.Context) error {
	defer u.speaker.finished(u.seq)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(u.ctx, cancel)
	defer stop()

	if ctx.Err() != nil {
		return nil
	}
	if err := u.speaker.synth.Synthesize(ctx, u.req); err != nil {
		if ctx.Err() != nil {
			u.speaker.log.Debug("utterance superseded")
			return nil
		}
		u.speaker.log.Debug("playback failed: %v", err)
	}
	return nil
}
