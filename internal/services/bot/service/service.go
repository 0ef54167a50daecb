// Package service routes chat events to the search, disclosure, watchlist and usage flows
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"

	"cinebot/internal/core/media"
	"cinebot/internal/core/normalize"
	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
	"cinebot/internal/services/bot/domain"
	usdomain "cinebot/internal/services/usage/domain"
	wldomain "cinebot/internal/services/watchlist/domain"
)

// Config for the router
type Config struct {
	// Workers bounds how many events are handled at once
	Workers int
	// ProviderTimeout bounds each metadata call
	ProviderTimeout time.Duration
	// Seed makes /suggest reproducible, zero picks a random seed
	Seed uint64
}

// Deps are the collaborators the router drives
type Deps struct {
	Transport  domain.Transport
	Catalog    domain.Catalog
	Disclosure domain.Disclosure
	Watchlist  wldomain.ServicePort
	Usage      usdomain.ServicePort
}

// Svc handles events
type Svc struct {
	deps Deps
	cfg  Config
	now  func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// New constructs the router
func New(d Deps, cfg Config) *Svc {
	switch {
	case d.Transport == nil:
		panic("bot.Service requires a non nil Transport")
	case d.Catalog == nil:
		panic("bot.Service requires a non nil Catalog")
	case d.Disclosure == nil:
		panic("bot.Service requires a non nil Disclosure")
	case d.Watchlist == nil:
		panic("bot.Service requires a non nil Watchlist")
	case d.Usage == nil:
		panic("bot.Service requires a non nil Usage")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 8 * time.Second
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Svc{
		deps: d,
		cfg:  cfg,
		now:  time.Now,
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// WithClock replaces the time source used for usage records and stats
func (s *Svc) WithClock(now func() time.Time) *Svc {
	s.now = now
	return s
}

// Run handles events until the channel closes or ctx is done
// events run concurrently and a panic in one is logged and contained
func (s *Svc) Run(ctx context.Context, events <-chan domain.Event) error {
	p := pool.New().WithMaxGoroutines(s.cfg.Workers)
	defer p.Wait()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.Go(func() { s.Dispatch(ctx, ev) })
		}
	}
}

// Dispatch handles one event under its own request id and never panics
func (s *Svc) Dispatch(ctx context.Context, ev domain.Event) {
	ctx = logger.WithRequest(ctx, uuid.NewString())
	var pc panics.Catcher
	pc.Try(func() { s.Handle(ctx, ev) })
	if r := pc.Recovered(); r != nil {
		logger.C(ctx).Error().
			Err(r.AsError()).
			Int64("chat_id", ev.ChatID).
			Int64("user_id", ev.UserID).
			Msg("event handler panicked")
	}
}

// Handle routes one event
// failures are reported to the user and logged, they never escape
func (s *Svc) Handle(ctx context.Context, ev domain.Event) {
	switch ev.Kind {
	case domain.EventCommand:
		s.command(ctx, ev)
	case domain.EventText:
		s.search(ctx, ev)
	case domain.EventInteraction:
		s.interact(ctx, ev)
	default:
		logger.C(ctx).Debug().Int("kind", int(ev.Kind)).Msg("ignoring event")
	}
}

func (s *Svc) command(ctx context.Context, ev domain.Event) {
	switch strings.ToLower(ev.Command) {
	case "start":
		s.reply(ctx, ev.ChatID, domain.MsgWelcome)
	case "watchlist":
		s.watchlist(ctx, ev)
	case "stats":
		s.stats(ctx, ev)
	case "suggest":
		s.suggest(ctx, ev)
	default:
		s.reply(ctx, ev.ChatID, domain.MsgHelp)
	}
}

func (s *Svc) search(ctx context.Context, ev domain.Event) {
	q := normalize.Query(ev.Text)
	if q == "" {
		s.reply(ctx, ev.ChatID, domain.MsgHelp)
		return
	}
	log := logger.C(ctx).With().Int64("chat_id", ev.ChatID).Int64("user_id", ev.UserID).Logger()

	pending, sendErr := s.deps.Transport.Reply(ctx, ev.ChatID, fmt.Sprintf(domain.MsgSearching, q))

	pctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	res, err := s.deps.Catalog.Search(pctx, q)
	cancel()

	if sendErr == nil {
		if derr := s.deps.Transport.Delete(ctx, ev.ChatID, pending); derr != nil {
			log.Warn().Err(derr).Msg("delete pending message failed")
		}
	}

	switch {
	case errors.Is(err, media.ErrNoResults):
		s.recordUsage(ctx, ev.UserID, q)
		s.reply(ctx, ev.ChatID, domain.MsgNoResults)
		return
	case errors.Is(err, media.ErrNotMedia):
		s.recordUsage(ctx, ev.UserID, q)
		s.reply(ctx, ev.ChatID, domain.MsgNotMedia)
		return
	case err != nil:
		log.Error().Err(err).Msg("search failed")
		s.reply(ctx, ev.ChatID, failureText(err))
		return
	}

	s.recordUsage(ctx, ev.UserID, q)

	v, err := s.deps.Disclosure.Compact(res)
	if err != nil {
		log.Error().Err(err).Str("ref", res.Ref.String()).Msg("compact view failed")
		s.reply(ctx, ev.ChatID, domain.MsgUnexpected)
		return
	}
	if _, err := s.deps.Transport.Show(ctx, ev.ChatID, v); err != nil {
		log.Error().Err(err).Str("ref", res.Ref.String()).Msg("show compact view failed")
	}
}

func (s *Svc) interact(ctx context.Context, ev domain.Event) {
	log := logger.C(ctx).With().Int64("chat_id", ev.ChatID).Int64("user_id", ev.UserID).Logger()

	pctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	tr, err := s.deps.Disclosure.Interact(pctx, ev.UserID, ev.Data)
	cancel()
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeMalformedToken) {
			log.Error().Err(err).Msg("interaction failed")
		}
		s.notify(ctx, ev.CallbackID, notice(err))
		return
	}

	if tr.Ephemeral {
		text := domain.AckAdded
		if tr.View.Duplicate {
			text = domain.AckDuplicate
		}
		s.notify(ctx, ev.CallbackID, text)
		return
	}
	if err := s.deps.Transport.Replace(ctx, ev.ChatID, ev.MessageID, tr.View); err != nil {
		log.Error().Err(err).Str("ref", tr.View.Ref.String()).Msg("replace view failed")
	}
	s.notify(ctx, ev.CallbackID, "")
}

func (s *Svc) watchlist(ctx context.Context, ev domain.Event) {
	entries, err := s.deps.Watchlist.List(ctx, ev.UserID)
	if err != nil {
		logger.C(ctx).Error().Err(err).Int64("user_id", ev.UserID).Msg("watchlist list failed")
		s.reply(ctx, ev.ChatID, failureText(err))
		return
	}
	if len(entries) == 0 {
		s.reply(ctx, ev.ChatID, domain.MsgEmptyWatchlist)
		return
	}

	// titles come from the provider cache, a miss falls back to the ref
	lines := iter.Mapper[wldomain.Entry, string]{MaxGoroutines: 4}.Map(entries, func(e *wldomain.Entry) string {
		pctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
		defer cancel()
		d, err := s.deps.Catalog.Details(pctx, e.Ref)
		if err != nil || d.Title == "" {
			return fmt.Sprintf("• %s #%d", e.Ref.Type.Label(), e.Ref.ID)
		}
		return fmt.Sprintf("• %s (%s)", d.Title, e.Ref.Type.Label())
	})
	s.reply(ctx, ev.ChatID, domain.MsgWatchlistHead+"\n"+strings.Join(lines, "\n"))
}

func (s *Svc) stats(ctx context.Context, ev domain.Event) {
	st, err := s.deps.Usage.Aggregate(ctx, ev.UserID, s.now())
	if perr.IsCode(err, perr.ErrorCodeForbidden) {
		s.reply(ctx, ev.ChatID, domain.MsgForbidden)
		return
	}
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("usage aggregate failed")
		s.reply(ctx, ev.ChatID, failureText(err))
		return
	}
	s.reply(ctx, ev.ChatID, fmt.Sprintf(domain.MsgStats, st.Total, st.UniqueUsers, st.Last24h))
}

func (s *Svc) suggest(ctx context.Context, ev domain.Event) {
	pctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	xs, err := s.deps.Catalog.Trending(pctx)
	cancel()
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("trending failed")
		s.reply(ctx, ev.ChatID, failureText(err))
		return
	}
	if len(xs) == 0 {
		s.reply(ctx, ev.ChatID, domain.MsgNoSuggestion)
		return
	}
	pick := xs[s.intN(len(xs))]
	v, err := s.deps.Disclosure.Compact(pick)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("ref", pick.Ref.String()).Msg("compact view failed")
		s.reply(ctx, ev.ChatID, domain.MsgUnexpected)
		return
	}
	if _, err := s.deps.Transport.Show(ctx, ev.ChatID, v); err != nil {
		logger.C(ctx).Error().Err(err).Msg("show suggestion failed")
	}
}

func (s *Svc) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

func (s *Svc) recordUsage(ctx context.Context, userID int64, q string) {
	err := s.deps.Usage.Record(ctx, usdomain.RecordInput{UserID: userID, Query: q, At: s.now()})
	if err != nil {
		logger.C(ctx).Error().Err(err).Int64("user_id", userID).Msg("usage record failed")
	}
}

func (s *Svc) reply(ctx context.Context, chatID int64, text string) {
	if _, err := s.deps.Transport.Reply(ctx, chatID, text); err != nil {
		logger.C(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("reply failed")
	}
}

func (s *Svc) notify(ctx context.Context, callbackID, text string) {
	if err := s.deps.Transport.Notify(ctx, callbackID, text); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("notify failed")
	}
}

// failureText picks the user facing text for a failed flow
func failureText(err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeUnavailable, perr.ErrorCodeTooManyRequests, perr.ErrorCodeNotFound:
		return domain.MsgUpstream
	case perr.ErrorCodeStorageUnavailable, perr.ErrorCodeDB:
		return domain.MsgStorage
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.MsgUpstream
		}
		return domain.MsgUnexpected
	}
}

// notice picks the interaction notice for a failed transition
func notice(err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeMalformedToken:
		return domain.AckStale
	case perr.ErrorCodeStorageUnavailable, perr.ErrorCodeDB:
		return domain.MsgStorage
	case perr.ErrorCodeUnavailable, perr.ErrorCodeNotFound, perr.ErrorCodeTooManyRequests:
		return domain.AckUpstream
	default:
		return domain.MsgUnexpected
	}
}
