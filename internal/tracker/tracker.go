// Package tracker records daily check-ins and serves adherence summaries.
// It owns everything the engine deliberately does not: reading the clock,
// fetching records, caching and invalidation.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/cache"
	"github.com/julianstephens/adhere/internal/constants"
	"github.com/julianstephens/adhere/internal/logger"
	"github.com/julianstephens/adhere/internal/models"
	"github.com/julianstephens/adhere/internal/storage"
	"github.com/julianstephens/adhere/internal/utils"
)

var (
	// ErrFutureCheckin is returned when a check-in targets a day after the subject's today.
	ErrFutureCheckin = errors.New("cannot check in for a future day")
	// ErrInvalidDay is returned when a day argument cannot be parsed.
	ErrInvalidDay = errors.New("invalid day")
	// ErrTreatmentArchived is returned when checking in against an archived treatment.
	ErrTreatmentArchived = errors.New("treatment is archived")
)

// Service is safe for concurrent use when its store and cache are.
type Service struct {
	store storage.Provider
	cache cache.Cache
	log   *log.Logger

	now               func() time.Time
	windowDays        int
	weekStart         adherence.WeekStart
	distinguishNoData bool
	defaultTimezone   string
	cacheTTL          time.Duration
}

type Option func(*Service)

// WithClock injects the time source used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithWindow(days int) Option {
	return func(s *Service) { s.windowDays = days }
}

func WithWeekStart(ws adherence.WeekStart) Option {
	return func(s *Service) { s.weekStart = ws }
}

// WithDistinguishNoData renders unrecorded past days as no-data cells.
func WithDistinguishNoData(on bool) Option {
	return func(s *Service) { s.distinguishNoData = on }
}

// WithDefaultTimezone is used for subjects without a timezone of their own.
func WithDefaultTimezone(tz string) Option {
	return func(s *Service) { s.defaultTimezone = tz }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

// New builds a Service. A nil cache disables caching.
func New(store storage.Provider, c cache.Cache, opts ...Option) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	s := &Service{
		store:           store,
		cache:           c,
		log:             logger.With("component", "tracker"),
		now:             time.Now,
		windowDays:      constants.DefaultWindowDays,
		defaultTimezone: constants.DefaultTimezone,
		cacheTTL:        constants.DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options returns the engine options the service summarises with.
func (s *Service) Options() adherence.Options {
	return adherence.Options{
		WindowDays:        s.windowDays,
		WeekStart:         s.weekStart,
		DistinguishNoData: s.distinguishNoData,
	}
}

// Today returns the current calendar day in the subject's timezone.
func (s *Service) Today(ctx context.Context, subjectID string) (adherence.Date, error) {
	subject, err := s.store.GetSubject(ctx, subjectID)
	if err != nil {
		return adherence.Date{}, err
	}
	return s.todayFor(subject)
}

func (s *Service) todayFor(subject models.Subject) (adherence.Date, error) {
	tz := subject.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}
	return utils.TodayIn(s.now(), tz)
}

// CheckIn records whether the subject took the treatment on day. An empty
// day means today. Repeating a check-in for the same day updates it.
func (s *Service) CheckIn(ctx context.Context, subjectID, treatmentType, day string, checkedIn bool) (models.Checkin, error) {
	subject, err := s.store.GetSubject(ctx, subjectID)
	if err != nil {
		return models.Checkin{}, err
	}
	today, err := s.todayFor(subject)
	if err != nil {
		return models.Checkin{}, err
	}

	d, err := utils.ResolveDay(day, today)
	if err != nil {
		return models.Checkin{}, fmt.Errorf("%w: %v", ErrInvalidDay, err)
	}
	if d.After(today) {
		return models.Checkin{}, fmt.Errorf("%w: %s is after today (%s)", ErrFutureCheckin, d, today)
	}

	treatment, err := s.store.GetTreatment(ctx, subjectID, treatmentType)
	if err != nil {
		return models.Checkin{}, err
	}
	if treatment.ArchivedAt != nil {
		return models.Checkin{}, fmt.Errorf("%w: %s", ErrTreatmentArchived, treatmentType)
	}

	stored, err := s.store.UpsertCheckin(ctx, models.Checkin{
		SubjectID:     subjectID,
		TreatmentType: treatmentType,
		Day:           d.String(),
		CheckedIn:     checkedIn,
	})
	if err != nil {
		return models.Checkin{}, err
	}

	s.invalidate(ctx, cache.TreatmentPrefix(subjectID, treatmentType))
	s.log.Debug("check-in recorded", "subject", subjectID, "treatment", treatmentType, "day", stored.Day, "checked_in", checkedIn)
	return stored, nil
}

// ToggleToday flips today's check-in: a missing or false record becomes
// taken, a taken one becomes not taken.
func (s *Service) ToggleToday(ctx context.Context, subjectID, treatmentType string) (models.Checkin, error) {
	today, err := s.Today(ctx, subjectID)
	if err != nil {
		return models.Checkin{}, err
	}
	current, err := s.store.GetCheckin(ctx, subjectID, treatmentType, today.String())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s.CheckIn(ctx, subjectID, treatmentType, today.String(), true)
	case err != nil:
		return models.Checkin{}, err
	}
	return s.CheckIn(ctx, subjectID, treatmentType, today.String(), !current.CheckedIn)
}

// History returns the stored check-ins of the windowDays days ending on the
// subject's today, ordered by day. Zero windowDays uses the configured window.
func (s *Service) History(ctx context.Context, subjectID, treatmentType string, windowDays int) ([]models.Checkin, error) {
	if windowDays == 0 {
		windowDays = s.windowDays
	}
	if err := ValidateWindow(windowDays, false); err != nil {
		return nil, err
	}
	subject, err := s.store.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	today, err := s.todayFor(subject)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetTreatment(ctx, subjectID, treatmentType); err != nil {
		return nil, err
	}
	start := adherence.WindowStart(today, windowDays)
	return s.store.GetCheckinsInRange(ctx, subjectID, treatmentType, start.String(), today.String())
}

// Summary returns the adherence summary for one treatment using the
// service's configured options.
func (s *Service) Summary(ctx context.Context, subjectID, treatmentType string) (adherence.Summary, error) {
	return s.SummaryWithOptions(ctx, subjectID, treatmentType, s.Options())
}

// ValidateWindow is adherence.ValidateWindow with an upper bound of
// constants.MaxWindowDays, for windows that come from users.
func ValidateWindow(windowDays int, requireWeeks bool) error {
	if err := adherence.ValidateWindow(windowDays, requireWeeks); err != nil {
		return err
	}
	if windowDays > constants.MaxWindowDays {
		return fmt.Errorf("%w: window must be at most %d days, got %d", adherence.ErrInvalidWindow, constants.MaxWindowDays, windowDays)
	}
	return nil
}

// SummaryWithOptions is Summary with explicit engine options.
func (s *Service) SummaryWithOptions(ctx context.Context, subjectID, treatmentType string, opts adherence.Options) (adherence.Summary, error) {
	if err := ValidateWindow(opts.WindowDays, false); err != nil {
		return adherence.Summary{}, err
	}
	subject, err := s.store.GetSubject(ctx, subjectID)
	if err != nil {
		return adherence.Summary{}, err
	}
	today, err := s.todayFor(subject)
	if err != nil {
		return adherence.Summary{}, err
	}
	if _, err := s.store.GetTreatment(ctx, subjectID, treatmentType); err != nil {
		return adherence.Summary{}, err
	}

	key := summaryKey(subjectID, treatmentType, today, opts)
	if b, ok := s.cache.Get(ctx, key); ok {
		var cached adherence.Summary
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
		s.log.Warn("discarding unreadable cached summary", "key", key)
	}

	// The full history, not just the window, so long streaks are exact
	checkins, err := s.store.GetCheckins(ctx, subjectID, treatmentType)
	if err != nil {
		return adherence.Summary{}, err
	}
	records, problems := adherence.ParseRecords(models.RawRecords(checkins))
	for _, p := range problems {
		s.log.Warn("skipping malformed check-in", "subject", subjectID, "treatment", treatmentType, "error", p)
	}

	summary, err := adherence.Summarize(records, today, opts)
	if err != nil {
		return adherence.Summary{}, err
	}

	if b, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, key, b, s.cacheTTL); err != nil {
			s.log.Debug("summary not cached", "key", key, "error", err)
		}
	}
	return summary, nil
}

// TreatmentSummary pairs a treatment with its current summary.
type TreatmentSummary struct {
	Treatment models.Treatment  `json:"treatment"`
	Summary   adherence.Summary `json:"summary"`
}

// Treatments lists the subject's treatments, failing with storage.ErrNotFound
// for an unknown subject rather than returning an empty list.
func (s *Service) Treatments(ctx context.Context, subjectID string, includeArchived bool) ([]models.Treatment, error) {
	if _, err := s.store.GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	return s.store.GetTreatments(ctx, subjectID, includeArchived)
}

// Overview summarises every active treatment of the subject.
func (s *Service) Overview(ctx context.Context, subjectID string) ([]TreatmentSummary, error) {
	treatments, err := s.Treatments(ctx, subjectID, false)
	if err != nil {
		return nil, err
	}

	out := make([]TreatmentSummary, 0, len(treatments))
	for _, t := range treatments {
		summary, err := s.Summary(ctx, subjectID, t.Type)
		if err != nil {
			return nil, fmt.Errorf("summarising %s: %w", t.Type, err)
		}
		out = append(out, TreatmentSummary{Treatment: t, Summary: summary})
	}
	return out, nil
}

// Reset deletes all of the subject's check-ins and drops their cached summaries.
func (s *Service) Reset(ctx context.Context, subjectID string) (int64, error) {
	n, err := s.store.ResetSubject(ctx, subjectID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, cache.SubjectPrefix(subjectID))
	s.log.Info("subject reset", "subject", subjectID, "deleted", n)
	return n, nil
}

func (s *Service) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		s.log.Warn("cache invalidation failed", "prefix", prefix, "error", err)
	}
}

// summaryKey extends cache.SummaryKey with the options that shape the result.
func summaryKey(subjectID, treatmentType string, today adherence.Date, opts adherence.Options) string {
	return fmt.Sprintf("%s:w%d:%s:%t",
		cache.SummaryKey(subjectID, treatmentType, today.String()),
		opts.WindowDays, opts.WeekStart, opts.DistinguishNoData)
}
