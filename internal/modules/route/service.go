// README: Route service plans a multi-stop route, splits it into days and hands exports to mileage.
package route

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimcipher/internal/types"
)

// ExportTTL is how long an exported route stays importable.
const ExportTTL = time.Hour

var (
	ErrExportNotFound = errors.New("route export not found")
	ErrExportStale    = errors.New("route export expired")
	ErrNoLegSource    = errors.New("route planning not configured")
)

// LegSource turns a start and ordered destinations into driving legs.
type LegSource interface {
	Legs(ctx context.Context, start string, destinations []string, optimize bool) ([]Leg, error)
}

type ExportStore interface {
	Save(ctx context.Context, e Export, ttl time.Duration) error
	Get(ctx context.Context, id types.ID) (Export, error)
	Take(ctx context.Context, id types.ID) (Export, error)
}

type Options struct {
	Defaults        Settings
	MaxDestinations int
	ExportTTL       time.Duration
}

type Service struct {
	legs    LegSource
	exports ExportStore
	opts    Options
	log     *zap.Logger
	now     func() time.Time
}

func NewService(legs LegSource, exports ExportStore, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ExportTTL <= 0 {
		opts.ExportTTL = ExportTTL
	}
	if opts.MaxDestinations <= 0 {
		opts.MaxDestinations = 15
	}
	if opts.Defaults.MaxLegMiles <= 0 {
		opts.Defaults.MaxLegMiles = 50
	}
	return &Service{legs: legs, exports: exports, opts: opts, log: log.Named("route"), now: time.Now}
}

func (s *Service) DefaultSettings() Settings {
	return s.opts.Defaults
}

type PlanCommand struct {
	Start        string
	Destinations []string
	Settings     Settings
}

// Plan validates the stop list, fetches legs from the leg source and splits them.
func (s *Service) Plan(ctx context.Context, cmd PlanCommand) (SplitRoute, error) {
	start := strings.TrimSpace(cmd.Start)
	if start == "" {
		return SplitRoute{}, types.Invalid("start", "please enter a starting location")
	}
	dests := make([]string, 0, len(cmd.Destinations))
	for _, d := range cmd.Destinations {
		if d = strings.TrimSpace(d); d != "" {
			dests = append(dests, d)
		}
	}
	if len(dests) == 0 {
		return SplitRoute{}, types.Invalid("destinations", "please add at least one destination")
	}
	if len(dests) > s.opts.MaxDestinations {
		return SplitRoute{}, types.Invalid("destinations", "too many destinations")
	}
	if s.legs == nil {
		return SplitRoute{}, ErrNoLegSource
	}

	legs, err := s.legs.Legs(ctx, start, dests, cmd.Settings.OptimizeEnabled)
	if err != nil {
		s.log.Warn("leg source failed", zap.String("start", start), zap.Int("destinations", len(dests)), zap.Error(err))
		return SplitRoute{}, err
	}
	return s.Split(legs, cmd.Settings)
}

func (s *Service) Split(legs []Leg, settings Settings) (SplitRoute, error) {
	r, err := Split(legs, settings.MaxLegMiles, settings.SplitEnabled)
	if err != nil {
		s.log.Debug("split rejected", zap.Error(err))
		return SplitRoute{}, err
	}
	s.log.Info("route split",
		zap.Int("legs", len(legs)),
		zap.Int("days", len(r.Days)),
		zap.Float64("total_miles", r.TotalMiles),
	)
	return r, nil
}

// Export stores the route's aggregate mileage for a later Consume.
func (s *Service) Export(ctx context.Context, r SplitRoute) (Export, error) {
	if len(r.Days) == 0 {
		return Export{}, types.Invalid("route", "nothing to export")
	}
	e := Export{
		ID:            types.ID(uuid.NewString()),
		DistanceMiles: r.TotalMiles,
		TotalMinutes:  r.TotalMinutes,
		Days:          len(r.Days),
		Origin:        r.Origin(),
		Destination:   r.Destination(),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.exports.Save(ctx, e, s.opts.ExportTTL); err != nil {
		s.log.Error("save export", zap.Error(err))
		return Export{}, err
	}
	s.log.Info("route exported", zap.String("id", string(e.ID)), zap.Float64("miles", e.DistanceMiles))
	return e, nil
}

// Peek returns a fresh export without consuming it. A stale record is
// discarded and reported as ErrExportStale, as Consume does.
func (s *Service) Peek(ctx context.Context, id types.ID) (Export, error) {
	if id == "" {
		return Export{}, types.Invalid("export_id", "is required")
	}
	e, err := s.exports.Get(ctx, id)
	if err != nil {
		return Export{}, err
	}
	if e.IsStale(s.now(), s.opts.ExportTTL) {
		if _, err := s.exports.Take(ctx, id); err != nil && !errors.Is(err, ErrExportNotFound) {
			return Export{}, err
		}
		s.log.Info("discarded stale export", zap.String("id", string(id)), zap.Time("created_at", e.CreatedAt))
		return Export{}, ErrExportStale
	}
	return e, nil
}

// Restore puts a consumed export back for the rest of its lifetime, so a
// caller that fails after Consume does not lose it. Stale records stay gone.
func (s *Service) Restore(ctx context.Context, e Export) error {
	remaining := s.opts.ExportTTL - s.now().Sub(e.CreatedAt)
	if remaining > s.opts.ExportTTL {
		remaining = s.opts.ExportTTL
	}
	if remaining <= 0 {
		return ErrExportStale
	}
	if err := s.exports.Save(ctx, e, remaining); err != nil {
		s.log.Error("restore export", zap.String("id", string(e.ID)), zap.Error(err))
		return err
	}
	return nil
}

// Consume takes the export out of the store. Records at least ExportTTL old are
// discarded and reported as stale, whatever the store's own expiry did.
func (s *Service) Consume(ctx context.Context, id types.ID) (Export, error) {
	if id == "" {
		return Export{}, types.Invalid("export_id", "is required")
	}
	e, err := s.exports.Take(ctx, id)
	if err != nil {
		return Export{}, err
	}
	if e.IsStale(s.now(), s.opts.ExportTTL) {
		s.log.Info("discarded stale export", zap.String("id", string(id)), zap.Time("created_at", e.CreatedAt))
		return Export{}, ErrExportStale
	}
	return e, nil
}
