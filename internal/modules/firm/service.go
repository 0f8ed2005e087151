// README: Firm service manages the billing policy list (create/edit/delete, seed defaults).
package firm

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"claimcipher/internal/types"
)

var (
	ErrNotFound   = errors.New("firm not found")
	ErrDuplicate  = errors.New("a firm with this name already exists")
	ErrLastPolicy = errors.New("cannot delete the last firm")
)

// Repository is the persistence collaborator; *Store is the Postgres implementation.
type Repository interface {
	List(ctx context.Context) ([]Policy, error)
	Get(ctx context.Context, id types.ID) (Policy, error)
	Insert(ctx context.Context, p Policy) error
	Update(ctx context.Context, p Policy) error
	DeleteUnlessLast(ctx context.Context, id types.ID) error
	Count(ctx context.Context) (int, error)
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log.Named("firm")}
}

type CreateCommand struct {
	Name             string
	FreeMiles        float64
	RatePerMile      float64
	RoundTripDefault bool
}

type UpdateCommand struct {
	ID               types.ID
	Name             string
	FreeMiles        float64
	RatePerMile      float64
	RoundTripDefault bool
}

func (s *Service) List(ctx context.Context) ([]Policy, error) {
	return s.repo.List(ctx)
}

// Get resolves a policy by id; an empty id means no firm was selected.
func (s *Service) Get(ctx context.Context, id types.ID) (Policy, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Policy{}, types.Invalid("firm_id", "no firm selected")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (Policy, error) {
	p, err := NewPolicy(cmd.Name, cmd.FreeMiles, cmd.RatePerMile, cmd.RoundTripDefault)
	if err != nil {
		return Policy{}, err
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return Policy{}, err
	}
	s.log.Info("firm created", zap.String("id", string(p.ID)), zap.String("name", p.Name))
	return p, nil
}

// Update edits a policy in place; the id stays stable even if the name changes.
func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (Policy, error) {
	if cmd.ID == "" {
		return Policy{}, types.Invalid("id", "is required")
	}
	p := Policy{
		ID:               cmd.ID,
		Name:             strings.TrimSpace(cmd.Name),
		FreeMiles:        cmd.FreeMiles,
		RatePerMile:      cmd.RatePerMile,
		RoundTripDefault: cmd.RoundTripDefault,
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Policy{}, err
	}
	s.log.Info("firm updated", zap.String("id", string(p.ID)))
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if id == "" {
		return types.Invalid("id", "is required")
	}
	if err := s.repo.DeleteUnlessLast(ctx, id); err != nil {
		return err
	}
	s.log.Info("firm deleted", zap.String("id", string(id)))
	return nil
}

// SeedDefaults inserts DefaultPolicies when the list is empty. It returns the number inserted.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	inserted := 0
	for _, p := range DefaultPolicies() {
		err := s.repo.Insert(ctx, p)
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	s.log.Info("seeded default firms", zap.Int("count", inserted))
	return inserted, nil
}
