package struktur

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

type Service struct {
	client *apiclient.Client
	repo   Repository
}

func NewService(client *apiclient.Client, repo Repository) *Service {
	return &Service{client: client, repo: repo}
}

// List returns every node with parent names resolved.
func (s *Service) List(ctx context.Context, sess auth.Session) ([]Struktur, error) {
	records, err := s.repo.List(ctx, s.client.WithToken(sess.Token))
	if err != nil {
		return nil, err
	}
	return withParentNames(records), nil
}

// Get finds id in the full list.
func (s *Service) Get(ctx context.Context, sess auth.Session, id string) (Struktur, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Struktur{}, shared.ErrInvalidID
	}
	records, err := s.List(ctx, sess)
	if err != nil {
		return Struktur{}, err
	}
	for _, r := range records {
		if r.key() == id {
			return r, nil
		}
	}
	return Struktur{}, fmt.Errorf("struktur %s: %w", id, shared.ErrEmptyResult)
}

// EditView loads the record and the parent candidates concurrently.
func (s *Service) EditView(ctx context.Context, sess auth.Session, id string) (Struktur, []Struktur, error) {
	var (
		record  Struktur
		parents []Struktur
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = s.Get(gctx, sess, id)
		return err
	})
	g.Go(func() error {
		var err error
		parents, err = s.Parents(gctx, sess, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return Struktur{}, nil, err
	}
	return record, parents, nil
}

// Parents lists the nodes that may be chosen as parent of self, ordered by id.
// self is excluded; pass "" when creating.
func (s *Service) Parents(ctx context.Context, sess auth.Session, self string) ([]Struktur, error) {
	records, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	out := make([]Struktur, 0, len(records))
	for _, r := range records {
		if self != "" && r.key() == self {
			continue
		}
		out = append(out, r)
	}
	sortByID(out)
	return out, nil
}

func (s *Service) Create(ctx context.Context, sess auth.Session, in Input) error {
	in, err := s.validate("", in)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, s.client.WithToken(sess.Token), in)
}

func (s *Service) Update(ctx context.Context, sess auth.Session, id string, in Input) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return shared.ErrInvalidID
	}
	in, err := s.validate(id, in)
	if err != nil {
		return err
	}
	if in.Status == "" {
		in.Status = liststate.StatusActive
	}
	return s.repo.Update(ctx, s.client.WithToken(sess.Token), id, in)
}

// SetStatus writes the given status.
func (s *Service) SetStatus(ctx context.Context, sess auth.Session, id, status string) error {
	return s.repo.SetStatus(ctx, s.client.WithToken(sess.Token), id, status)
}
