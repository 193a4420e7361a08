package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"product-browser/internal/core/model"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, s model.Session) (model.Session, error)
	Get(ctx context.Context, id string) (model.Session, error)
	Update(ctx context.Context, id string, fn func(model.Session) model.Session) (model.Session, error)
	Delete(ctx context.Context, id string) error
	Count() int
}

type CatalogLoader interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
}

var (
	ErrValidation = model.ErrValidation
	ErrNotFound   = model.ErrNotFound
)

type Service struct {
	Loader   CatalogLoader
	Sessions SessionRepository

	catalog *Catalog
	once    sync.Once
	loadErr error
	log     *slog.Logger
	now     func() time.Time
}

func NewService(loader CatalogLoader, sessions SessionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		Loader:   loader,
		Sessions: sessions,
		catalog:  NewCatalog(),
		log:      logger,
		now:      time.Now,
	}
}

// Load retrieves the catalog. Only the first call fetches; later calls
// return the first outcome. A failure is logged and leaves the catalog
// empty, which every view treats as "no products".
func (s *Service) Load(ctx context.Context) error {
	s.once.Do(func() {
		if s.Loader == nil {
			s.loadErr = fmt.Errorf("%w: no catalog loader configured", model.ErrLoadFailure)
			s.catalog.fail(s.loadErr)
			s.log.Error("catalog load failed", "err", s.loadErr)
			return
		}
		products, err := s.Loader.FetchProducts(ctx)
		if err != nil {
			if !errors.Is(err, model.ErrLoadFailure) {
				err = fmt.Errorf("%w: %w", model.ErrLoadFailure, err)
			}
			s.loadErr = err
			s.catalog.fail(err)
			s.log.Error("catalog load failed", "err", err)
			return
		}
		s.catalog.set(products)
		s.log.Info("catalog loaded", "products", len(products))
	})
	return s.loadErr
}

func (s *Service) Catalog() *Catalog { return s.catalog }

func (s *Service) CatalogStatus() model.CatalogStatus { return s.catalog.Status() }

// NewBrowser returns a standalone browser over the service catalog.
func (s *Service) NewBrowser() *Browser { return NewBrowser(s.catalog) }

// Query derives a view for a caller-supplied state without touching any session.
func (s *Service) Query(_ context.Context, st model.ViewState) (model.Page[model.Product], error) {
	if err := st.Validate(); err != nil {
		return model.Page[model.Product]{}, err
	}
	return DeriveView(s.catalog.Products(), st), nil
}

func (s *Service) CategoryOptions(_ context.Context) []string {
	return NewBrowser(s.catalog).CategoryOptions()
}

func (s *Service) CreateSession(ctx context.Context) (model.Session, error) {
	now := s.now()
	sess := model.Session{
		ID:        uuid.NewString(),
		State:     model.DefaultViewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.Sessions.Create(ctx, sess)
}

func (s *Service) GetSession(ctx context.Context, id string) (model.Session, error) {
	sess, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return model.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if err := s.Sessions.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) NextPage(ctx context.Context, id string) (model.Session, error) {
	return s.apply(ctx, id, func(b *Browser) { b.Next() })
}

func (s *Service) PrevPage(ctx context.Context, id string) (model.Session, error) {
	return s.apply(ctx, id, func(b *Browser) { b.Prev() })
}

func (s *Service) SetCategory(ctx context.Context, id, category string) (model.Session, error) {
	if category == "" {
		return model.Session{}, fmt.Errorf("%w: category must not be empty", ErrValidation)
	}
	return s.apply(ctx, id, func(b *Browser) { b.SetCategory(category) })
}

func (s *Service) SetSort(ctx context.Context, id, sort string) (model.Session, error) {
	mode, err := model.ParseSortMode(sort)
	if err != nil {
		return model.Session{}, err
	}
	return s.apply(ctx, id, func(b *Browser) { b.SetSort(mode) })
}

// SessionView derives the visible page for a session's current state.
func (s *Service) SessionView(sess model.Session) model.Page[model.Product] {
	return ResumeBrowser(s.catalog, sess.State).View()
}

// apply runs exactly one controller operation against a session's state.
func (s *Service) apply(ctx context.Context, id string, op func(*Browser)) (model.Session, error) {
	sess, err := s.Sessions.Update(ctx, id, func(cur model.Session) model.Session {
		b := ResumeBrowser(s.catalog, cur.State)
		op(b)
		cur.State = b.State()
		cur.UpdatedAt = s.now()
		return cur
	})
	if err != nil {
		return model.Session{}, ErrNotFound
	}
	return sess, nil
}
