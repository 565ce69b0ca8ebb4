package cart

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"lightshop/pkg/catalog"
	"lightshop/pkg/logger"
	"lightshop/pkg/otel"
)

// Result is what a cart command hands back to the caller.
type Result struct {
	Cart    View     `json:"cart"`
	Notices []Notice `json:"notices"`
}

// Service runs cart commands for sessions. Each call rebuilds the session's
// Engine from the store, applies one command and saves the outcome. Commands
// for the same session are serialized.
type Service struct {
	catalog *catalog.Catalog
	store   Store
	log     *logger.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewService wires a service over the catalog and the session store.
func NewService(c *catalog.Catalog, s Store, log *logger.Logger) *Service {
	return &Service{
		catalog: c,
		store:   s,
		log:     log,
		locks:   make(map[string]*sessionLock),
	}
}

// Catalog returns the catalog the service resolves products against.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Get returns the session's cart without changing it.
func (s *Service) Get(ctx context.Context, sessionID string) (Result, error) {
	ctx, span := otel.AddSpan(ctx, "cart.Get", attribute.String("session.id", sessionID))
	defer span.End()

	rec := &Recorder{}
	e, err := s.engine(ctx, sessionID, rec)
	if err != nil {
		return Result{}, err
	}
	return Result{Cart: e.View(), Notices: rec.Notices()}, nil
}

// Add puts one unit of productID in the session's cart.
func (s *Service) Add(ctx context.Context, sessionID string, productID int) (Result, error) {
	ctx, span := otel.AddSpan(ctx, "cart.Add", attribute.String("session.id", sessionID), attribute.Int("product.id", productID))
	defer span.End()

	p, err := s.catalog.Get(productID)
	if err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, sessionID, func(e *Engine) View {
		return e.Add(p)
	})
}

// Remove deletes productID from the session's cart. An absent product is
// not an error.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int) (Result, error) {
	ctx, span := otel.AddSpan(ctx, "cart.Remove", attribute.String("session.id", sessionID), attribute.Int("product.id", productID))
	defer span.End()

	return s.mutate(ctx, sessionID, func(e *Engine) View {
		return e.Remove(productID)
	})
}

// Checkout confirms the session's order intent. The cart is kept as is.
func (s *Service) Checkout(ctx context.Context, sessionID string) (Result, bool, error) {
	ctx, span := otel.AddSpan(ctx, "cart.Checkout", attribute.String("session.id", sessionID))
	defer span.End()

	unlock := s.lock(sessionID)
	defer unlock()

	rec := &Recorder{}
	e, err := s.engine(ctx, sessionID, rec)
	if err != nil {
		return Result{}, false, err
	}
	v, placed := e.Checkout()
	if placed {
		s.log.Info(ctx, "order intent confirmed", "session", sessionID, "lines", v.ItemCount, "grand_total", v.GrandTotal)
	}
	return Result{Cart: v, Notices: rec.Notices()}, placed, nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, cmd func(*Engine) View) (Result, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	rec := &Recorder{}
	e, err := s.engine(ctx, sessionID, rec)
	if err != nil {
		return Result{}, err
	}
	v := cmd(e)
	if err := s.store.Save(ctx, sessionID, Items(e.Cart())); err != nil {
		s.log.Error(ctx, "save cart", "session", sessionID, "error", err)
		return Result{}, err
	}
	s.log.Debug(ctx, "cart updated", "session", sessionID, "lines", v.ItemCount, "grand_total", v.GrandTotal)
	return Result{Cart: v, Notices: rec.Notices()}, nil
}

// engine rebuilds the session's Engine. Stored items whose product is no
// longer in the catalog are dropped.
func (s *Service) engine(ctx context.Context, sessionID string, n Notifier) (*Engine, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.log.Error(ctx, "load cart", "session", sessionID, "error", err)
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		p, err := s.catalog.Get(it.ProductID)
		if err != nil {
			s.log.Warn(ctx, "dropping stale cart item", "session", sessionID, "product", it.ProductID)
			continue
		}
		lines = append(lines, Line{Product: p, Quantity: it.Quantity})
	}
	e := NewEngine(n)
	e.Restore(lines)
	return e, nil
}

func (s *Service) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}
