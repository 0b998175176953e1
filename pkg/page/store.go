package page

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"plataform/pkg/apperr"
	"plataform/pkg/backend"
	"plataform/pkg/logger"
)

// Store keeps the live pages of the process, one per page load.
type Store struct {
	client backend.Client
	opts   Options
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	pages map[string]*Page
}

func NewStore(client backend.Client, opts Options, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		client: client,
		opts:   opts,
		ttl:    ttl,
		now:    time.Now,
		pages:  map[string]*Page{},
	}
}

// Create starts a fresh page: empty record, reference fetches in flight.
func (s *Store) Create(ctx context.Context) *Page {
	p := newPage(uuid.NewString(), s.client, s.opts, s.now())
	s.mu.Lock()
	s.pages[p.ID] = p
	s.mu.Unlock()
	p.loader.Start(ctx)
	p.log().Info("page created")
	return p
}

// Get returns a live page and refreshes its idle clock.
func (s *Store) Get(id string) (*Page, error) {
	s.mu.Lock()
	p, ok := s.pages[id]
	s.mu.Unlock()
	if !ok {
		return nil, apperr.Wrapf(apperr.ErrNotFound, "page %s", id)
	}
	p.touch(s.now())
	return p, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Sweep closes pages idle for longer than the TTL and returns how many.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	var stale []*Page
	s.mu.Lock()
	for id, p := range s.pages {
		if p.idleSince().Before(cutoff) {
			stale = append(stale, p)
			delete(s.pages, id)
		}
	}
	s.mu.Unlock()
	for _, p := range stale {
		p.Close()
	}
	if len(stale) > 0 {
		logger.Infof("expired %d page(s), %d live", len(stale), s.Len())
	}
	return len(stale)
}

// Run sweeps periodically until ctx is done, then closes every page.
func (s *Store) Run(ctx context.Context) {
	every := s.ttl / 4
	if every < time.Second {
		every = time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

func (s *Store) CloseAll() {
	s.mu.Lock()
	pages := s.pages
	s.pages = map[string]*Page{}
	s.mu.Unlock()
	for _, p := range pages {
		p.Close()
	}
}
