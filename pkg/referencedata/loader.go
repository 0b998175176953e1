// Package referencedata loads the two option lists of a form page.
// Both fetches fire once, concurrently, and fail independently.
package referencedata

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"plataform/entities"
	"plataform/pkg/apperr"
	"plataform/pkg/backend"
	"plataform/pkg/logger"
)

type Loader struct {
	client  backend.Client
	once    sync.Once
	done    chan struct{}
	onError func(resource string, err error)

	mu     sync.Mutex
	infos  []entities.PropertyInfo
	labs   []entities.Laboratory
	errs   []error
	closed bool
	cancel context.CancelFunc
}

type Option func(*Loader)

// WithOnError is called once per failed fetch, unless the loader was closed.
func WithOnError(f func(resource string, err error)) Option {
	return func(l *Loader) { l.onError = f }
}

func New(client backend.Client, opts ...Option) *Loader {
	l := &Loader{client: client, done: make(chan struct{})}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start fires both fetches. Later calls are no-ops. The fetches outlive
// ctx's cancellation (a page load request ends before they do) but keep
// its values; only Close cancels them.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		l.mu.Lock()
		if l.closed {
			l.mu.Unlock()
			cancel()
			close(l.done)
			return
		}
		l.cancel = cancel
		l.mu.Unlock()

		var g errgroup.Group
		g.Go(func() error {
			list, err := l.client.PropertyInfos(fetchCtx)
			l.finish(backend.ResourcePropertyInfos, err, func() { l.infos = list })
			return nil
		})
		g.Go(func() error {
			list, err := l.client.Laboratories(fetchCtx)
			l.finish(backend.ResourceLaboratories, err, func() { l.labs = list })
			return nil
		})
		go func() {
			_ = g.Wait()
			cancel()
			close(l.done)
		}()
	})
}

// finish stores a result unless the loader was torn down meanwhile.
func (l *Loader) finish(resource string, err error, store func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		logger.WithFields(logrus.Fields{"component": "referencedata", "resource": resource}).Debug("result discarded after close")
		return
	}
	if err != nil {
		var fe *apperr.FetchError
		if !errors.As(err, &fe) {
			err = &apperr.FetchError{Resource: resource, Err: err}
		}
		l.errs = append(l.errs, err)
	} else {
		store()
	}
	l.mu.Unlock()

	if err != nil {
		logger.WithFields(logrus.Fields{"component": "referencedata", "resource": resource}).WithError(err).Error("fetch failed")
		if l.onError != nil {
			l.onError(resource, err)
		}
	}
}

// Wait blocks until both fetches settled or ctx is done. It reports
// whether they settled.
func (l *Loader) Wait(ctx context.Context) bool {
	select {
	case <-l.done:
		return true
	case <-ctx.Done():
		return false
	}
}

// Done is closed once both fetches settled.
func (l *Loader) Done() <-chan struct{} { return l.done }

// PropertyInfos is nil until the list loaded.
func (l *Loader) PropertyInfos() []entities.PropertyInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.infos == nil {
		return nil
	}
	return append([]entities.PropertyInfo{}, l.infos...)
}

func (l *Loader) Laboratories() []entities.Laboratory {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.labs == nil {
		return nil
	}
	return append([]entities.Laboratory{}, l.labs...)
}

// Errors returns the failed fetches, each a *apperr.FetchError.
func (l *Loader) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error(nil), l.errs...)
}

// Close cancels in-flight fetches; anything resolving afterwards is dropped.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
}
