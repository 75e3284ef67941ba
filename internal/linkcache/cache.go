// Package linkcache mirrors the product-link catalog in memory. The catalog
// changes rarely but is read on every order, so lookups are served from a
// periodically rebuilt snapshot, with a direct store query as fallback so a
// just-added product is purchasable before the next refresh.
package linkcache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"storefront/internal/metrics"
	"storefront/internal/repository/link_repo"
)

// snapshot is an immutable view of the catalog. It is replaced wholesale on
// refresh; readers see either the previous or the new map, never a mix.
type snapshot struct {
	generatedAt time.Time
	links       map[string]string
}

type Cache struct {
	repo            link_repo.LinkRepository
	logger          *zap.Logger
	refreshInterval time.Duration
	lookupTimeout   time.Duration

	current atomic.Pointer[snapshot]

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewCache(repo link_repo.LinkRepository, refreshInterval, lookupTimeout time.Duration, l *zap.Logger) *Cache {
	c := &Cache{
		repo:            repo,
		logger:          l,
		refreshInterval: refreshInterval,
		lookupTimeout:   lookupTimeout,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
	c.current.Store(&snapshot{generatedAt: time.Time{}, links: map[string]string{}})
	return c
}

// Start performs a best-effort initial refresh and launches the background
// refresh loop. Request serving never waits on a refresh.
func (c *Cache) Start(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("Initial product link refresh failed, starting with empty cache", zap.Error(err))
	}

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				refreshCtx, cancel := context.WithTimeout(context.Background(), c.lookupTimeout)
				if err := c.Refresh(refreshCtx); err != nil {
					c.logger.Error("Product link refresh failed, keeping previous snapshot", zap.Error(err))
				}
				cancel()
			case <-c.stop:
				return
			}
		}
	}()
	c.logger.Info("Product link cache started", zap.Duration("refresh_interval", c.refreshInterval))
}

// Stop cancels the refresh loop and waits for it to exit.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
	c.logger.Info("Product link cache stopped.")
}

// Refresh queries the full catalog and swaps in a new snapshot. No lock is
// held during the query; the swap is a single pointer store. On failure the
// previous snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) error {
	all, err := c.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	links := make(map[string]string, len(all))
	for _, link := range all {
		// First match wins: title is a best-effort unique key.
		if _, ok := links[link.Title]; ok {
			continue
		}
		links[link.Title] = link.DownloadLink
	}

	c.current.Store(&snapshot{generatedAt: time.Now(), links: links})
	c.logger.Debug("Product link snapshot replaced", zap.Int("entries", len(links)))
	return nil
}

// Lookup resolves a product title to its download link. A snapshot miss
// falls through to one direct store query; a store error or continued
// absence resolves to "", never an error. An empty title resolves to ""
// without touching the store.
func (c *Cache) Lookup(ctx context.Context, title string) string {
	if title == "" {
		return ""
	}

	if link, ok := c.current.Load().links[title]; ok {
		return link
	}

	metrics.LinkCacheFallbacks.Inc()

	lookupCtx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	link, err := c.repo.FindLinkByTitle(lookupCtx, title)
	if err != nil {
		c.logger.Warn("Fallback product link lookup failed", zap.String("title", title), zap.Error(err))
		return ""
	}
	return link
}
