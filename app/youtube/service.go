// Package youtube provides periodic refresh and archiving of configured youtube feeds
package youtube

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"
	"github.com/hashicorp/go-multierror"

	"github.com/umputun/yt-feed/app/rss"
	ytfeed "github.com/umputun/yt-feed/app/youtube/feed"
	"github.com/umputun/yt-feed/app/youtube/store"
)

//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . FeedService
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . StoreService

// Service refreshes configured feeds and keeps their snapshots
type Service struct {
	Feeds         []FeedInfo
	FeedService   FeedService
	Store         StoreService
	RSSFileStore  RSSFileStore
	CheckDuration time.Duration
	Concurrent    int
	KeepPerFeed   int
	Language      string // rss language, optional
}

// FeedInfo contains channel, playlist or user ID, readable name and other per-feed info
type FeedInfo struct {
	Name string      `yaml:"name" json:"name"`
	ID   string      `yaml:"id" json:"id"`
	Type ytfeed.Type `yaml:"type" json:"type"`
	Keep int         `yaml:"keep" json:"keep,omitempty"`
}

// FeedService is an interface for getting normalized feed
type FeedService interface {
	Get(ctx context.Context, id string, feedType ytfeed.Type) (ytfeed.Normalized, error)
}

// StoreService is an interface for saving and cleaning snapshots
type StoreService interface {
	Save(snap store.Snapshot) (bool, error)
	RemoveOld(feedType ytfeed.Type, id string, keep int) (int, error)
}

// Do is a blocking function that refreshes all feeds on start and on each CheckDuration tick
func (s *Service) Do(ctx context.Context) error {
	log.Printf("[INFO] starting youtube service, %d feeds, every %v", len(s.Feeds), s.CheckDuration)
	for _, f := range s.Feeds {
		log.Printf("[INFO] youtube feed %+v", f)
	}

	tick := time.NewTicker(s.CheckDuration)
	defer tick.Stop()

	if err := s.Refresh(ctx); err != nil {
		log.Printf("[WARN] refresh failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if err := s.Refresh(ctx); err != nil {
				log.Printf("[WARN] refresh failed: %v", err)
			}
		}
	}
}

// Refresh gets all feeds concurrently and saves a snapshot for each.
// A failed feed doesn't stop others, all errors are returned together.
func (s *Service) Refresh(ctx context.Context) error {
	var allStats stats
	var errs *multierror.Error
	var mu sync.Mutex
	started := time.Now()

	swg := syncs.NewSizedGroup(s.concurrent(), syncs.Context(ctx))
	for _, fi := range s.Feeds {
		fi := fi
		swg.Go(func(ctx context.Context) {
			st, err := s.procFeed(ctx, fi)
			mu.Lock()
			defer mu.Unlock()
			allStats.add(st)
			if err != nil {
				errs = multierror.Append(errs, err)
			}
		})
	}
	swg.Wait()
	refreshDuration.Observe(time.Since(started).Seconds())

	log.Printf("[INFO] all feeds processed - feeds: %d, %s", len(s.Feeds), allStats.String())
	return errs.ErrorOrNil()
}

// procFeed gets a single feed, saves the snapshot and removes old ones
func (s *Service) procFeed(ctx context.Context, fi FeedInfo) (st stats, err error) {
	st.feeds++
	n, err := s.FeedService.Get(ctx, fi.ID, fi.Type)
	if err != nil {
		st.failed++
		feedRefreshTotal.WithLabelValues(string(fi.Type), "failed").Inc()
		return st, fmt.Errorf("failed to get %s %s (%s): %w", fi.Type, fi.ID, fi.Name, err)
	}
	st.videos += len(n.Videos)
	feedVideos.WithLabelValues(string(fi.Type), fi.ID).Set(float64(len(n.Videos)))
	log.Printf("[DEBUG] got %d videos for %s (%s)", len(n.Videos), fi.ID, fi.Name)

	snap := store.Snapshot{Type: fi.Type, RequestID: fi.ID, FetchedAt: time.Now(), Feed: n}
	created, err := s.Store.Save(snap)
	if err != nil {
		st.failed++
		feedRefreshTotal.WithLabelValues(string(fi.Type), "failed").Inc()
		return st, fmt.Errorf("failed to save %s: %w", snap.String(), err)
	}
	feedRefreshTotal.WithLabelValues(string(fi.Type), "ok").Inc()
	if created {
		st.saved++
	}

	removed, err := s.Store.RemoveOld(fi.Type, fi.ID, s.keep(fi))
	if err != nil { // even with error some of old snapshots may be removed
		log.Printf("[WARN] failed to remove some old snapshots for %s, %v", fi.ID, err)
	}
	st.removed += removed

	// save rss feed to fs, failure is not critical for the snapshot
	if s.RSSFileStore.Enabled {
		data, rssErr := rss.Render(n, fi.Type, rss.Opts{Title: fi.Name, Language: s.Language})
		if rssErr != nil {
			log.Printf("[WARN] failed to generate rss for %s: %v", fi.Name, rssErr)
			return st, nil
		}
		if rssErr = s.RSSFileStore.Save(fi.Type, fi.ID, data); rssErr != nil {
			log.Printf("[WARN] failed to save rss for %s: %v", fi.Name, rssErr)
		}
	}
	return st, nil
}

func (s *Service) keep(fi FeedInfo) int {
	keep := s.KeepPerFeed
	if fi.Keep > 0 {
		keep = fi.Keep
	}
	if keep <= 0 {
		keep = 1
	}
	return keep
}

func (s *Service) concurrent() int {
	if s.Concurrent <= 0 {
		return 1
	}
	return s.Concurrent
}

type stats struct {
	feeds   int
	videos  int
	saved   int
	removed int
	failed  int
}

func (st *stats) add(other stats) {
	st.feeds += other.feeds
	st.videos += other.videos
	st.saved += other.saved
	st.removed += other.removed
	st.failed += other.failed
}

func (st stats) String() string {
	return fmt.Sprintf("processed: %d, videos: %d, saved: %d, removed: %d, failed: %d",
		st.feeds, st.videos, st.saved, st.removed, st.failed)
}
