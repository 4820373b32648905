// Package api provides rest-like server
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth_chi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/yt-feed/app/rss"
	"github.com/umputun/yt-feed/app/youtube"
	ytfeed "github.com/umputun/yt-feed/app/youtube/feed"
	"github.com/umputun/yt-feed/app/youtube/store"
)

//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . FeedService
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Server provides HTTP API
type Server struct {
	Version     string
	FeedService FeedService
	Store       Store // optional, archive disabled if nil
	Feeds       []youtube.FeedInfo
	Language    string
	RateLimit   float64 // requests per second per client, 5 if not set
	httpServer  *http.Server
}

// FeedService provides normalized youtube feeds
type FeedService interface {
	Get(ctx context.Context, id string, feedType ytfeed.Type) (ytfeed.Normalized, error)
}

// Store provides access to archived snapshots
type Store interface {
	Load(feedType ytfeed.Type, id string, maximum int) ([]store.Snapshot, error)
}

// Run starts http server for API with all routes, blocks until ctx is done
func (s *Server) Run(ctx context.Context, port int) {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] http server shutdown error, %s", err)
		}
	}()

	log.Printf("[INFO] start http server on port %d", port)
	err := s.httpServer.ListenAndServe()
	log.Printf("[WARN] http server terminated, %s", err)
}

func (s *Server) router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RealIP, rest.Recoverer(log.Default()))
	router.Use(middleware.Throttle(1000), middleware.Timeout(60*time.Second))
	router.Use(rest.AppInfo("yt-feed", "umputun", s.Version), rest.Ping)
	rateLimit := s.RateLimit
	if rateLimit <= 0 {
		rateLimit = 5
	}
	router.Use(tollbooth_chi.LimitHandler(tollbooth.NewLimiter(rateLimit, nil)))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/v1", func(r chi.Router) {
		l := logger.New(logger.Log(log.Default()), logger.Prefix("[INFO]"))
		r.Use(l.Handler)
		r.Get("/channel/{id}", s.getViewCtrl(ytfeed.FTChannel))
		r.Get("/playlist/{id}", s.getViewCtrl(ytfeed.FTPlaylist))
		r.Get("/user/{id}", s.getViewCtrl(ytfeed.FTUser))
		r.Get("/rss/{type}/{id}", s.getRSSCtrl)
		r.Get("/archive/{type}/{id}", s.getArchiveCtrl)
		r.Get("/list", s.getListCtrl)
	})

	return router
}

// GET /v1/{channel|playlist|user}/{id} - returns json view of the feed
func (s *Server) getViewCtrl(feedType ytfeed.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		n, err := s.FeedService.Get(r.Context(), id, feedType)
		if err != nil {
			rest.SendErrorJSON(w, r, log.Default(), errStatus(err), err, "failed to get "+string(feedType))
			return
		}
		render.JSON(w, r, n.View(feedType))
	}
}

// GET /v1/rss/{type}/{id} - returns rss for given youtube feed
func (s *Server) getRSSCtrl(w http.ResponseWriter, r *http.Request) {
	feedType, err := ytfeed.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "bad feed type")
		return
	}
	id := chi.URLParam(r, "id")

	n, err := s.FeedService.Get(r.Context(), id, feedType)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), errStatus(err), err, "failed to get feed")
		return
	}

	opts := rss.Opts{Language: s.Language}
	if fi, ok := s.feedInfo(feedType, id); ok {
		opts.Title = fi.Name
	}
	b, err := rss.Render(n, feedType, opts)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to make rss")
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=UTF-8")
	_, _ = w.Write(b)
}

// GET /v1/archive/{type}/{id}?max=N - returns stored snapshots, newest first
func (s *Server) getArchiveCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, errors.New("archive disabled"), "no archive")
		return
	}
	feedType, err := ytfeed.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "bad feed type")
		return
	}

	maxItems := 10
	if v := r.URL.Query().Get("max"); v != "" {
		if maxItems, err = strconv.Atoi(v); err != nil || maxItems <= 0 {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, fmt.Errorf("bad max %q", v), "bad max")
			return
		}
	}

	snaps, err := s.Store.Load(feedType, chi.URLParam(r, "id"), maxItems)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			code = http.StatusNotFound
		}
		rest.SendErrorJSON(w, r, log.Default(), code, err, "failed to load archive")
		return
	}
	render.JSON(w, r, snaps)
}

// GET /v1/list - returns configured feeds
func (s *Server) getListCtrl(w http.ResponseWriter, r *http.Request) {
	feeds := s.Feeds
	if feeds == nil {
		feeds = []youtube.FeedInfo{}
	}
	render.JSON(w, r, feeds)
}

func (s *Server) feedInfo(feedType ytfeed.Type, id string) (youtube.FeedInfo, bool) {
	for _, fi := range s.Feeds {
		if fi.ID == id && (fi.Type == feedType || fi.Type == ytfeed.FTDefault && feedType == ytfeed.FTChannel) {
			return fi, true
		}
	}
	return youtube.FeedInfo{}, false
}

// errStatus maps feed errors to http status
func errStatus(err error) int {
	var fetchErr *ytfeed.FetchError
	var decodeErr *ytfeed.DecodeError
	switch {
	case errors.As(err, &fetchErr), errors.As(err, &decodeErr):
		return http.StatusBadGateway
	case errors.Is(err, ytfeed.ErrMissingIdentifier), errors.Is(err, ytfeed.ErrMissingPlaylistID),
		errors.Is(err, ytfeed.ErrMissingSelfLink), errors.Is(err, ytfeed.ErrMalformedSelfLink):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
