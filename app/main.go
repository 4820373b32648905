package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	bolt "go.etcd.io/bbolt"

	"github.com/umputun/yt-feed/app/api"
	"github.com/umputun/yt-feed/app/config"
	"github.com/umputun/yt-feed/app/youtube"
	ytfeed "github.com/umputun/yt-feed/app/youtube/feed"
	"github.com/umputun/yt-feed/app/youtube/store"
)

type options struct {
	Conf string `short:"f" long:"conf" env:"YT_CONF" default:"yt-feed.yml" description:"config file (yml)"`
	DB   string `short:"c" long:"db" env:"YT_DB" description:"bolt db file, overrides config"`
	Port int    `short:"p" long:"port" env:"YT_PORT" default:"8080" description:"http server port"`

	// one-shot mode, prints a single feed and exits
	Channel  string        `long:"channel" env:"YT_CHANNEL" description:"channel id to print"`
	Playlist string        `long:"playlist" env:"YT_PLAYLIST" description:"playlist id to print"`
	User     string        `long:"user" env:"YT_USER" description:"legacy user name to print"`
	Format   string        `long:"format" env:"YT_FORMAT" choice:"json" choice:"text" default:"json" description:"output format"`
	Timeout  time.Duration `long:"timeout" env:"YT_TIMEOUT" default:"30s" description:"http timeout for one-shot mode"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

// request is a single feed requested from the command line
type request struct {
	id       string
	feedType ytfeed.Type
}

var revision = "local"

func main() {
	fmt.Fprintf(os.Stderr, "yt-feed %s\n", revision)
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}
	setupLog(opts.Dbg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if reqs := requests(opts); len(reqs) > 0 {
		f := &ytfeed.Feed{
			Fetcher:         &ytfeed.HTTPFetcher{Client: &http.Client{Timeout: opts.Timeout}, UserAgent: "yt-feed"},
			ChannelBaseURL:  ytfeed.ChannelBaseURL,
			PlaylistBaseURL: ytfeed.PlaylistBaseURL,
			UserBaseURL:     ytfeed.UserBaseURL,
		}
		for _, req := range reqs {
			if err := printFeed(ctx, f, req, opts.Format, os.Stdout); err != nil {
				log.Fatalf("[ERROR] %v", err)
			}
		}
		return
	}

	if err := run(ctx, opts); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

// run loads config, starts refresher and blocks on http server till ctx is done
func run(ctx context.Context, opts options) error {
	conf, err := config.Load(opts.Conf)
	if err != nil {
		return fmt.Errorf("can't load config %s: %w", opts.Conf, err)
	}
	if opts.DB != "" {
		conf.System.DB = opts.DB
	}

	db, err := makeBoltDB(conf.System.DB)
	if err != nil {
		return fmt.Errorf("can't open db %s: %w", conf.System.DB, err)
	}
	defer db.Close()

	f := makeFeed(conf)
	svc := youtube.Service{
		Feeds:         conf.YouTube.Feeds,
		FeedService:   f,
		Store:         db,
		RSSFileStore:  youtube.RSSFileStore{Location: conf.YouTube.RSSLocation, Enabled: conf.YouTube.RSSLocation != ""},
		CheckDuration: conf.System.UpdateInterval,
		Concurrent:    conf.System.Concurrent,
		KeepPerFeed:   conf.System.MaxKeep,
		Language:      conf.YouTube.Language,
	}
	go func() {
		if err := svc.Do(ctx); err != nil {
			log.Printf("[INFO] youtube service stopped, %v", err)
		}
	}()

	server := api.Server{
		Version:     revision,
		FeedService: f,
		Store:       db,
		Feeds:       conf.YouTube.Feeds,
		Language:    conf.YouTube.Language,
	}
	server.Run(ctx, opts.Port)
	return nil
}

func makeFeed(conf *config.Conf) *ytfeed.Feed {
	return &ytfeed.Feed{
		Fetcher: &ytfeed.HTTPFetcher{
			Client:    &http.Client{Timeout: conf.System.HTTPTimeout},
			UserAgent: conf.System.UserAgent,
			MaxSize:   conf.System.MaxBodySize,
		},
		ChannelBaseURL:  conf.YouTube.BaseChanURL,
		PlaylistBaseURL: conf.YouTube.BasePlaylistURL,
		UserBaseURL:     conf.YouTube.BaseUserURL,
	}
}

func makeBoltDB(dbFile string) (*store.BoltDB, error) {
	log.Printf("[INFO] bolt (persistent) store, %s", dbFile)
	if err := os.MkdirAll(filepath.Dir(dbFile), 0o700); err != nil {
		return nil, fmt.Errorf("can't make directory for %s: %w", dbFile, err)
	}
	db, err := bolt.Open(dbFile, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	return &store.BoltDB{DB: db}, nil
}

func requests(opts options) (res []request) {
	if opts.Channel != "" {
		res = append(res, request{id: opts.Channel, feedType: ytfeed.FTChannel})
	}
	if opts.Playlist != "" {
		res = append(res, request{id: opts.Playlist, feedType: ytfeed.FTPlaylist})
	}
	if opts.User != "" {
		res = append(res, request{id: opts.User, feedType: ytfeed.FTUser})
	}
	return res
}

// printFeed gets a single feed and writes its view as indented json or as a human-readable list
func printFeed(ctx context.Context, f *ytfeed.Feed, req request, format string, w io.Writer) error {
	n, err := f.Get(ctx, req.id, req.feedType)
	if err != nil {
		return err
	}

	if format == "text" {
		return printText(n, req, w)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n.View(req.feedType))
}

func printText(n ytfeed.Normalized, req request, w io.Writer) error {
	id := n.ChannelID
	if req.feedType == ytfeed.FTPlaylist {
		id = n.PlaylistID
	}
	if _, err := fmt.Fprintf(w, "%s %s: %s by %s, published %s\n%s\n", req.feedType, id, n.Title, n.Author,
		humanize.Time(n.Published), n.URL); err != nil {
		return err
	}
	for i, v := range n.Videos {
		if _, err := fmt.Fprintf(w, "%3d. %s [%s] %s, %s views\n     %s\n", i+1, v.Title, v.ID,
			humanize.Time(v.Published), humanize.Comma(int64(min(v.Views, math.MaxInt64))), v.URL); err != nil {
			return err
		}
	}
	return nil
}

func setupLog(dbg bool) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.Msec, log.LevelBraces)
		return
	}
	log.Setup(log.Msec, log.LevelBraces)
}
