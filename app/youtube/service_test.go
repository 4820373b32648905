package youtube

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	ytfeed "github.com/umputun/yt-feed/app/youtube/feed"
	"github.com/umputun/yt-feed/app/youtube/mocks"
	"github.com/umputun/yt-feed/app/youtube/store"
)

func TestService_Do(t *testing.T) {
	feeds := &mocks.FeedServiceMock{
		GetFunc: func(ctx context.Context, id string, feedType ytfeed.Type) (ytfeed.Normalized, error) {
			return ytfeed.Normalized{ChannelID: id, Title: "title " + id, Videos: []ytfeed.Video{
				{ID: "vid1", ChannelID: id, Title: "title1", Published: time.Now()},
				{ID: "vid2", ChannelID: id, Title: "title2", Published: time.Now()},
			}}, nil
		},
	}

	boltStore := prepStore(t)
	svc := Service{
		Feeds: []FeedInfo{
			{ID: "channel1", Name: "name1", Type: ytfeed.FTChannel},
			{ID: "playlist1", Name: "name2", Type: ytfeed.FTPlaylist},
		},
		FeedService:   feeds,
		Store:         boltStore,
		CheckDuration: time.Millisecond * 500,
		KeepPerFeed:   10,
		Concurrent:    2,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*900)
	defer cancel()

	err := svc.Do(ctx)
	assert.EqualError(t, err, "context deadline exceeded")

	calls := feeds.GetCalls()
	require.Equal(t, 4, len(calls))
	ids := []string{}
	for _, c := range calls {
		ids = append(ids, string(c.FeedType)+":"+c.ID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"channel:channel1", "channel:channel1", "playlist:playlist1", "playlist:playlist1"}, ids)

	res, err := boltStore.Load(ytfeed.FTChannel, "channel1", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, len(res), "two snapshots for channel1, no dedup")
	assert.Equal(t, 2, len(res[0].Feed.Videos))
	assert.Equal(t, "title channel1", res[0].Feed.Title)

	res, err = boltStore.Load(ytfeed.FTPlaylist, "playlist1", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, ytfeed.FTPlaylist, res[0].Type)
}

func TestService_RefreshWithErrors(t *testing.T) {
	feeds := &mocks.FeedServiceMock{
		GetFunc: func(ctx context.Context, id string, feedType ytfeed.Type) (ytfeed.Normalized, error) {
			switch id {
			case "bad1":
				return ytfeed.Normalized{}, &ytfeed.FetchError{URL: "http://example.com/bad1", Err: errors.New("404 Not Found")}
			case "bad2":
				return ytfeed.Normalized{}, ytfeed.ErrMissingPlaylistID
			}
			return ytfeed.Normalized{ChannelID: id}, nil
		},
	}
	st := &mocks.StoreServiceMock{
		SaveFunc:      func(snap store.Snapshot) (bool, error) { return true, nil },
		RemoveOldFunc: func(feedType ytfeed.Type, id string, keep int) (int, error) { return 0, nil },
	}

	svc := Service{
		Feeds: []FeedInfo{
			{ID: "good", Type: ytfeed.FTChannel, Keep: 3},
			{ID: "bad1", Type: ytfeed.FTChannel},
			{ID: "bad2", Type: ytfeed.FTPlaylist},
		},
		FeedService: feeds,
		Store:       st,
		KeepPerFeed: 7,
	}

	err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "failed to get channel bad1 (): failed to fetch http://example.com/bad1: 404 Not Found")
	assert.True(t, errors.Is(err, ytfeed.ErrMissingPlaylistID))
	var fetchErr *ytfeed.FetchError
	assert.True(t, errors.As(err, &fetchErr))

	require.Equal(t, 1, len(st.SaveCalls()), "only good feed saved")
	assert.Equal(t, "good", st.SaveCalls()[0].Snap.RequestID)
	assert.Equal(t, "good", st.SaveCalls()[0].Snap.Feed.ChannelID)
	require.Equal(t, 1, len(st.RemoveOldCalls()))
	assert.Equal(t, 3, st.RemoveOldCalls()[0].Keep, "per-feed keep overrides default")
}

func TestService_RefreshSaveFailed(t *testing.T) {
	feeds := &mocks.FeedServiceMock{
		GetFunc: func(ctx context.Context, id string, feedType ytfeed.Type) (ytfeed.Normalized, error) {
			return ytfeed.Normalized{ChannelID: id}, nil
		},
	}
	st := &mocks.StoreServiceMock{
		SaveFunc: func(snap store.Snapshot) (bool, error) { return false, errors.New("db is closed") },
	}
	svc := Service{Feeds: []FeedInfo{{ID: "ch1", Type: ytfeed.FTChannel}}, FeedService: feeds, Store: st}

	err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is closed")
	assert.Equal(t, 0, len(st.RemoveOldCalls()))
}

func TestService_RefreshRSS(t *testing.T) {
	loc := t.TempDir()
	feeds := &mocks.FeedServiceMock{
		GetFunc: func(ctx context.Context, id string, feedType ytfeed.Type) (ytfeed.Normalized, error) {
			return ytfeed.Normalized{ChannelID: "UC1", PlaylistID: id, Title: "playlist title",
				Videos: []ytfeed.Video{{ID: "vid1", Title: "video title", ChannelID: "UC1"}}}, nil
		},
	}
	st := &mocks.StoreServiceMock{
		SaveFunc:      func(snap store.Snapshot) (bool, error) { return true, nil },
		RemoveOldFunc: func(feedType ytfeed.Type, id string, keep int) (int, error) { return 1, nil },
	}
	svc := Service{
		Feeds:        []FeedInfo{{ID: "PL1", Name: "my playlist", Type: ytfeed.FTPlaylist}},
		FeedService:  feeds,
		Store:        st,
		RSSFileStore: RSSFileStore{Enabled: true, Location: loc},
	}
	require.NoError(t, svc.Refresh(context.Background()))

	data, err := os.ReadFile(filepath.Join(loc, "playlist-PL1.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>my playlist</title>")
	assert.Contains(t, string(data), "<link>https://www.youtube.com/playlist?list=PL1</link>")
	assert.Contains(t, string(data), "<guid>UC1::vid1</guid>")
}

func TestService_RefreshMetrics(t *testing.T) {
	feeds := &mocks.FeedServiceMock{
		GetFunc: func(ctx context.Context, id string, feedType ytfeed.Type) (ytfeed.Normalized, error) {
			if id == "bad" {
				return ytfeed.Normalized{}, errors.New("failed")
			}
			return ytfeed.Normalized{ChannelID: id, Videos: []ytfeed.Video{{ID: "v1"}, {ID: "v2"}, {ID: "v3"}}}, nil
		},
	}
	st := &mocks.StoreServiceMock{
		SaveFunc:      func(snap store.Snapshot) (bool, error) { return true, nil },
		RemoveOldFunc: func(feedType ytfeed.Type, id string, keep int) (int, error) { return 0, nil },
	}
	svc := Service{
		Feeds:       []FeedInfo{{ID: "metrics-user", Type: ytfeed.FTUser}, {ID: "bad", Type: ytfeed.FTUser}},
		FeedService: feeds,
		Store:       st,
	}

	okBefore := testutil.ToFloat64(feedRefreshTotal.WithLabelValues("user", "ok"))
	failedBefore := testutil.ToFloat64(feedRefreshTotal.WithLabelValues("user", "failed"))
	require.Error(t, svc.Refresh(context.Background()))

	assert.InDelta(t, okBefore+1, testutil.ToFloat64(feedRefreshTotal.WithLabelValues("user", "ok")), 0.001)
	assert.InDelta(t, failedBefore+1, testutil.ToFloat64(feedRefreshTotal.WithLabelValues("user", "failed")), 0.001)
	assert.InDelta(t, 3, testutil.ToFloat64(feedVideos.WithLabelValues("user", "metrics-user")), 0.001)
}

func TestService_keep(t *testing.T) {
	svc := Service{KeepPerFeed: 5}
	assert.Equal(t, 5, svc.keep(FeedInfo{}))
	assert.Equal(t, 2, svc.keep(FeedInfo{Keep: 2}))
	assert.Equal(t, 1, (&Service{}).keep(FeedInfo{}))
}

func TestRSSFileStore(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "rss")
	s := RSSFileStore{Location: loc}
	require.NoError(t, s.Save(ytfeed.FTChannel, "UC1", []byte("data")))
	_, err := os.Stat(s.FileName(ytfeed.FTChannel, "UC1"))
	assert.True(t, os.IsNotExist(err), "disabled store writes nothing")

	s.Enabled = true
	require.NoError(t, s.Save(ytfeed.FTDefault, "UC1", []byte("data")))
	data, err := os.ReadFile(filepath.Join(loc, "channel-UC1.xml"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	assert.Equal(t, filepath.Join(loc, "user-blah.xml"), s.FileName(ytfeed.FTUser, "../../blah"))

	require.NoError(t, s.Save(ytfeed.FTChannel, "UC1", []byte("new")))
	data, err = os.ReadFile(filepath.Join(loc, "channel-UC1.xml"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data), "file closed and replaced on save")

	bad := RSSFileStore{Location: filepath.Join(loc, "channel-UC1.xml"), Enabled: true}
	assert.Error(t, bad.Save(ytfeed.FTChannel, "UC1", []byte("data")), "location is a file")
}

func prepStore(t *testing.T) *store.BoltDB {
	db, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0o600, &bolt.Options{Timeout: 1 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &store.BoltDB{DB: db}
}
