package youtube

import (
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"
	"github.com/pkg/errors"

	ytfeed "github.com/umputun/yt-feed/app/youtube/feed"
)

// RSSFileStore is a store for RSS feed files
type RSSFileStore struct {
	Location string
	Enabled  bool
}

// Save RSS feed file to the FS as <type>-<id>.xml
func (s *RSSFileStore) Save(feedType ytfeed.Type, id string, rss []byte) error {
	if !s.Enabled {
		return nil
	}
	if err := os.MkdirAll(s.Location, 0o750); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", s.Location)
	}
	fname := s.FileName(feedType, id)
	fh, err := os.Create(fname) //nolint:gosec // location is from config
	if err != nil {
		return errors.Wrapf(err, "failed to create file %s", fname)
	}
	if _, err = fh.Write(rss); err != nil {
		_ = fh.Close()
		return errors.Wrapf(err, "failed to write to file %s", fname)
	}
	if err = fh.Close(); err != nil {
		return errors.Wrapf(err, "failed to close file %s", fname)
	}
	log.Printf("[INFO] rss feed file saved to %s", fname)
	return nil
}

// FileName returns full path of rss file for the feed
func (s *RSSFileStore) FileName(feedType ytfeed.Type, id string) string {
	if feedType == ytfeed.FTDefault {
		feedType = ytfeed.FTChannel
	}
	return filepath.Join(s.Location, string(feedType)+"-"+filepath.Base(id)+".xml")
}
