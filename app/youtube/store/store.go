// Package store provides an archive of normalized youtube feeds
package store

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/hashicorp/go-multierror"
	bolt "go.etcd.io/bbolt"

	"github.com/umputun/yt-feed/app/youtube/feed"
)

// ErrNotFound returned when nothing stored for the feed
var ErrNotFound = errors.New("not found")

// Snapshot is a normalized feed as it was fetched at FetchedAt
type Snapshot struct {
	Type      feed.Type       `json:"type"`
	RequestID string          `json:"request_id"` // id or user name used for the request
	FetchedAt time.Time       `json:"fetched_at"`
	Feed      feed.Normalized `json:"feed"`
}

func (s Snapshot) String() string {
	return fmt.Sprintf("{Type:%s, RequestID:%s, FetchedAt:%s, ChannelID:%s, Title:%q, Videos:%d}",
		s.Type, s.RequestID, s.FetchedAt.Format(time.RFC3339), s.Feed.ChannelID,
		s.Feed.Title, len(s.Feed.Videos))
}

// BoltDB store for snapshots, a bucket per feed, keyed by fetch time
type BoltDB struct {
	*bolt.DB
}

// BucketName makes bucket name for feed type and id, i.e. "playlist:PL123"
func BucketName(feedType feed.Type, id string) string {
	if feedType == feed.FTDefault {
		feedType = feed.FTChannel
	}
	return string(feedType) + ":" + id
}

// Save snapshot to bolt, skip if found
func (s *BoltDB) Save(snap Snapshot) (bool, error) {
	var created bool

	key, keyErr := s.key(snap)
	if keyErr != nil {
		return created, fmt.Errorf("failed to generate key for %s: %w", snap.RequestID, keyErr)
	}

	bktName := BucketName(snap.Type, snap.RequestID)
	err := s.Update(func(tx *bolt.Tx) error {
		bucket, e := tx.CreateBucketIfNotExists([]byte(bktName))
		if e != nil {
			return fmt.Errorf("create bucket %s: %w", bktName, e)
		}
		if bucket.Get(key) != nil {
			return nil
		}

		jdata, jerr := json.Marshal(&snap)
		if jerr != nil {
			return fmt.Errorf("marshal snapshot %s: %w", snap.RequestID, jerr)
		}

		log.Printf("[DEBUG] save %s - %s", string(key), snap.String())
		if e = bucket.Put(key, jdata); e != nil {
			return fmt.Errorf("save snapshot %s: %w", snap.RequestID, e)
		}

		created = true
		return nil
	})

	return created, err
}

// Load snapshots for a given feed, up to max in reverse order (from newest to oldest)
func (s *BoltDB) Load(feedType feed.Type, id string, maximum int) ([]Snapshot, error) {
	var result []Snapshot

	bktName := BucketName(feedType, id)
	err := s.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bktName))
		if bucket == nil {
			return fmt.Errorf("no bucket for %s: %w", bktName, ErrNotFound)
		}
		c := bucket.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if len(result) >= maximum {
				break
			}
			var item Snapshot
			if err := json.Unmarshal(v, &item); err != nil {
				log.Printf("[WARN] failed to unmarshal %s, %q: %v", bktName, string(v), err)
				continue
			}
			result = append(result, item)
		}
		return nil
	})
	return result, err
}

// Last returns the newest snapshot of the feed
func (s *BoltDB) Last(feedType feed.Type, id string) (Snapshot, error) {
	res, err := s.Load(feedType, id, 1)
	if err != nil {
		return Snapshot{}, err
	}
	if len(res) == 0 {
		return Snapshot{}, fmt.Errorf("no snapshots for %s: %w", BucketName(feedType, id), ErrNotFound)
	}
	return res[0], nil
}

// RemoveOld removes old snapshots beyond keep and returns the number of removed records.
// Failed deletes don't stop the cleanup and reported together.
func (s *BoltDB) RemoveOld(feedType feed.Type, id string, keep int) (int, error) {
	deleted := 0
	bktName := BucketName(feedType, id)
	errs := new(multierror.Error)

	err := s.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bktName))
		if bucket == nil {
			return fmt.Errorf("no bucket for %s: %w", bktName, ErrNotFound)
		}

		var toDelete [][]byte
		recs := 0
		c := bucket.Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			recs++
			if recs > keep {
				keyCopy := make([]byte, len(k))
				copy(keyCopy, k)
				toDelete = append(toDelete, keyCopy)
			}
		}

		for _, k := range toDelete {
			if e := bucket.Delete(k); e != nil {
				errs = multierror.Append(errs, fmt.Errorf("failed to delete %s: %w", string(k), e))
				continue
			}
			deleted++
		}
		return nil // keep successful deletes committed
	})
	if err != nil {
		return 0, err
	}
	return deleted, errs.ErrorOrNil()
}

// Buckets returns names of all stored feeds
func (s *BoltDB) Buckets() (res []string, err error) {
	err = s.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			res = append(res, string(name))
			return nil
		})
	})
	return res, err
}

// key is a zero-padded fetch time, so bolt's byte order is the time order
func (s *BoltDB) key(snap Snapshot) ([]byte, error) {
	h := sha1.New()
	if _, err := h.Write([]byte(BucketName(snap.Type, snap.RequestID))); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%020d-%x", snap.FetchedAt.UnixNano(), h.Sum(nil))), nil
}
