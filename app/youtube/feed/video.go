package feed

import (
	"fmt"
	"time"
)

// Video is a normalized feed entry
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	AuthorURL   string    `json:"authorUrl"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Published   time.Time `json:"published"`
	Updated     time.Time `json:"updated"`
	URL         string    `json:"url"`
	ChannelID   string    `json:"channelId"` // entry's own channel, playlists may mix channels
	Views       uint64    `json:"views"`
}

// MapEntry converts raw entry to Video. Only description is optional and defaults to empty string.
func MapEntry(e RawEntry) Video {
	res := Video{
		ID:        e.VideoID,
		Title:     e.Title,
		Author:    e.Author.Name,
		AuthorURL: e.Author.URI,
		Thumbnail: e.Group.Thumbnail.URL,
		Published: e.Published,
		Updated:   e.Updated,
		URL:       e.Link.Href,
		ChannelID: e.ChannelID,
		Views:     e.Group.Community.Statistics.Views,
	}
	if e.Group.Description != nil {
		res.Description = *e.Group.Description
	}
	return res
}

// mapEntries keeps nil for absent entries, so "no entry elements" stays distinguishable from empty list
func mapEntries(entries []RawEntry) []Video {
	if entries == nil {
		return nil
	}
	res := make([]Video, 0, len(entries))
	for _, e := range entries {
		res = append(res, MapEntry(e))
	}
	return res
}

// UID returns the unique identifier of the video
func (v Video) UID() string {
	return v.ChannelID + "::" + v.ID
}

func (v Video) String() string {
	return fmt.Sprintf("{ChannelID:%s, ID:%s, Title:%q, Published:%s, Updated:%s, Author:%s, Views:%d}",
		v.ChannelID, v.ID, v.Title, v.Published.Format(time.RFC3339), v.Updated.Format(time.RFC3339),
		v.Author, v.Views)
}
