// Package rss renders normalized youtube feeds as RSS 2.0
package rss

import (
	"encoding/xml"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	ytfeed "github.com/umputun/yt-feed/app/youtube/feed"
)

// Rss2 feed
type Rss2 struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	NsMedia string   `xml:"xmlns:media,attr"`

	Title          string          `xml:"channel>title"`
	Language       string          `xml:"channel>language,omitempty"`
	Link           string          `xml:"channel>link"`
	Description    string          `xml:"channel>description"`
	PubDate        string          `xml:"channel>pubDate"`
	LastBuildDate  string          `xml:"channel>lastBuildDate"`
	Author         string          `xml:"channel>author,omitempty"`
	MediaThumbnail *MediaThumbnail `xml:"channel>media:thumbnail,omitempty"`

	ItemList []Item `xml:"channel>item"`
}

// Item for rss
type Item struct {
	// required
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description template.HTML `xml:"description"`
	GUID        string        `xml:"guid"`
	// optional
	PubDate        string          `xml:"pubDate,omitempty"`
	Author         string          `xml:"author,omitempty"`
	MediaThumbnail *MediaThumbnail `xml:"media:thumbnail,omitempty"`
}

// MediaThumbnail is media:thumbnail element
type MediaThumbnail struct {
	URL string `xml:"url,attr"`
}

// Opts for rendering
type Opts struct {
	Title    string // overrides feed title
	Language string
	Now      func() time.Time
}

// PlaylistURL is the public page of a playlist
const PlaylistURL = "https://www.youtube.com/playlist?list="

var policy = bluemonday.UGCPolicy()

// Make converts normalized feed to Rss2. Playlists link to the playlist page, others to the author's channel.
func Make(n ytfeed.Normalized, feedType ytfeed.Type, opts Opts) Rss2 {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	res := Rss2{
		Version:       "2.0",
		NsMedia:       "http://search.yahoo.com/mrss/",
		Title:         n.Title,
		Description:   "generated by yt-feed",
		Link:          n.URL,
		PubDate:       n.Published.In(time.UTC).Format(time.RFC1123Z),
		LastBuildDate: now().In(time.UTC).Format(time.RFC1123Z),
		Language:      opts.Language,
		Author:        n.Author,
		ItemList:      []Item{},
	}
	if opts.Title != "" {
		res.Title = opts.Title
	}
	if feedType == ytfeed.FTPlaylist && n.PlaylistID != "" {
		res.Link = PlaylistURL + n.PlaylistID
	}

	for _, v := range n.Videos {
		item := Item{
			Title:       v.Title,
			Link:        v.URL,
			Description: description(v.Description),
			GUID:        v.UID(),
			PubDate:     v.Published.In(time.UTC).Format(time.RFC1123Z),
			Author:      v.Author,
		}
		if v.Thumbnail != "" {
			item.MediaThumbnail = &MediaThumbnail{URL: v.Thumbnail}
		}
		res.ItemList = append(res.ItemList, item)
	}

	// set image from the newest video as rss thumbnail
	if len(n.Videos) > 0 && n.Videos[0].Thumbnail != "" {
		res.MediaThumbnail = &MediaThumbnail{URL: n.Videos[0].Thumbnail}
	}
	return res
}

// Render makes RSS 2.0 xml document for normalized feed
func Render(n ytfeed.Normalized, feedType ytfeed.Type, opts Opts) ([]byte, error) {
	rss := Make(n, feedType, opts)
	b, err := xml.MarshalIndent(&rss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rss: %w", err)
	}
	return append([]byte(xml.Header), b...), nil
}

// description sanitizes user's text and keeps line breaks
func description(s string) template.HTML {
	s = policy.Sanitize(s)
	return template.HTML(strings.ReplaceAll(s, "\n", "<br>\n")) //nolint:gosec // sanitized above
}
