package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

// RawFeed is youtube's atom document as published on /feeds/videos.xml.
// Channel, playlist and user feeds share the same shape, differing only in which ids are filled.
type RawFeed struct {
	XMLName    xml.Name   `xml:"http://www.w3.org/2005/Atom feed"`
	Links      []Link     `xml:"link"`
	ID         string     `xml:"id"` // yt:channel:<id> or yt:playlist:<id>, not the canonical id
	ChannelID  string     `xml:"http://www.youtube.com/xml/schemas/2015 channelId"`
	PlaylistID *string    `xml:"http://www.youtube.com/xml/schemas/2015 playlistId"` // nil if element absent
	Title      string     `xml:"title"`
	Author     Author     `xml:"author"`
	Published  time.Time  `xml:"published"`
	Entries    []RawEntry `xml:"entry"` // nil if no entry elements
}

// Link is an atom link element
type Link struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// Author is an atom author element
type Author struct {
	Name string `xml:"name"`
	URI  string `xml:"uri"`
}

// RawEntry is a single video entry of the feed
type RawEntry struct {
	ID        string     `xml:"id"` // yt:video:<id>
	VideoID   string     `xml:"http://www.youtube.com/xml/schemas/2015 videoId"`
	ChannelID string     `xml:"http://www.youtube.com/xml/schemas/2015 channelId"`
	Title     string     `xml:"title"`
	Link      Link       `xml:"link"`
	Author    Author     `xml:"author"`
	Published time.Time  `xml:"published"`
	Updated   time.Time  `xml:"updated"`
	Group     MediaGroup `xml:"http://search.yahoo.com/mrss/ group"`
}

// MediaGroup is media:group block of the entry
type MediaGroup struct {
	Title       string         `xml:"http://search.yahoo.com/mrss/ title"`
	Content     MediaContent   `xml:"http://search.yahoo.com/mrss/ content"`
	Thumbnail   MediaThumbnail `xml:"http://search.yahoo.com/mrss/ thumbnail"`
	Description *string        `xml:"http://search.yahoo.com/mrss/ description"`
	Community   MediaCommunity `xml:"http://search.yahoo.com/mrss/ community"`
}

// MediaContent is media:content, the embeddable player reference
type MediaContent struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Width  uint32 `xml:"width,attr"`
	Height uint32 `xml:"height,attr"`
}

// MediaThumbnail is media:thumbnail
type MediaThumbnail struct {
	URL    string `xml:"url,attr"`
	Width  uint32 `xml:"width,attr"`
	Height uint32 `xml:"height,attr"`
}

// MediaCommunity groups rating and statistics
type MediaCommunity struct {
	StarRating MediaStarRating `xml:"http://search.yahoo.com/mrss/ starRating"`
	Statistics MediaStatistics `xml:"http://search.yahoo.com/mrss/ statistics"`
}

// MediaStarRating is media:starRating
type MediaStarRating struct {
	Count   uint32  `xml:"count,attr"`
	Average float64 `xml:"average,attr"`
	Min     uint32  `xml:"min,attr"`
	Max     uint32  `xml:"max,attr"`
}

// MediaStatistics is media:statistics
type MediaStatistics struct {
	Views uint64 `xml:"views,attr"`
}

// Decode parses feed body. Sibling elements don't have to be contiguous,
// i.e. links may be split by other elements as youtube does with self and alternate links.
func Decode(body []byte) (RawFeed, error) {
	var res RawFeed
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&res); err != nil {
		return RawFeed{}, err
	}
	for i, e := range res.Entries {
		if e.VideoID == "" {
			return RawFeed{}, fmt.Errorf("entry %d (%s) has no videoId", i, e.ID)
		}
	}
	return res, nil
}
