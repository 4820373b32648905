// Package feed provides parser and normalizer for youtube channel, playlist and user feeds.
package feed

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Feed builds normalized views of youtube feeds. It has no mutable state and safe for concurrent use.
type Feed struct {
	Fetcher         Fetcher
	ChannelBaseURL  string
	PlaylistBaseURL string
	UserBaseURL     string
}

// Type represents the type of YouTube feed.
type Type string

// enum for the different YouTube feed types.
const (
	FTDefault  = Type("")
	FTChannel  = Type("channel")
	FTPlaylist = Type("playlist")
	FTUser     = Type("user")
)

// default base urls, the id is appended as is
const (
	ChannelBaseURL  = "https://www.youtube.com/feeds/videos.xml?channel_id="
	PlaylistBaseURL = "https://www.youtube.com/feeds/videos.xml?playlist_id="
	UserBaseURL     = "https://www.youtube.com/feeds/videos.xml?user="
)

// ParseType converts string to Type, empty string is FTDefault
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case FTDefault, FTChannel, FTPlaylist, FTUser:
		return t, nil
	}
	return "", fmt.Errorf("unknown feed type %s", s)
}

// Normalized is a feed with resolved ids and mapped videos, shared by all views
type Normalized struct {
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	ChannelID  string    `json:"channelId"`
	PlaylistID string    `json:"playlistId,omitempty"` // set for playlist feeds only
	URL        string    `json:"url"`
	Published  time.Time `json:"published"`
	Videos     []Video   `json:"videos"` // nil if feed has no entries at all
}

// Channel is a view of channel feed
type Channel struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Videos    []Video   `json:"videos"`
}

// Playlist is a view of playlist feed
type Playlist struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ChannelID string    `json:"channelId"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Videos    []Video   `json:"videos"`
}

// User is a view of legacy user feed, ID is the channel id of the user
type User struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Videos    []Video   `json:"videos"`
}

// Channel gets xml/rss feed for channel
// https://www.youtube.com/feeds/videos.xml?channel_id=UCPU28A9z_ka_R5dQfecHJlA
func (f *Feed) Channel(ctx context.Context, id string) (Channel, error) {
	n, err := f.Get(ctx, id, FTChannel)
	if err != nil {
		return Channel{}, err
	}
	return n.ChannelView(), nil
}

// Playlist gets xml/rss feed for playlist
// https://www.youtube.com/feeds/videos.xml?playlist_id=PLOIA4n5j7KcYj52DQ9orEBJDA9IqBTB3I
func (f *Feed) Playlist(ctx context.Context, id string) (Playlist, error) {
	n, err := f.Get(ctx, id, FTPlaylist)
	if err != nil {
		return Playlist{}, err
	}
	return n.PlaylistView(), nil
}

// User gets xml/rss feed for legacy user name
// https://www.youtube.com/feeds/videos.xml?user=cgpgrey
func (f *Feed) User(ctx context.Context, name string) (User, error) {
	n, err := f.Get(ctx, name, FTUser)
	if err != nil {
		return User{}, err
	}
	return n.UserView(), nil
}

// Get fetches, decodes and normalizes feed. Playlist id is resolved for FTPlaylist only.
// Errors are *FetchError, *DecodeError or wrap one of ErrMissing* errors.
func (f *Feed) Get(ctx context.Context, id string, feedType Type) (Normalized, error) {
	feedURL, err := f.url(id, feedType)
	if err != nil {
		return Normalized{}, fmt.Errorf("failed to get feed url: %w", err)
	}

	body, err := f.Fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return Normalized{}, &FetchError{URL: feedURL, Err: err}
	}

	raw, err := Decode(body)
	if err != nil {
		return Normalized{}, &DecodeError{URL: feedURL, Body: body, Err: err}
	}

	res, err := normalize(raw, feedType == FTPlaylist)
	if err != nil {
		return Normalized{}, fmt.Errorf("failed to normalize %s %s: %w", feedTypeName(feedType), id, err)
	}
	return res, nil
}

// normalize resolves ids and maps entries. raw is consumed, nothing refers to it after the call.
func normalize(raw RawFeed, withPlaylist bool) (Normalized, error) {
	channelID, err := ResolveChannelID(raw)
	if err != nil {
		return Normalized{}, err
	}

	var playlistID string
	if withPlaylist {
		if playlistID, err = ResolvePlaylistID(raw); err != nil {
			return Normalized{}, err
		}
	}

	return Normalized{
		Title:      raw.Title,
		Author:     raw.Author.Name,
		ChannelID:  channelID,
		PlaylistID: playlistID,
		URL:        raw.Author.URI,
		Published:  raw.Published,
		Videos:     mapEntries(raw.Entries),
	}, nil
}

// ChannelView makes Channel from normalized feed
func (n Normalized) ChannelView() Channel {
	return Channel{ID: n.ChannelID, Title: n.Title, Author: n.Author, URL: n.URL, Published: n.Published, Videos: n.Videos}
}

// PlaylistView makes Playlist from normalized feed
func (n Normalized) PlaylistView() Playlist {
	return Playlist{ID: n.PlaylistID, Title: n.Title, Author: n.Author, ChannelID: n.ChannelID, URL: n.URL,
		Published: n.Published, Videos: n.Videos}
}

// View makes the view matching feed type, Channel for FTDefault
func (n Normalized) View(feedType Type) any {
	switch feedType {
	case FTPlaylist:
		return n.PlaylistView()
	case FTUser:
		return n.UserView()
	default:
		return n.ChannelView()
	}
}

// UserView makes User from normalized feed
func (n Normalized) UserView() User {
	return User{ID: n.ChannelID, Title: n.Title, Author: n.Author, URL: n.URL, Published: n.Published, Videos: n.Videos}
}

func (f *Feed) url(id string, feedType Type) (string, error) {
	base := ""
	switch feedType {
	case FTChannel, FTDefault:
		base = f.ChannelBaseURL
	case FTPlaylist:
		base = f.PlaylistBaseURL
	case FTUser:
		base = f.UserBaseURL
	default:
		return "", fmt.Errorf("unknown feed type %s", feedType)
	}
	return base + url.QueryEscape(id), nil
}

func feedTypeName(feedType Type) string {
	if feedType == FTDefault {
		return string(FTChannel)
	}
	return string(feedType)
}
