package feed

import (
	"fmt"
	"strings"
)

const (
	channelMarker  = "/channel/"
	playlistMarker = "playlist_id="
)

// ResolveChannelID returns canonical channel id of the feed.
// The channelId element is used as is, if empty the id is taken from author's uri,
// i.e. https://www.youtube.com/channel/UCXuqSBlHAE6Xw-yeJA0Tunw
func ResolveChannelID(raw RawFeed) (string, error) {
	if raw.ChannelID != "" {
		return raw.ChannelID, nil
	}
	id, ok := afterMarker(raw.Author.URI, channelMarker)
	if !ok || id == "" {
		return "", fmt.Errorf("%w, author uri %q", ErrMissingIdentifier, raw.Author.URI)
	}
	return id, nil
}

// ResolvePlaylistID returns canonical playlist id of the feed.
// The playlistId element is used if set, otherwise the id is taken from the self link,
// i.e. http://www.youtube.com/feeds/videos.xml?playlist_id=PLOIA4n5j7KcYj52DQ9orEBJDA9IqBTB3I
// All errors match ErrMissingPlaylistID.
func ResolvePlaylistID(raw RawFeed) (string, error) {
	if raw.PlaylistID != nil && *raw.PlaylistID != "" {
		return *raw.PlaylistID, nil
	}

	self, found := selfLink(raw.Links)
	if !found {
		return "", fmt.Errorf("%w: %w", ErrMissingPlaylistID, ErrMissingSelfLink)
	}
	id, ok := afterMarker(self.Href, playlistMarker)
	if !ok {
		return "", fmt.Errorf("%w: %w %q", ErrMissingPlaylistID, ErrMalformedSelfLink, self.Href)
	}
	if id == "" {
		return "", fmt.Errorf("%w, empty in self link %q", ErrMissingPlaylistID, self.Href)
	}
	return id, nil
}

func selfLink(links []Link) (Link, bool) {
	for _, l := range links {
		if l.Rel == "self" {
			return l, true
		}
	}
	return Link{}, false
}

// afterMarker returns everything after the first marker in s.
// ok is false if s has no marker.
func afterMarker(s, marker string) (res string, ok bool) {
	_, res, ok = strings.Cut(s, marker)
	return res, ok
}
