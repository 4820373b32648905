package feed

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	data, err := os.ReadFile("testdata/channel.xml")
	require.NoError(t, err)

	raw, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "yt:channel:UCXuqSBlHAE6Xw-yeJA0Tunw", raw.ID)
	assert.Equal(t, "UCXuqSBlHAE6Xw-yeJA0Tunw", raw.ChannelID)
	assert.Nil(t, raw.PlaylistID)
	assert.Equal(t, "Linus Tech Tips", raw.Title)
	assert.Equal(t, "Linus Tech Tips", raw.Author.Name)
	assert.Equal(t, "https://www.youtube.com/channel/UCXuqSBlHAE6Xw-yeJA0Tunw", raw.Author.URI)
	assert.Equal(t, "2008-11-25T00:46:52Z", raw.Published.UTC().Format(time.RFC3339))
	assert.Equal(t, []Link{
		{Rel: "self", Href: "http://www.youtube.com/feeds/videos.xml?channel_id=UCXuqSBlHAE6Xw-yeJA0Tunw"},
		{Rel: "alternate", Href: "https://www.youtube.com/channel/UCXuqSBlHAE6Xw-yeJA0Tunw"},
	}, raw.Links, "non-contiguous links collected")

	require.Equal(t, 1, len(raw.Entries))
	e := raw.Entries[0]
	assert.Equal(t, "yt:video:Twik7wqdwZU", e.ID)
	assert.Equal(t, "Twik7wqdwZU", e.VideoID)
	assert.Equal(t, "alternate", e.Link.Rel)
	assert.Equal(t, "I Built the Quietest PC Possible", e.Group.Title)
	assert.Equal(t, MediaContent{URL: "https://www.youtube.com/v/Twik7wqdwZU?version=3",
		Type: "application/x-shockwave-flash", Width: 640, Height: 390}, e.Group.Content)
	assert.Equal(t, MediaThumbnail{URL: "https://i1.ytimg.com/vi/Twik7wqdwZU/hqdefault.jpg", Width: 480, Height: 360},
		e.Group.Thumbnail)
	require.NotNil(t, e.Group.Description)
	assert.Contains(t, *e.Group.Description, "Silence is golden.")
	assert.Equal(t, MediaStarRating{Count: 12923, Average: 5.0, Min: 1, Max: 5}, e.Group.Community.StarRating)
	assert.Equal(t, uint64(148559), e.Group.Community.Statistics.Views)
}

func TestDecode_Playlist(t *testing.T) {
	data, err := os.ReadFile("testdata/playlist.xml")
	require.NoError(t, err)

	raw, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, raw.PlaylistID, "element present")
	assert.Equal(t, "", *raw.PlaylistID, "but empty")
	require.Equal(t, 2, len(raw.Entries))
	assert.Nil(t, raw.Entries[1].Group.Description)
	assert.InDelta(t, 4.95, raw.Entries[0].Group.Community.StarRating.Average, 0.0001)
}

func TestDecode_NoEntries(t *testing.T) {
	data, err := os.ReadFile("testdata/noentries.xml")
	require.NoError(t, err)

	raw, err := Decode(data)
	require.NoError(t, err)
	assert.Nil(t, raw.Entries)
	assert.Equal(t, "Grim Beard", raw.Title)
}

func TestDecode_Failed(t *testing.T) {
	tbl := []struct {
		name string
		doc  string
		err  string
	}{
		{"not xml", "blah blah", "EOF"},
		{"not a feed", `<rss version="2.0"><channel></channel></rss>`, "expected element type <feed> but have <rss>"},
		{"truncated", `<feed xmlns="http://www.w3.org/2005/Atom"><title>t</title>`, "XML syntax error on line 1: unexpected EOF"},
		{"bad time", `<feed xmlns="http://www.w3.org/2005/Atom"><published>yesterday</published></feed>`,
			`parsing time "yesterday"`},
		{"entry without video id", `<feed xmlns="http://www.w3.org/2005/Atom"><entry><id>yt:video:x</id></entry></feed>`,
			"entry 0 (yt:video:x) has no videoId"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
