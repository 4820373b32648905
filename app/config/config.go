// Package config provides the configuration support for the application.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/yt-feed/app/youtube"
	ytfeed "github.com/umputun/yt-feed/app/youtube/feed"
)

// Conf for yt-feed config yml
type Conf struct {
	System struct {
		DB             string        `yaml:"db"`
		UpdateInterval time.Duration `yaml:"update"`
		HTTPTimeout    time.Duration `yaml:"http_timeout"`
		UserAgent      string        `yaml:"user_agent"`
		MaxBodySize    int64         `yaml:"max_body_size"`
		MaxKeep        int           `yaml:"max_keep"`
		Concurrent     int           `yaml:"concurrent"`
	} `yaml:"system"`

	YouTube struct {
		BaseChanURL     string             `yaml:"base_chan_url"`
		BasePlaylistURL string             `yaml:"base_playlist_url"`
		BaseUserURL     string             `yaml:"base_user_url"`
		Feeds           []youtube.FeedInfo `yaml:"feeds"`
		RSSLocation     string             `yaml:"rss_location"`
		Language        string             `yaml:"lang"`
	} `yaml:"youtube"`
}

// Load config from file
func Load(fname string) (res *Conf, err error) {
	res = &Conf{}
	data, err := os.ReadFile(fname) // nolint
	if err != nil {
		return nil, err
	}
	// expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, res); err != nil {
		return nil, err
	}
	res.setDefaults()
	if err := res.validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// validate checks feed types and ids
func (c *Conf) validate() error {
	for i, f := range c.YouTube.Feeds {
		if f.ID == "" {
			return fmt.Errorf("feed #%d (%s) has no id", i, f.Name)
		}
		if _, err := ytfeed.ParseType(string(f.Type)); err != nil {
			return fmt.Errorf("feed #%d (%s): %w", i, f.ID, err)
		}
	}
	return nil
}

// setDefaults sets default values for config
func (c *Conf) setDefaults() {
	if c.System.DB == "" {
		c.System.DB = "var/yt-feed.bdb"
	}
	if c.System.UpdateInterval == 0 {
		c.System.UpdateInterval = time.Minute * 30
	}
	if c.System.HTTPTimeout == 0 {
		c.System.HTTPTimeout = time.Second * 30
	}
	if c.System.UserAgent == "" {
		c.System.UserAgent = "yt-feed"
	}
	if c.System.MaxBodySize == 0 {
		c.System.MaxBodySize = 10 * 1024 * 1024
	}
	if c.System.MaxKeep == 0 {
		c.System.MaxKeep = 10
	}
	if c.System.Concurrent == 0 {
		c.System.Concurrent = 4
	}

	if c.YouTube.BaseChanURL == "" {
		c.YouTube.BaseChanURL = ytfeed.ChannelBaseURL
	}
	if c.YouTube.BasePlaylistURL == "" {
		c.YouTube.BasePlaylistURL = ytfeed.PlaylistBaseURL
	}
	if c.YouTube.BaseUserURL == "" {
		c.YouTube.BaseUserURL = ytfeed.UserBaseURL
	}

	for i, f := range c.YouTube.Feeds {
		if f.Type == ytfeed.FTDefault {
			c.YouTube.Feeds[i].Type = ytfeed.FTChannel
		}
		if f.Name == "" {
			c.YouTube.Feeds[i].Name = f.ID
		}
		if f.Keep == 0 {
			c.YouTube.Feeds[i].Keep = c.System.MaxKeep
		}
	}
}
