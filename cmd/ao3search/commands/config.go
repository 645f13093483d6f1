package commands

import (
	"ao3search/internal/components/telemetry"
	"ao3search/internal/scrapers/ao3"
	"ao3search/lib/configutil"
	"time"
)

type CacheConfig struct {
	Dir             string `json:"dir"`
	LifetimeMinutes int    `json:"lifetime_minutes"`
}

type Config struct {
	SearchUrl         string              `json:"search_url"`
	SiteUrl           string              `json:"site_url"`
	UserAgent         string              `json:"user_agent"`
	TimeoutSeconds    int                 `json:"timeout_seconds"`
	RequestsPerSecond float64             `json:"requests_per_second"`
	Cache             CacheConfig         `json:"cache"`
	Database          configutil.Database `json:"database"`
	Telemetry         telemetry.Config    `json:"telemetry"`
}

func defaultConfig() Config {
	return Config{
		SearchUrl:         ao3.DefaultBaseUrl,
		SiteUrl:           ao3.DefaultSiteUrl,
		TimeoutSeconds:    30,
		RequestsPerSecond: 1,
		Cache: CacheConfig{
			Dir:             ".cache/ao3search",
			LifetimeMinutes: 60,
		},
		Database: configutil.Database{
			File: "ao3search.db",
		},
	}
}

func (c Config) clientOptions(policy ao3.RecordPolicy) ao3.ClientOptions {
	return ao3.ClientOptions{
		SearchUrl: c.SearchUrl,
		Parser: ao3.ParserOptions{
			BaseUrl: c.SiteUrl,
			Policy:  policy,
		},
		Fetcher: ao3.FetcherOptions{
			UserAgent:         c.UserAgent,
			Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
			RequestsPerSecond: c.RequestsPerSecond,
		},
	}
}
