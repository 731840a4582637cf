package config

import (
	"time"

	"github.com/spf13/viper"
)

// Refresh policies for the scheduled run: merge folds the fetched delta into
// the cached list keyed by activity id, replace overwrites the list with the
// delta alone (the historical behavior, which forgets older activities).
const (
	PolicyMerge   = "merge"
	PolicyReplace = "replace"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	StaticDir  string `mapstructure:"STATIC_DIR"`

	StravaBaseURL     string        `mapstructure:"STRAVA_BASE_URL"`
	StravaAccessToken string        `mapstructure:"STRAVA_ACCESS_TOKEN"`
	StravaPageSize    int           `mapstructure:"STRAVA_PAGE_SIZE"`
	StravaSince       int64         `mapstructure:"STRAVA_SINCE"`
	StravaTimeout     time.Duration `mapstructure:"STRAVA_TIMEOUT"`
	StravaRPS         float64       `mapstructure:"STRAVA_RPS"`

	ActivitiesTTL    time.Duration `mapstructure:"ACTIVITIES_TTL"`
	RefreshEnabled   bool          `mapstructure:"REFRESH_ENABLED"`
	RefreshCron      string        `mapstructure:"REFRESH_CRON"`
	RefreshPolicy    string        `mapstructure:"REFRESH_POLICY"`
	TraceConcurrency int           `mapstructure:"TRACE_CONCURRENCY"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":3000")
	viper.SetDefault("STATIC_DIR", ".")
	viper.SetDefault("STRAVA_BASE_URL", "https://www.strava.com/api/v3")
	viper.SetDefault("STRAVA_ACCESS_TOKEN", "")
	viper.SetDefault("STRAVA_PAGE_SIZE", 25)
	viper.SetDefault("STRAVA_SINCE", 0)
	viper.SetDefault("STRAVA_TIMEOUT", "10s")
	viper.SetDefault("STRAVA_RPS", 5.0)
	viper.SetDefault("ACTIVITIES_TTL", "2h")
	viper.SetDefault("REFRESH_ENABLED", true)
	// every 2 minutes between 06:00 and 22:59 local time
	viper.SetDefault("REFRESH_CRON", "*/2 6-22 * * *")
	viper.SetDefault("REFRESH_POLICY", PolicyMerge)
	viper.SetDefault("TRACE_CONCURRENCY", 8)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
