package types

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	ecstypes "github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/go-pg/pg"
	"github.com/gomodule/redigo/redis"
)

// Schema versions of the Product Advertising API that can be requested
var SupportedVersions = []string{"2011-08-01", "2013-08-01"}

// DefaultMaxAge is used when default_max_age is not configured, in seconds
const DefaultMaxAge = 86400

type (
	CliArgs struct {
		Env          string `json:"env"`
		IsRestMode   bool   `json:"rest"`
		IsTestMode   bool   `json:"test"`
		ASINs        string `json:"asin"`
		Locale       string `json:"locale"`
		FilterFile   string `json:"filter-file"`
		AccessKey    string `json:"access-key"`
		SecretKey    string `json:"secret-key"`
		AssociateTag string `json:"associate-tag"`
		Port         int    `json:"port"`
	}

	ConfigData struct {
		Args        *CliArgs     `json:"cli_args"`
		Env         string       `json:"env"`
		Port        int          `json:"port"`
		Amazon      AmazonConfig `json:"amazon"`
		PGItems     *PGItems     `json:"pg_items"`
		Influx      InfluxConfig `json:"influx"`
		RedisHost   string       `json:"redis_host"`
		DatadogHost string       `json:"datadog_host"`
	}

	AmazonConfig struct {
		AccessKey        string   `json:"access_key"`
		SecretKey        string   `json:"secret_key"`
		AssociateTag     string   `json:"associate_tag"`
		Locale           string   `json:"locale"`
		Version          string   `json:"version"`
		ResponseGroup    string   `json:"response_group"`
		ParticipantTypes []string `json:"participant_types"`
		ImageSizes       []string `json:"image_sizes"`
		// Seconds a rendered marker may be cached, 0 disables caching
		DefaultMaxAge *int `json:"default_max_age"`
		// Full URL replacing the locale endpoint, eg. a local mock
		Endpoint            string `json:"endpoint"`
		Concurrency         int    `json:"concurrency"`
		ChunkTimeoutSeconds int    `json:"chunk_timeout_seconds"`
		RateLimitRetries    int    `json:"ratelimit_retries"`
		BatchWaitMillis     int    `json:"batch_wait_ms"`
	}

	Config struct {
		ConfigData   *ConfigData
		Credentials  ecstypes.Credentials
		StatsdClient *statsd.Client
		Redis        *redis.Pool
		PGItems      *pg.DB
	}

	PGItems struct {
		User     string `json:"user"`
		Password string `json:"password"`
		Addr     string `json:"addr"`
		DB       string `json:"db"`
		PoolSize int    `json:"pool_size"`
	}

	InfluxConfig struct {
		Server   string `json:"server"`
		Database string `json:"database"`
		Protocol string `json:"protocol"`
	}
)

// MaxAge returns default_max_age, DefaultMaxAge when unset
func (ac *AmazonConfig) MaxAge() int {
	if ac.DefaultMaxAge == nil {
		return DefaultMaxAge
	}
	return *ac.DefaultMaxAge
}

// Validate checks the settings that do not depend on the environment
func (ac *AmazonConfig) Validate() error {
	if ac.Version != "" {
		supported := false
		for _, v := range SupportedVersions {
			supported = supported || v == ac.Version
		}
		if !supported {
			return fmt.Errorf("CONFIG_VERSION_ERR: unsupported schema version %q", ac.Version)
		}
	}
	if ac.Locale != "" {
		if _, err := ecstypes.NewLocale(ac.Locale); err != nil {
			return fmt.Errorf("CONFIG_LOCALE_ERR: %v", err)
		}
	}
	if ac.MaxAge() < 0 || ac.Concurrency < 0 || ac.ChunkTimeoutSeconds < 0 || ac.RateLimitRetries < 0 {
		return fmt.Errorf("CONFIG_VALUE_ERR: negative amazon setting")
	}
	return nil
}
