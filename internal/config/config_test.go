package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/dss/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.WDIBaseURL, convey.ShouldEqual, "https://api.worldbank.org/v2")
			convey.So(cfg.MaxCountries, convey.ShouldEqual, 6)
			convey.So(cfg.CacheBackend, convey.ShouldEqual, config.CacheMemory)
			convey.So(cfg.UpstreamTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 6*time.Hour)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = "" },
			"zero timeout":       func(c *config.Config) { c.UpstreamTimeoutMS = 0 },
			"negative retries":   func(c *config.Config) { c.UpstreamRetries = -1 },
			"zero concurrency":   func(c *config.Config) { c.FetchConcurrency = 0 },
			"zero max countries": func(c *config.Config) { c.MaxCountries = 0 },
			"unknown backend":    func(c *config.Config) { c.CacheBackend = "memcached" },
			"redis without addr": func(c *config.Config) { c.CacheBackend = config.CacheRedis; c.RedisAddr = "" },
			"zero cache size":    func(c *config.Config) { c.CacheSize = 0 },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+name+" should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given the none backend with no cache size", t, func() {
		cfg := config.New()
		cfg.CacheBackend = config.CacheNone
		cfg.CacheSize = 0

		convey.Convey("Then it should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
