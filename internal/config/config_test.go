package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/payerlens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.ReferenceDataPath, convey.ShouldBeEmpty)
			convey.So(cfg.BatchWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DefaultServiceCount, convey.ShouldEqual, 4)
			convey.So(cfg.RandomSeed, convey.ShouldEqual, 42)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "payerlens")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := map[string]func(*config.Config){
			"log level":     func(c *config.Config) { c.LogLevel = "loud" },
			"batch workers": func(c *config.Config) { c.BatchWorkers = 0 },
			"service count": func(c *config.Config) { c.DefaultServiceCount = -1 },
			"namespace":     func(c *config.Config) { c.MetricsNamespace = "  " },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+name+" is rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
