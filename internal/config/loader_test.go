package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/payerlens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.DefaultServiceCount, convey.ShouldEqual, 4)
				convey.So(cfg.RandomSeed, convey.ShouldEqual, 42)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PAYERLENS_LOG_LEVEL", "debug")
			_ = os.Setenv("PAYERLENS_BATCH_WORKERS", "16")
			_ = os.Setenv("PAYERLENS_DEFAULT_SERVICE_COUNT", "6")
			_ = os.Setenv("PAYERLENS_RANDOM_SEED", "7")
			_ = os.Setenv("PAYERLENS_REFERENCE_DATA_PATH", "/etc/payerlens/tables.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 16)
				convey.So(cfg.DefaultServiceCount, convey.ShouldEqual, 6)
				convey.So(cfg.RandomSeed, convey.ShouldEqual, 7)
				convey.So(cfg.ReferenceDataPath, convey.ShouldEqual, "/etc/payerlens/tables.yaml")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
# comments are fine
log_level: warn
batch_workers: 24
metrics_textfile: /var/lib/node_exporter/payerlens.prom
metrics_namespace: lens
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PAYERLENS_CONFIG", tmpFile)
			_ = os.Setenv("PAYERLENS_BATCH_WORKERS", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 32)
				convey.So(cfg.MetricsTextfile, convey.ShouldEqual, "/var/lib/node_exporter/payerlens.prom")
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "lens")
				convey.So(cfg.DefaultServiceCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PAYERLENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PAYERLENS_CONFIG", "/non/existent/payerlens.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PAYERLENS_BATCH_WORKERS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config that fails validation", func() {
			_ = os.Setenv("PAYERLENS_BATCH_WORKERS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return ErrInvalidConfig", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "batch_workers")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PAYERLENS_CONFIG",
		"PAYERLENS_LOG_LEVEL",
		"PAYERLENS_BATCH_WORKERS",
		"PAYERLENS_DEFAULT_SERVICE_COUNT",
		"PAYERLENS_RANDOM_SEED",
		"PAYERLENS_REFERENCE_DATA_PATH",
		"PAYERLENS_METRICS_TEXTFILE",
		"PAYERLENS_METRICS_NAMESPACE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "payerlens-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
