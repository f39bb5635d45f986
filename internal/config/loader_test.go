package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/multimodal/internal/config"
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
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "console")
				convey.So(cfg.MaxUploadBytes, convey.ShouldEqual, 32<<20)
				convey.So(cfg.MultipartMemoryBytes, convey.ShouldEqual, 8<<20)
				convey.So(cfg.MaxParallel, convey.ShouldEqual, 3)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
				convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
				convey.So(cfg.DocsEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MULTIMODAL_ADDR", ":9090")
			_ = os.Setenv("MULTIMODAL_LOG_FORMAT", "json")
			_ = os.Setenv("MULTIMODAL_MAX_UPLOAD_BYTES", "1048576")
			_ = os.Setenv("MULTIMODAL_MULTIPART_MEMORY_BYTES", "65536")
			_ = os.Setenv("MULTIMODAL_MAX_PARALLEL", "2")
			_ = os.Setenv("MULTIMODAL_CORS_ALLOWED_ORIGINS", "https://app.example.com")
			_ = os.Setenv("MULTIMODAL_METRICS_ENABLED", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxUploadBytes, convey.ShouldEqual, 1048576)
				convey.So(cfg.MultipartMemoryBytes, convey.ShouldEqual, 65536)
				convey.So(cfg.MaxParallel, convey.ShouldEqual, 2)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://app.example.com"})
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.DocsEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars()
			configFile := createTempConfigFile(`
addr: ":7070"
log_level: debug
max_parallel: 4
cors_allowed_origins:
  - https://a.example.com
  - https://b.example.com
docs_enabled: false
`)
			defer os.Remove(configFile)

			_ = os.Setenv("MULTIMODAL_CONFIG", configFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MaxParallel, convey.ShouldEqual, 4)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example.com", "https://b.example.com"})
				convey.So(cfg.DocsEnabled, convey.ShouldBeFalse)
			})

			convey.Convey("And keys missing from the file should keep their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MaxUploadBytes, convey.ShouldEqual, 32<<20)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When YAML file and env vars are both set", func() {
			clearConfigEnvVars()
			configFile := createTempConfigFile(`
addr: ":7070"
max_parallel: 4
`)
			defer os.Remove(configFile)

			_ = os.Setenv("MULTIMODAL_CONFIG", configFile)
			_ = os.Setenv("MULTIMODAL_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars should take precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.MaxParallel, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When a .env file is provided", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			envFile := filepath.Join(dir, "test.env")
			err := os.WriteFile(envFile, []byte("MULTIMODAL_ADDR=:5050\nMULTIMODAL_LOG_LEVEL=warn\n"), 0o600)
			convey.So(err, convey.ShouldBeNil)

			_ = os.Setenv("MULTIMODAL_ENV_FILE", envFile)
			_ = os.Setenv("MULTIMODAL_LOG_LEVEL", "error")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
			})

			convey.Convey("And it should not override the process environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error")
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given config loader edge cases", t, func() {
		ctx := context.Background()

		convey.Convey("When YAML file is invalid", func() {
			clearConfigEnvVars()
			configFile := createTempConfigFile(`
addr: ":7070"
max_parallel: [unclosed
`)
			defer os.Remove(configFile)

			_ = os.Setenv("MULTIMODAL_CONFIG", configFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When config file does not exist", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MULTIMODAL_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error naming the file", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "/non/existent/file.yaml")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the .env file named explicitly does not exist", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MULTIMODAL_ENV_FILE", "/non/existent/.env")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When environment variables have invalid values", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MULTIMODAL_MAX_PARALLEL", "not-a-number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When addr is empty", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MULTIMODAL_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			clearConfigEnvVars()
			_ = os.Setenv("MULTIMODAL_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "log_format must be one of [console json]")
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"MULTIMODAL_CONFIG",
		"MULTIMODAL_ENV_FILE",
		"MULTIMODAL_LOG_LEVEL",
		"MULTIMODAL_LOG_FORMAT",
		"MULTIMODAL_ADDR",
		"MULTIMODAL_MAX_UPLOAD_BYTES",
		"MULTIMODAL_MULTIPART_MEMORY_BYTES",
		"MULTIMODAL_MAX_PARALLEL",
		"MULTIMODAL_CORS_ALLOWED_ORIGINS",
		"MULTIMODAL_METRICS_ENABLED",
		"MULTIMODAL_DOCS_ENABLED",
	}

	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "multimodal-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
