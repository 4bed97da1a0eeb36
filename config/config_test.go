package config_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"

	"github.com/philipp01105/logshim/config"
	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/sink"
)

var _ = Describe("Config", func() {
	var tempDir string

	writeConfig := func(content string) string {
		path := filepath.Join(tempDir, "logging.yaml")
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
		os.Unsetenv("LOGGING_JSON_FORMAT")
		os.Unsetenv("LOGGING_TIME_FORMAT")
		os.Unsetenv("LOGGING_COLOR")
	})

	Describe("Load", func() {
		Context("without a config file", func() {
			It("should use defaults", func() {
				cfg, err := config.Load("")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.JSONFormat).To(BeTrue())
				Expect(cfg.Logging.TimeFormat).To(Equal("seconds"))
				Expect(cfg.Logging.Color).To(Equal("auto"))
			})
		})

		Context("with valid config file", func() {
			It("should parse the logging section", func() {
				path := writeConfig(`
logging:
  json_format: false
  time_format: ISO8601
  color: never
`)
				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.JSONFormat).To(BeFalse())
				Expect(cfg.Logging.TimeFormat).To(Equal("iso8601"))
				Expect(cfg.Logging.Color).To(Equal("never"))
			})
		})

		Context("with a missing config file", func() {
			It("should return an error", func() {
				_, err := config.Load(filepath.Join(tempDir, "missing.yaml"))
				Expect(err).To(HaveOccurred())
			})
		})

		Context("with invalid values", func() {
			It("should reject an unknown time format", func() {
				path := writeConfig("logging:\n  time_format: epoch\n")
				_, err := config.Load(path)
				Expect(err).To(MatchError(ContainSubstring("time_format")))
			})

			It("should reject an unknown color mode", func() {
				os.Setenv("LOGGING_COLOR", "rainbow")
				_, err := config.Load("")
				Expect(err).To(MatchError(ContainSubstring("color")))
			})
		})

		Context("with environment variables", func() {
			It("should override the config file", func() {
				path := writeConfig("logging:\n  json_format: true\n")
				os.Setenv("LOGGING_JSON_FORMAT", "false")

				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.JSONFormat).To(BeFalse())
			})
		})

		Context("with flags", func() {
			var fs *pflag.FlagSet

			BeforeEach(func() {
				fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
				config.BindFlags(fs)
			})

			It("should keep file values for flags that were not set", func() {
				path := writeConfig("logging:\n  time_format: iso8601\n")
				Expect(fs.Parse([]string{"--color=always"})).To(Succeed())

				cfg, err := config.LoadFlags(path, fs)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.TimeFormat).To(Equal("iso8601"))
				Expect(cfg.Logging.Color).To(Equal("always"))
			})

			It("should take precedence over the environment", func() {
				os.Setenv("LOGGING_JSON_FORMAT", "true")
				Expect(fs.Parse([]string{"--json=false"})).To(Succeed())

				cfg, err := config.LoadFlags("", fs)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.JSONFormat).To(BeFalse())
			})
		})
	})

	Describe("SinkOptions", func() {
		It("should configure a sink in the loaded mode", func() {
			path := writeConfig("logging:\n  json_format: false\n  color: never\n")
			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())

			var stdout, stderr bytes.Buffer
			opts := append(cfg.SinkOptions(), sink.WithStdout(&stdout), sink.WithStderr(&stderr))
			c := sink.New()
			Expect(c.Configure(opts...)).To(Succeed())
			defer c.Close()

			Expect(c.Enabled("app", core.DebugLevel)).To(BeTrue())
			entry := &core.Entry{Level: core.InfoLevel, Channel: "app", Message: "text mode"}
			Expect(c.Handle(entry)).To(Succeed())

			Expect(stdout.Len()).To(BeZero())
			Expect(stderr.String()).To(HavePrefix("INFO     | app:?:0 - text mode - {}"))
		})
	})
})
