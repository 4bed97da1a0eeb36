package sink_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/philipp01105/logshim/core"
	"github.com/philipp01105/logshim/formatter"
	"github.com/philipp01105/logshim/handler"
	"github.com/philipp01105/logshim/sink"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func record(channel string, level core.Level, msg string) *core.Entry {
	return &core.Entry{
		Time:    time.Unix(1700000000, 0),
		Level:   level,
		Channel: channel,
		Message: msg,
		Caller:  core.CallerInfo{File: "/srv/app/main.go", Line: 10, Function: "main.main", Defined: true},
	}
}

var _ = Describe("Configurator", func() {
	var (
		c      *sink.Configurator
		stdout *syncBuffer
		stderr *syncBuffer
	)

	BeforeEach(func() {
		c = sink.New()
		stdout = &syncBuffer{}
		stderr = &syncBuffer{}
	})

	AfterEach(func() {
		Expect(c.Close()).To(Succeed())
	})

	Describe("before Configure", func() {
		It("should report that no sink is configured", func() {
			Expect(c.Handle(record("app", core.InfoLevel, "x"))).To(MatchError(sink.ErrNotConfigured))
			Expect(c.Enabled("app", core.FatalLevel)).To(BeFalse())
		})
	})

	Describe("JSON mode", func() {
		BeforeEach(func() {
			Expect(c.Configure(
				sink.WithJSONFormat(true),
				sink.WithStdout(stdout),
				sink.WithStderr(stderr),
			)).To(Succeed())
		})

		It("should write one JSON object per line to stdout", func() {
			Expect(c.Handle(record("app", core.InfoLevel, "hello"))).To(Succeed())

			lines := stdout.Lines()
			Expect(lines).To(HaveLen(1))
			var data map[string]interface{}
			Expect(json.Unmarshal([]byte(lines[0]), &data)).To(Succeed())
			Expect(data).To(HaveLen(4))
			Expect(data).To(HaveKeyWithValue("level", "info"))
			Expect(data).To(HaveKeyWithValue("msg", "hello"))
			Expect(data).To(HaveKeyWithValue("caller", "app/main.go:10"))
			Expect(data["time"]).To(BeNumerically("==", 1700000000))
			Expect(stderr.String()).To(BeEmpty())
		})

		It("should drop records below info", func() {
			Expect(c.Enabled("app", core.DebugLevel)).To(BeFalse())
			Expect(c.Handle(record("app", core.DebugLevel, "debug"))).To(Succeed())
			Expect(stdout.String()).To(BeEmpty())

			Expect(c.Handle(record("app", core.InfoLevel, "info"))).To(Succeed())
			Expect(stdout.Lines()).To(HaveLen(1))
		})

		It("should propagate serialization failures without output", func() {
			e := record("app", core.ErrorLevel, "bad")
			e.Fields = []core.Field{{Key: "fn", Type: core.AnyType, Any: func() {}}}

			var serr *formatter.SerializationError
			Expect(c.Handle(e)).To(MatchError(BeAssignableToTypeOf(serr)))
			Expect(stdout.String()).To(BeEmpty())
			Expect(c.Stats().FailedTotal).To(BeEquivalentTo(1))
		})

		It("should reject unknown severities instead of filtering them", func() {
			for _, l := range []core.Level{core.Level(-1), core.Level(-3), core.Level(9)} {
				Expect(c.Enabled("app", l)).To(BeTrue())
				Expect(c.Handle(record("app", l, "bogus"))).To(MatchError(core.ErrUnknownSeverity))
			}
			Expect(stdout.String()).To(BeEmpty())

			snap := c.Stats()
			Expect(snap.FailedTotal).To(BeEquivalentTo(3))
			Expect(snap.FilteredTotal[core.DebugLevel]).To(BeZero())
		})

		It("should render iso8601 timestamps when asked", func() {
			Expect(c.Configure(
				sink.WithStdout(stdout),
				sink.WithTimeFormat(formatter.TimeISO8601),
			)).To(Succeed())
			Expect(c.Handle(record("app", core.WarnLevel, "iso"))).To(Succeed())
			Expect(stdout.String()).To(MatchRegexp(`"time":"\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}[+-]\d{4}"`))
		})
	})

	Describe("text mode", func() {
		BeforeEach(func() {
			Expect(c.Configure(
				sink.WithJSONFormat(false),
				sink.WithColor(formatter.ColorNever),
				sink.WithStdout(stdout),
				sink.WithStderr(stderr),
			)).To(Succeed())
		})

		It("should let every level through to stderr", func() {
			for l := core.DebugLevel; l <= core.FatalLevel; l++ {
				Expect(c.Enabled("app", l)).To(BeTrue())
				Expect(c.Handle(record("app", l, "m"))).To(Succeed())
			}
			Expect(stderr.Lines()).To(HaveLen(5))
			Expect(stderr.Lines()[0]).To(Equal("DEBUG    | app:main:10 - m - {}"))
			Expect(stdout.String()).To(BeEmpty())
		})

		It("should color output when forced", func() {
			Expect(c.Configure(
				sink.WithJSONFormat(false),
				sink.WithColor(formatter.ColorAlways),
				sink.WithStderr(stderr),
			)).To(Succeed())
			Expect(c.Handle(record("app", core.InfoLevel, "colored"))).To(Succeed())
			Expect(stderr.String()).To(ContainSubstring("\x1b[36mapp\x1b[0m"))
		})

		It("should not color non-terminal writers in auto mode", func() {
			Expect(c.Configure(
				sink.WithJSONFormat(false),
				sink.WithColor(formatter.ColorAuto),
				sink.WithStderr(stderr),
			)).To(Succeed())
			Expect(c.Handle(record("app", core.InfoLevel, "plain"))).To(Succeed())
			Expect(stderr.String()).NotTo(ContainSubstring("\x1b["))
		})
	})

	Describe("reconfiguration", func() {
		It("should leave only the last sink active", func() {
			first := &syncBuffer{}
			second := &syncBuffer{}
			Expect(c.Configure(sink.WithJSONFormat(true), sink.WithStdout(first))).To(Succeed())
			Expect(c.Configure(
				sink.WithJSONFormat(false),
				sink.WithColor(formatter.ColorNever),
				sink.WithStderr(second),
			)).To(Succeed())

			Expect(c.Handle(record("app", core.InfoLevel, "once"))).To(Succeed())

			Expect(first.String()).To(BeEmpty())
			Expect(second.Lines()).To(HaveLen(1))
		})

		It("should keep the previous sink when options are invalid", func() {
			Expect(c.Configure(sink.WithStdout(stdout))).To(Succeed())

			err := c.Configure(sink.WithTimeFormat("rfc822"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("sink: invalid options"))

			Expect(c.Handle(record("app", core.InfoLevel, "still here"))).To(Succeed())
			Expect(stdout.Lines()).To(HaveLen(1))
		})

		It("should reject a missing output stream", func() {
			Expect(c.Configure(sink.WithStdout(nil))).To(HaveOccurred())
			Expect(c.Configure(sink.WithJSONFormat(false), sink.WithStderr(nil))).To(HaveOccurred())
			Expect(c.Configure(sink.WithJSONFormat(false), sink.WithStdout(nil), sink.WithStderr(stderr))).To(Succeed())
		})

		It("should stop writing after Close", func() {
			Expect(c.Configure(sink.WithStdout(stdout))).To(Succeed())
			Expect(c.Close()).To(Succeed())
			Expect(c.Handle(record("app", core.InfoLevel, "late"))).To(MatchError(sink.ErrNotConfigured))
			Expect(stdout.String()).To(BeEmpty())
		})

		It("should keep counters of replaced sinks", func() {
			Expect(c.Configure(sink.WithStdout(stdout))).To(Succeed())
			Expect(c.Handle(record("app", core.InfoLevel, "one"))).To(Succeed())
			Expect(c.Handle(record("app", core.DebugLevel, "dropped"))).To(Succeed())

			Expect(c.Configure(sink.WithStdout(stdout))).To(Succeed())
			Expect(c.Handle(record("app", core.InfoLevel, "two"))).To(Succeed())

			snap := c.Stats()
			Expect(snap.ProcessedTotal).To(BeEquivalentTo(2))
			Expect(snap.FilteredTotal[core.DebugLevel]).To(BeEquivalentTo(1))

			Expect(c.Close()).To(Succeed())
			Expect(c.Stats().ProcessedTotal).To(BeEquivalentTo(2))
		})

		It("should keep lines intact while reconfiguring concurrently", func() {
			Expect(c.Configure(sink.WithStdout(stdout))).To(Succeed())

			var wg sync.WaitGroup
			for g := 0; g < 4; g++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					for i := 0; i < 200; i++ {
						_ = c.Handle(record("app", core.InfoLevel, "busy"))
					}
				}()
			}
			for i := 0; i < 20; i++ {
				Expect(c.Configure(sink.WithStdout(stdout))).To(Succeed())
			}
			wg.Wait()

			for _, line := range stdout.Lines() {
				Expect(json.Valid([]byte(line))).To(BeTrue(), line)
			}
		})
	})

	Describe("third-party channel suppression", func() {
		BeforeEach(func() {
			Expect(c.Configure(
				sink.WithJSONFormat(false),
				sink.WithColor(formatter.ColorNever),
				sink.WithStderr(stderr),
			)).To(Succeed())
		})

		DescribeTable("suppresses everything below fatal",
			func(channel string) {
				for l := core.DebugLevel; l < core.FatalLevel; l++ {
					Expect(c.Enabled(channel, l)).To(BeFalse())
					Expect(c.Handle(record(channel, l, "noise"))).To(Succeed())
				}
				Expect(stderr.String()).To(BeEmpty())

				Expect(c.Handle(record(channel, core.FatalLevel, "critical"))).To(Succeed())
				Expect(stderr.Lines()).To(HaveLen(1))
				Expect(stderr.String()).To(ContainSubstring("critical"))
			},
			Entry("boto3", "boto3"),
			Entry("botocore", "botocore"),
			Entry("s3transfer", "s3transfer"),
			Entry("urllib3", "urllib3"),
			Entry("dotted child", "botocore.credentials"),
			Entry("nested child", "urllib3.connectionpool.http"),
		)

		It("should not suppress lookalike channels", func() {
			Expect(c.Handle(record("urllib3x", core.WarnLevel, "own"))).To(Succeed())
			Expect(c.Handle(record("app.urllib3", core.WarnLevel, "own"))).To(Succeed())
			Expect(stderr.Lines()).To(HaveLen(2))
		})

		It("should reject unknown severities on suppressed channels", func() {
			Expect(c.Enabled("botocore", core.Level(-1))).To(BeTrue())
			Expect(c.Handle(record("botocore", core.Level(-1), "bogus"))).To(MatchError(core.ErrUnknownSeverity))
			Expect(stderr.String()).To(BeEmpty())
			Expect(c.Stats().FailedTotal).To(BeEquivalentTo(1))
		})

		It("should count suppressed records as filtered", func() {
			Expect(c.Handle(record("urllib3", core.WarnLevel, "noise"))).To(Succeed())
			Expect(c.Handle(record("app", core.WarnLevel, "kept"))).To(Succeed())

			snap := c.Stats()
			Expect(snap.FilteredTotal[core.WarnLevel]).To(BeEquivalentTo(1))
			Expect(snap.ProcessedTotal).To(BeEquivalentTo(1))
		})
	})
})

var _ = Describe("Default", func() {
	It("should start in text mode and follow SetDefault", func() {
		orig := sink.Default()
		Expect(orig).NotTo(BeNil())
		Expect(orig.Enabled("app", core.DebugLevel)).To(BeTrue())
		DeferCleanup(func() { sink.SetDefault(orig) })

		var out syncBuffer
		replacement := sink.New()
		Expect(replacement.Configure(sink.WithStdout(&out))).To(Succeed())
		sink.SetDefault(replacement)

		h := sink.DefaultHandler()
		Expect(h.Handle(record("app", core.InfoLevel, "via default"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring(`"msg":"via default"`))

		snap, ok := handler.StatsOf(h)
		Expect(ok).To(BeTrue())
		Expect(snap.ProcessedTotal).To(BeEquivalentTo(1))

		Expect(sink.Configure(sink.WithStdout(&out), sink.WithTimeFormat(formatter.TimeISO8601))).To(Succeed())
		Expect(h.Close()).To(Succeed())
		Expect(h.Handle(record("app", core.InfoLevel, "closed"))).To(MatchError(sink.ErrNotConfigured))
	})
})
