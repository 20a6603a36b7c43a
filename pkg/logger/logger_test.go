package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openagentsbuilder/oab/pkg/logger"
)

func parseJSON(buf *bytes.Buffer) map[string]any {
	var parsed map[string]any
	Expect(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed)).To(Succeed())
	return parsed
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink closed")
}

var _ = Describe("Logger", func() {
	Describe("New", func() {
		It("creates a default text logger", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf))
			l.Info("hello", "key", "value")

			Expect(buf.String()).To(ContainSubstring("msg=hello"))
			Expect(buf.String()).To(ContainSubstring("key=value"))
		})

		It("respects debug level", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithDebug(true))
			l.Debug("debug msg")

			Expect(buf.String()).To(ContainSubstring("debug msg"))
		})

		It("filters debug when not enabled", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithDebug(false))
			l.Debug("hidden")

			Expect(buf.String()).To(BeEmpty())
		})

		It("creates a JSON logger", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatJSON))
			l.Info("structured", "count", 42)

			parsed := parseJSON(&buf)
			Expect(parsed["msg"]).To(Equal("structured"))
			Expect(parsed["count"]).To(BeNumerically("==", 42))
		})

		It("adds the caller when asked", func() {
			var buf bytes.Buffer
			l := logger.New(
				logger.WithWriter(&buf),
				logger.WithFormat(logger.FormatJSON),
				logger.WithSource(true),
			)
			l.Info("located")

			Expect(parseJSON(&buf)).To(HaveKey("source"))
		})

		It("creates a pretty logger", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatPretty))
			l.Info("pretty output")

			Expect(buf.String()).To(ContainSubstring("pretty output"))
		})
	})

	Describe("OpenTrace", func() {
		It("appends debug JSON records to the file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "oab.log")

			l, closer, err := logger.OpenTrace(path)
			Expect(err).NotTo(HaveOccurred())
			l.Debug("first")
			Expect(closer.Close()).To(Succeed())

			l, closer, err = logger.OpenTrace(path)
			Expect(err).NotTo(HaveOccurred())
			l.Debug("second")
			Expect(closer.Close()).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(ContainSubstring(`"msg":"first"`))
			Expect(lines[1]).To(ContainSubstring(`"msg":"second"`))
		})

		It("fails for an unwritable path", func() {
			_, _, err := logger.OpenTrace(filepath.Join(GinkgoT().TempDir(), "missing", "oab.log"))
			Expect(err).To(MatchError(ContainSubstring("opening log file")))
		})
	})

	Describe("Nop", func() {
		It("does not panic on any method", func() {
			l := logger.Nop()
			Expect(func() {
				l.Debug("msg")
				l.Info("msg")
				l.Warn("msg")
				l.Error("msg")
				l.With("key", "value").Info("msg")
				l.WithGroup("group").Info("msg")
			}).NotTo(Panic())
		})

		It("discards all output", func() {
			l := logger.Nop()
			Expect(l.Handler().Enabled(context.Background(), slog.LevelError)).To(BeFalse())
		})
	})

	Describe("Multi", func() {
		It("dispatches to all loggers", func() {
			var buf1, buf2 bytes.Buffer
			l1 := logger.New(logger.WithWriter(&buf1))
			l2 := logger.New(logger.WithWriter(&buf2), logger.WithFormat(logger.FormatJSON))
			multi := logger.Multi(l1, l2)

			multi.Info("broadcast", "key", "val")

			Expect(buf1.String()).To(ContainSubstring("broadcast"))
			Expect(parseJSON(&buf2)["key"]).To(Equal("val"))
		})

		It("applies each logger's own level", func() {
			var terminal, trace bytes.Buffer
			multi := logger.Multi(
				logger.New(logger.WithWriter(&terminal)),
				logger.New(logger.WithWriter(&trace), logger.WithDebug(true)),
			)

			multi.Debug("request details")

			Expect(terminal.String()).To(BeEmpty())
			Expect(trace.String()).To(ContainSubstring("request details"))
		})

		It("supports With and WithGroup", func() {
			var buf bytes.Buffer
			multi := logger.Multi(logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatJSON)))

			multi.With("component", "chat").WithGroup("request").Info("processed", "method", "POST")

			parsed := parseJSON(&buf)
			Expect(parsed["component"]).To(Equal("chat"))
			group, ok := parsed["request"].(map[string]any)
			Expect(ok).To(BeTrue(), "expected 'request' group in JSON output")
			Expect(group["method"]).To(Equal("POST"))
		})

		It("keeps writing past a failing handler", func() {
			var buf bytes.Buffer
			broken := slog.New(failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)})
			multi := logger.Multi(broken, logger.New(logger.WithWriter(&buf)))

			err := multi.Handler().Handle(context.Background(), slog.NewRecord(
				time.Now(), slog.LevelInfo, "still here", 0,
			))

			Expect(err).To(MatchError("sink closed"))
			Expect(buf.String()).To(ContainSubstring("still here"))
		})
	})

	Describe("context", func() {
		It("round trips a logger", func() {
			l := logger.Nop()
			got, ok := logger.FromContext(logger.NewContext(context.Background(), l))
			Expect(ok).To(BeTrue())
			Expect(got).To(BeIdenticalTo(l))
		})

		It("reports a missing logger", func() {
			_, ok := logger.FromContext(context.Background())
			Expect(ok).To(BeFalse())
		})
	})
})
