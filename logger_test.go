package plasma

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLoggerSilence(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	tests := []struct {
		name   string
		logger func() *slog.Logger
		silent bool
	}{
		{"nop", newNopLogger, true},
		{"nop with attrs", func() *slog.Logger { return newNopLogger().With("slot", 1) }, true},
		{"nop with group", func() *slog.Logger { return newNopLogger().WithGroup("ring") }, true},
		{"package default", func() *slog.Logger { return orig }, true},
		{"nil restores silence", func() *slog.Logger {
			SetLogger(slog.Default())
			SetLogger(nil)
			return Logger()
		}, true},
		{"custom", func() *slog.Logger {
			SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})))
			return Logger()
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.logger()
			if l == nil {
				t.Fatal("logger is nil")
			}
			for _, level := range levels {
				if got := l.Enabled(context.Background(), level); got == tt.silent {
					t.Errorf("Enabled(%v) = %v, want %v", level, got, !tt.silent)
				}
			}
			if tt.silent {
				if err := l.Handler().Handle(context.Background(), slog.Record{}); err != nil {
					t.Errorf("Handle() = %v, want nil", err)
				}
			}
		})
	}
}

func TestSetLoggerRoutesFrameLogs(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	if Logger() != custom {
		t.Fatal("Logger() did not return the logger passed to SetLogger")
	}

	gpu := &fakeGPU{noTarget: true}
	r, err := New(gpu, DefaultConfig())
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if err := r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"uniform ring allocated", "frame skipped"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q: %s", want, buf.String())
		}
	}
}

// loggingGPU records the logger propagated to it.
type loggingGPU struct {
	fakeGPU
	logger *slog.Logger
}

func (g *loggingGPU) SetLogger(l *slog.Logger) { g.logger = l }

func TestNewPropagatesPackageLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)

	gpu := &loggingGPU{}
	if _, err := New(gpu, DefaultConfig()); err != nil {
		t.Fatalf("New() = %v", err)
	}
	if gpu.logger != custom {
		t.Error("New did not propagate the package logger to the GPU")
	}
}

func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	gpu := &loggingGPU{}
	r, err := New(gpu, DefaultConfig(), WithLogger(custom))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if gpu.logger != custom {
		t.Error("WithLogger was not propagated to the GPU")
	}
	if !strings.Contains(buf.String(), "uniform ring allocated") {
		t.Errorf("expected ring allocation log, got: %s", buf.String())
	}

	gpu.noTarget = true
	if err := r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "frame skipped") {
		t.Errorf("expected skipped frame log, got: %s", buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			l.Debug("concurrent read")
		}()
	}

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}

	wg.Wait()
}

func BenchmarkLoggerLoad(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		l := Logger()
		_ = l
	}
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
