package state

import (
	"context"
	stdlog "log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/charmap"

	"reflow/config"
	"reflow/diag"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	if ctx == nil {
		t.Fatal("ContextWithEnv() returned nil")
	}

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}

	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Diag == nil {
		t.Error("Diagnostics collector not set")
	}
	if env.RunID == "" {
		t.Error("Run id not set")
	}
}

func TestRunIDs(t *testing.T) {
	first := EnvFromContext(ContextWithEnv(context.Background()))
	second := EnvFromContext(ContextWithEnv(context.Background()))
	if first.RunID == second.RunID {
		t.Errorf("run ids repeat: %s", first.RunID)
	}
	if first.Diag == second.Diag {
		t.Error("diagnostics collector shared between runs")
	}
	if len(first.RunID) != 36 {
		t.Errorf("unexpected run id %q", first.RunID)
	}
}

func TestEnvFromContext(t *testing.T) {
	t.Run("valid context", func(t *testing.T) {
		ctx := ContextWithEnv(context.Background())
		env := EnvFromContext(ctx)

		if env == nil {
			t.Error("Expected non-nil environment")
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when env not in context")
			}
		}()

		// Use plain context without env
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Uptime(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > 1*time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}

		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Error("Expected restoreStdLog to be set")
		}

		env.RestoreStdLog()
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: nil,
		}

		// Should not panic
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
	})
}

func TestLocalEnv_RestoreStdLog(t *testing.T) {
	t.Run("with redirect", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}

		env.RedirectStdLog()
		// Should not panic
		env.RestoreStdLog()
	})

	t.Run("without redirect", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}

		// Should not panic even without redirect
		env.RestoreStdLog()
	})

	t.Run("nil logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: nil,
		}

		// Should not panic
		env.RestoreStdLog()
	})
}

func TestLocalEnv_StdLogGoesToZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	stdlog.Print("message from library")
	env.RestoreStdLog()
	stdlog.Print("after restore")

	entries := logs.FilterMessage("message from library").All()
	if len(entries) != 1 {
		t.Fatalf("std log not redirected: %+v", logs.All())
	}
	if logs.FilterMessage("after restore").Len() != 0 {
		t.Error("std log still redirected after restore")
	}
}

func TestLocalEnv_CodePage(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.CodePage != nil {
		t.Fatal("code page forced by default")
	}
	env.CodePage = charmap.CodePage866
	name, err := env.CodePage.NewDecoder().String("\x8f\xa0\xe0\xe2\xa8\xef")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Партия" {
		t.Errorf("decoded %q", name)
	}
}

func TestLocalEnv_Integration(t *testing.T) {
	// Simulate a typical usage pattern
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	// Set up environment
	env.Cfg = &config.Config{Version: 1}
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Rpt = &config.Report{}
	env.Overwrite = false
	env.Diag.Record(diag.Event{Kind: diag.KindStrategy, Page: 1, Block: 0, Message: "plain"})

	// Redirect logs
	env.RedirectStdLog()

	// Simulate some work
	time.Sleep(5 * time.Millisecond)

	// Check uptime
	if env.Uptime() < 5*time.Millisecond {
		t.Error("Uptime too small")
	}

	// Restore logs
	env.RestoreStdLog()

	// Verify all fields are accessible
	if env.Cfg == nil || env.Log == nil || env.Rpt == nil {
		t.Error("Environment not properly initialized")
	}
	env.Diag.Flush(env.Log)
	if env.Diag.Count(diag.KindStrategy) != 1 {
		t.Error("Diagnostics lost on flush")
	}
}
