package logger

import (
	"context"
	"testing"

	ctxutil "github.com/Payphone-Digital/videotube/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogBuilderExtractsRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	ctx = ctxutil.WithUserID(ctx, 9)
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	InfoWithContext(ctx, "User logged in").
		String("username", "alice").
		Err(nil).
		Log()

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-42" {
		t.Errorf("request_id = %v", fields["request_id"])
	}
	if fields["user_id"] != uint64(9) {
		t.Errorf("user_id = %v (%T)", fields["user_id"], fields["user_id"])
	}
	if fields["function"] != "Login" || fields["module"] != "service" {
		t.Errorf("module/function = %v/%v", fields["module"], fields["function"])
	}
	if fields["username"] != "alice" {
		t.Errorf("username = %v", fields["username"])
	}
}

func TestContextLogBuilderRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	DebugWithContext(context.Background(), "dropped").String("k", "v").Log()
	WarnWithContext(context.Background(), "kept").Log()

	if logs.Len() != 1 || logs.All()[0].Message != "kept" {
		t.Fatalf("unexpected entries: %+v", logs.All())
	}
}

func TestContextLogBuilderSkipsCancelledContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ErrorWithContext(ctx, "late").Log()

	if logs.Len() != 0 {
		t.Fatalf("expected no entries, got %d", logs.Len())
	}
}
