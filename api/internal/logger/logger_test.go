package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestAnyToStr(t *testing.T) {

	tests := []struct {
		T    any
		TStr string
	}{
		{10, "10"},
		{-10, "-10"},
		{true, "true"},
		{false, "false"},
		{"test", "test"},
		{"", ""},
		{nil, "<nil>"},
		{struct{}{}, "{}"},

		{struct {
			Z string
			F int
		}{"test", 10}, "{test 10}"},

		{[]int{1, 2, 3}, "[1 2 3]"},
	}

	for _, x := range tests {
		res := AnyToStr(x.T)
		if x.TStr != res {
			t.Log(x.T)
			t.Fatalf("failed: %s != %s", x.TStr, res)
		}
	}
}

func TestGenErrorId(t *testing.T) {
	a := GenErrorId()
	b := GenErrorId()

	if a == NA || b == NA {
		t.Fatal("unexpected N/A")
	}
	if a == b {
		t.Fatal("error ids must be unique")
	}
}

func TestZeroValueLoggerLogs(t *testing.T) {
	var l Logger

	l.Info("info", "k", "v")
	l.Error("error", "k", "v")
	l.Debug("debug")
}

func TestTemplWebhookKeys(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	var l Logger
	l.TemplWebhookInfo("webhook delivered", "payment.completed", "e1", 2)

	out := buf.String()
	if !strings.Contains(out, `"event_type":"payment.completed"`) {
		t.Fatalf("missing event_type key: %s", out)
	}
	if !strings.Contains(out, `"event_id":"e1"`) {
		t.Fatalf("missing event_id key: %s", out)
	}

	buf.Reset()
	l.TemplWebhookErr("webhook exhausted all attempts", "payment.failed", "e2", 5, []byte(`{}`))
	out = buf.String()
	if !strings.Contains(out, `"event_type":"payment.failed"`) {
		t.Fatalf("missing event_type key: %s", out)
	}
}
