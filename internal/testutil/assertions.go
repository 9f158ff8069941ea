package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/udisondev/emberfall/internal/model"
)

// AssertState проверяет life-cycle состояние.
func AssertState(t testing.TB, expected model.EntityState, s *model.StatBlock) {
	t.Helper()
	if s.State != expected {
		t.Fatalf("%s state mismatch: expected %s, got %s", s.Name, expected, s.State)
	}
}

// CaptureLogs подменяет slog.Default на text handler, пишущий в буфер, до конца теста.
// Tests that use it must not run in parallel.
func CaptureLogs(t testing.TB, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// CountLines возвращает число строк лога, содержащих substr.
func CountLines(buf *bytes.Buffer, substr string) int {
	n := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
