package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	logcontext "github.com/va6996/newsletter-agent/context"
)

func TestCustomFormatter(t *testing.T) {
	var buf bytes.Buffer
	Init()
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	ctx := logcontext.WithSessionID(context.Background(), "abc-123")
	WithField(ctx, "tool", "get_briefing").Info("tool called")

	line := buf.String()
	assert.Contains(t, line, "[INFO] ")
	assert.Contains(t, line, "[log_test.go:")
	assert.Contains(t, line, "tool called [sess:abc-123] tool=get_briefing\n")
}

func TestConfigure(t *testing.T) {
	defer Logger.SetLevel(logrus.InfoLevel)

	assert.NoError(t, Configure("debug"))
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	assert.Error(t, Configure("chatty"))
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
}
