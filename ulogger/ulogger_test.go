package ulogger_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("miner",
		ulogger.WithWriter(&buf),
		ulogger.WithLoggerType("zerolog"),
		ulogger.WithPrettyLogs(false),
		ulogger.WithLevel("INFO"),
	)

	logger.Debugf("hidden %d", 1)
	logger.Infof("[Miner] issued round %d", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "miner", entry["service"])
	assert.Equal(t, "[Miner] issued round 7", entry["message"])
}

func TestZeroLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.NewZeroLogger("consensus", ulogger.WithWriter(&buf), ulogger.WithPrettyLogs(false), ulogger.WithLevel("WARN"))
	logger.Infof("dropped")
	logger.Warnf("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	logger.SetLogLevel("DEBUG")
	logger.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestZeroLoggerNewInheritsWriter(t *testing.T) {
	var buf bytes.Buffer

	parent := ulogger.NewZeroLogger("parent", ulogger.WithWriter(&buf), ulogger.WithPrettyLogs(false), ulogger.WithLevel("INFO"))
	child := parent.New("child")
	child.Infof("from child")

	assert.Contains(t, buf.String(), `"service":"child"`)
	assert.Contains(t, buf.String(), "from child")
}

func TestZeroLoggerPretty(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.NewZeroLogger("pow", ulogger.WithWriter(&buf), ulogger.WithPrettyLogs(true), ulogger.WithLevel("INFO"))
	logger.Infof("pretty line")

	assert.Contains(t, buf.String(), "| pow   | pretty line")
	assert.Contains(t, buf.String(), "INFO")
}

func TestTestLogger(t *testing.T) {
	var logger ulogger.Logger = ulogger.TestLogger{}
	logger.Infof("nothing")
	assert.Equal(t, logger, logger.New("x"))
	assert.Equal(t, 0, logger.LogLevel())
}

func TestVerboseTestLogger(t *testing.T) {
	logger := ulogger.NewVerboseTestLogger(t)
	child := logger.New("child")
	child.Infof("visible with -v")
	logger.Debugf("debug %s", "line")
	assert.Equal(t, 0, child.LogLevel())
}

type recordingT struct {
	errors []string
	logs   []string
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) Logf(format string, args ...any) {
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func TestErrorTestLogger(t *testing.T) {
	rt := &recordingT{}
	logger := ulogger.NewErrorTestLogger(rt)

	logger.Infof("ignored")
	logger.Warnf("ignored")
	assert.Empty(t, rt.errors)

	logger.Errorf("fsm transition failed: %s", "abandon")
	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], "ERR_LEVEL fsm transition failed: abandon")

	logger.AllowErrors(true)
	logger.Errorf("tolerated")
	assert.Len(t, rt.errors, 1)
	assert.Len(t, rt.logs, 1)

	logger.Shutdown()
	logger.Fatalf("after shutdown")
	assert.Len(t, rt.logs, 1)
}
