package monitoring

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerSilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	assert.NotPanics(t, func() { nop("workers=%d", 4) })
	Logf("workers=%d", 4)
	assert.Empty(t, buf.String())
}

func TestSetLogger(t *testing.T) {
	orig := Logf
	t.Cleanup(func() { Logf = orig })

	var lines []string
	SetLogger(func(format string, v ...any) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	Logf("workers=%d", 4)
	assert.Equal(t, []string{"workers=4"}, lines)

	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("dropped %s", "line") })
	assert.Len(t, lines, 1)
}
