package scrape

import (
	"io"
	"log"
	"testing"
)

// Workers may still be draining when a test returns, so logs go to
// io.Discard instead of t.Log.
func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(io.Discard, "", 0)
}
