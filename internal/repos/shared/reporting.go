package shared

import (
	"fmt"
	"io"
	"sync"
)

// Reporter emits operator-facing status lines.
type Reporter interface {
	Printf(format string, args ...any)
}

type flusher interface {
	Flush() error
}

type writerReporter struct {
	writer io.Writer
	mutex  *sync.Mutex
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer. A nil writer
// discards every line. Writers exposing Flush are flushed after every line so status output
// interleaves with prompts in order.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = io.Discard
	}
	return writerReporter{writer: writer, mutex: &sync.Mutex{}}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()

	if _, writeError := fmt.Fprintf(reporter.writer, format, args...); writeError != nil {
		return
	}
	if flushableWriter, supportsFlush := reporter.writer.(flusher); supportsFlush {
		_ = flushableWriter.Flush()
	}
}
