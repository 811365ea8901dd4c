package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter forwards report output and flushes buffered destinations after every write,
// so a rendered report is visible even when the process exits right after rendering.
type FlushingWriter struct {
	mutex       sync.Mutex
	destination io.Writer
}

// NewFlushingWriter wraps destination. A nil destination yields nil and an already wrapped writer is returned unchanged.
func NewFlushingWriter(destination io.Writer) io.Writer {
	switch typedDestination := destination.(type) {
	case nil:
		return nil
	case *FlushingWriter:
		return typedDestination
	default:
		return &FlushingWriter{destination: destination}
	}
}

// Write writes data to the destination and flushes it when the destination buffers output.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	if writer == nil || writer.destination == nil {
		return 0, nil
	}

	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	writtenCount, writeError := writer.destination.Write(data)
	if writeError != nil {
		return writtenCount, writeError
	}

	bufferedDestination, buffers := writer.destination.(flusher)
	if !buffers {
		return writtenCount, nil
	}
	return writtenCount, bufferedDestination.Flush()
}
