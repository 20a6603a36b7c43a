package stream

import (
	"bytes"
	"strings"
)

// Splitter reassembles newline-delimited frames from arbitrarily sized chunks.
//
// Between calls to Feed the buffer holds at most one partial line: everything
// up to the last '\n' has already been returned. Splitting on the raw '\n' byte
// is safe for UTF-8 input because that byte never occurs inside a multi-byte
// sequence, so a rune split across two chunks is rejoined before it is ever
// decoded.
type Splitter struct {
	buf []byte
}

// Feed appends chunk to the buffer and returns every complete line, trimmed of
// surrounding whitespace. Blank lines are dropped. The trailing partial line,
// if any, stays buffered for the next call.
func (s *Splitter) Feed(chunk []byte) []string {
	s.buf = append(s.buf, chunk...)

	var lines []string
	for {
		idx := bytes.IndexByte(s.buf, '\n')
		if idx < 0 {
			break
		}

		line := strings.TrimSpace(string(s.buf[:idx]))
		s.buf = s.buf[idx+1:]
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	// Compact so a long stream does not pin every consumed chunk in memory.
	if len(s.buf) == 0 {
		s.buf = nil
	} else if cap(s.buf) > 4*len(s.buf) {
		s.buf = append([]byte(nil), s.buf...)
	}

	return lines
}

// Remainder returns the buffered partial line.
func (s *Splitter) Remainder() string {
	return string(s.buf)
}

// Reset discards any buffered partial line.
func (s *Splitter) Reset() {
	s.buf = nil
}
