package parser

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Line tags recognised in the input stream
const (
	TagInstance = "INSTANCE:"
	TagResponse = "RESPONSE:"
)

// maxLineSize bounds how much of a line is kept for parsing. Bytes past it
// are read and discarded, so an over-long line parses from its prefix.
const maxLineSize = 1 << 20

// readBufferSize is the size of the underlying bufio.Reader
const readBufferSize = 64 * 1024

// Kind identifies the variant of a parsed line
type Kind int

const (
	// KindIgnored covers blank, unknown, SUM: and malformed lines
	KindIgnored Kind = iota
	// KindInstance declares an expected category
	KindInstance
	// KindResponse records one observed hit on a category
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindInstance:
		return "instance"
	case KindResponse:
		return "response"
	default:
		return "ignored"
	}
}

// Event is one parsed input line. CategoryID is only meaningful for
// instance and response events.
type Event struct {
	Kind       Kind
	CategoryID uint64
}

// Ignored is the zero event
var Ignored = Event{Kind: KindIgnored}

// ParseLine converts a single line into an Event. It never fails:
// anything it does not understand becomes Ignored.
func ParseLine(line string) Event {
	parts := strings.Split(line, "\t")
	if len(parts) < 2 {
		return Ignored
	}

	var kind Kind
	switch strings.TrimSpace(parts[0]) {
	case TagInstance:
		kind = KindInstance
	case TagResponse:
		kind = KindResponse
	default:
		return Ignored
	}

	id, ok := parseID(strings.TrimSpace(parts[1]))
	if !ok {
		return Ignored
	}
	return Event{Kind: kind, CategoryID: id}
}

// parseID accepts one or more ASCII digits that fit in a uint64
func parseID(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Counts tallies how many lines of each kind a Scanner has produced
type Counts struct {
	Lines     int
	Instances int
	Responses int
	Ignored   int
}

// Scanner reads events from a line-oriented stream. Lines of any length
// are accepted; only read errors from the underlying reader are reported.
type Scanner struct {
	r      *bufio.Reader
	line   []byte
	event  Event
	counts Counts
	err    error
	eof    bool
}

// NewScanner creates a Scanner over r
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, readBufferSize)}
}

// Scan advances to the next line. It returns false at end of input or on a
// read error; check Err afterwards.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.eof {
		return false
	}

	s.line = s.line[:0]
	read, truncated := false, false
	for {
		chunk, err := s.r.ReadSlice('\n')
		if len(chunk) > 0 {
			read = true
			if room := maxLineSize - len(s.line); room < len(chunk) {
				chunk = chunk[:room]
				truncated = true
			}
			s.line = append(s.line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else if err != nil {
			s.err = err
			return false
		}
		break
	}
	if !read {
		return false
	}

	line := s.line
	if !truncated {
		line = dropLineEnding(line)
	}
	s.event = ParseLine(string(line))
	s.counts.Lines++
	switch s.event.Kind {
	case KindInstance:
		s.counts.Instances++
	case KindResponse:
		s.counts.Responses++
	default:
		s.counts.Ignored++
	}
	return true
}

// dropLineEnding strips a trailing "\n" or "\r\n"
func dropLineEnding(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}

// Event returns the most recently parsed event
func (s *Scanner) Event() Event {
	return s.event
}

// Counts returns the per-kind line counters so far
func (s *Scanner) Counts() Counts {
	return s.counts
}

// Err returns the first non-EOF read error
func (s *Scanner) Err() error {
	return s.err
}

// ReadAll parses every line of r
func ReadAll(r io.Reader) ([]Event, Counts, error) {
	s := NewScanner(r)
	var events []Event
	for s.Scan() {
		events = append(events, s.Event())
	}
	return events, s.Counts(), s.Err()
}
