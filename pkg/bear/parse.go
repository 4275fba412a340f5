package bear

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RawDiagnostic is one record decoded from the tool's JSON output before
// severity mapping. Pointer fields distinguish absent keys from zero values.
type RawDiagnostic struct {
	Line     *int    `json:"line"`
	Message  *string `json:"message"`
	Severity *string `json:"severity"`
	DebugMsg *string `json:"debug_msg"`
}

// OutputScanner walks the JSON array a tool prints on stdout, one record at
// a time, in the bufio.Scanner style. It is lazy: malformed input is only
// noticed when the scan reaches it, so callers must drain the scanner and
// check Err to observe parse errors. Bear.Run does exactly that.
type OutputScanner struct {
	dec     *json.Decoder
	file    string
	started bool
	done    bool
	cur     RawDiagnostic
	err     error
}

// ParseOutput prepares a scanner over the captured stdout of a tool run.
// No decoding happens until Scan is called.
func ParseOutput(output, filename string) *OutputScanner {
	return &OutputScanner{
		dec:  json.NewDecoder(strings.NewReader(output)),
		file: filename,
	}
}

// Scan advances to the next raw diagnostic. It returns false at the end of
// the array or on the first error; Err tells the two apart.
func (s *OutputScanner) Scan() bool {
	if s.err != nil || s.done {
		return false
	}

	if !s.started {
		if err := s.expectDelim('['); err != nil {
			s.err = err
			return false
		}
		s.started = true
	}

	if !s.dec.More() {
		if err := s.expectDelim(']'); err != nil {
			s.err = err
		} else if err := s.expectEOF(); err != nil {
			s.err = err
		}
		s.done = true
		return false
	}

	var raw RawDiagnostic
	if err := s.dec.Decode(&raw); err != nil {
		s.err = fmt.Errorf("%w: %v", ErrParse, err)
		return false
	}
	if raw.Line == nil || raw.Message == nil {
		s.err = fmt.Errorf("%w: record for %s lacks line or message", ErrParse, s.file)
		return false
	}

	s.cur = raw
	return true
}

// Diagnostic returns the record produced by the last successful Scan.
func (s *OutputScanner) Diagnostic() RawDiagnostic { return s.cur }

// Err returns the first error hit while scanning, nil on a clean end of
// input.
func (s *OutputScanner) Err() error { return s.err }

// expectEOF rejects anything after the closing delimiter: the contract is a
// single JSON array, so trailing output (a crash trace, a second document)
// is a parse failure, not noise to skip.
func (s *OutputScanner) expectEOF() error {
	tok, err := s.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: trailing data after diagnostics array: %v", ErrParse, err)
	}
	return fmt.Errorf("%w: trailing data after diagnostics array: %v", ErrParse, tok)
}

func (s *OutputScanner) expectDelim(want rune) error {
	tok, err := s.dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrParse, want, tok)
	}
	return nil
}
