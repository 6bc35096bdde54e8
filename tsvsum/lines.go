package main

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// lineScanner reads text lines ending in "\n", "\r\n" or a lone "\r", with no
// limit on line length. Terminators are not part of the returned text.
type lineScanner struct {
	r       *bufio.Reader
	pending []string
	text    string
	err     error
	done    bool
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{r: bufio.NewReader(r)}
}

func (s *lineScanner) Scan() bool {
	for len(s.pending) == 0 {
		if s.done {
			return false
		}

		// "\r\n" always ends up in the same chunk since the read stops at
		// "\n".
		chunk, err := s.r.ReadString('\n')
		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
				return false
			}
			if chunk == "" {
				return false
			}
		}

		chunk = strings.TrimSuffix(chunk, "\n")
		chunk = strings.TrimSuffix(chunk, "\r")
		s.pending = strings.Split(chunk, "\r")
	}

	s.text, s.pending = s.pending[0], s.pending[1:]
	return true
}

func (s *lineScanner) Text() string { return s.text }

func (s *lineScanner) Err() error { return s.err }
