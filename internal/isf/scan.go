package isf

import (
	"errors"
	"strconv"
)

// The preamble grammar:
//
//	preamble := { junk | field } block
//	field    := delim name space value
//	block    := delim ("CURVE" | "CURV") space ["\""] "#" n digit{n}
//	delim    := ":" | ";"
//	name     := word-char { word-char }
//	space    := one whitespace byte
//	value    := ["\""] not-delim-or-quote { not-delim-or-quote }
//
// A delimiter not followed by a well-formed field is skipped; this is what
// lets SCPI prefixes like ":WFMPRE:NR_PT 4;" resolve to NR_PT.

type tokenKind int

const (
	tokField tokenKind = iota + 1
	tokBlock
)

type token struct {
	kind  tokenKind
	name  string
	value []byte // field value, raw Latin-1 bytes

	start  int // block: offset of the first payload byte
	length int // block: declared payload length
}

var (
	errNoBlock         = errors.New("no binary-block marker")
	errIndefiniteBlock = errors.New("indefinite-length binary block")
	errBadBlock        = errors.New("invalid binary-block length")
)

func isBlockName(name string) bool {
	return name == "CURVE" || name == "CURV"
}

type scanner struct {
	buf []byte
	pos int
	err error
}

func newScanner(buf []byte) *scanner {
	return &scanner{buf: buf}
}

// next returns the next field or block token. It returns false at the end of
// the buffer or on error; the error, if any, is left in s.err.
func (s *scanner) next() (token, bool) {
	for s.err == nil && s.pos < len(s.buf) {
		at := s.pos
		for at < len(s.buf) && !isDelim(s.buf[at]) {
			at++
		}
		if at >= len(s.buf) {
			s.pos = at
			return token{}, false
		}
		s.pos = at + 1

		tok, ok := s.token(at)
		if ok {
			return tok, true
		}
	}
	return token{}, false
}

// token tries to read a field starting at the delimiter at buf[at].
func (s *scanner) token(at int) (token, bool) {
	buf := s.buf
	beg := at + 1
	end := beg
	for end < len(buf) && isWord(buf[end]) {
		end++
	}
	if end == beg || end >= len(buf) || !isSpace(buf[end]) {
		return token{}, false
	}
	name := string(buf[beg:end])
	v := end + 1

	if isBlockName(name) {
		tok, err := s.block(name, v)
		if err != nil {
			s.err = err
			return token{}, false
		}
		return tok, true
	}

	q := v
	if q < len(buf) && buf[q] == '"' {
		q++
	}
	e := q
	for e < len(buf) && buf[e] != ';' && buf[e] != '"' {
		e++
	}
	if e == q {
		return token{}, false
	}
	s.pos = e
	return token{kind: tokField, name: name, value: buf[q:e]}, true
}

// block reads "#" n digit{n} at buf[v].
func (s *scanner) block(name string, v int) (token, error) {
	buf := s.buf
	if v < len(buf) && buf[v] == '"' {
		v++
	}
	if v+1 >= len(buf) || buf[v] != '#' || !isDigit(buf[v+1]) {
		return token{}, errMalformed(name, snippet(buf, v), errBadBlock)
	}
	n := int(buf[v+1] - '0')
	if n == 0 {
		return token{}, errMalformed(name, snippet(buf, v), errIndefiniteBlock)
	}
	beg := v + 2
	end := beg + n
	if end > len(buf) {
		return token{}, errMalformed(name, snippet(buf, v), errBadBlock)
	}
	for _, c := range buf[beg:end] {
		if !isDigit(c) {
			return token{}, errMalformed(name, snippet(buf, v), errBadBlock)
		}
	}
	length, err := strconv.Atoi(string(buf[beg:end]))
	if err != nil {
		return token{}, errMalformed(name, snippet(buf, v), err)
	}
	s.pos = end
	return token{kind: tokBlock, name: name, start: end, length: length}, nil
}

// snippet returns a short printable excerpt of buf starting at i.
func snippet(buf []byte, i int) string {
	const maxLen = 12
	if i >= len(buf) {
		return ""
	}
	end := i + maxLen
	if end > len(buf) {
		end = len(buf)
	}
	out := make([]byte, 0, end-i)
	for _, c := range buf[i:end] {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		out = append(out, c)
	}
	return string(out)
}

func isDelim(c byte) bool { return c == ':' || c == ';' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isWord(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
