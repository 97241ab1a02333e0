package table

import (
	"bufio"
	"io"
	"strings"
)

type scanState int

const (
	startRecord scanState = iota
	startField
	inField
	inQuoted
	quoteInQuoted
)

// scanner splits a decoded rune stream into records.
//
// Quoting is lenient: a quote in the middle of an unquoted field is literal
// text, a stray character after a closing quote continues the field, and a
// quoted field still open at end of input ends there. A blank line is a record
// with no fields. \n, \r\n and a lone \r all terminate a record outside quotes.
type scanner struct {
	r     *bufio.Reader
	comma rune
	quote rune
	field strings.Builder
}

func newScanner(r *bufio.Reader, d Dialect) *scanner {
	return &scanner{r: r, comma: d.Delimiter, quote: d.Quote}
}

// next returns the next record, or io.EOF once the input is exhausted.
func (s *scanner) next() ([]string, error) {
	rec := []string{}
	state := startRecord
	s.field.Reset()

	for {
		c, _, err := s.r.ReadRune()
		if err == io.EOF {
			if state == startRecord {
				return nil, io.EOF
			}
			return s.save(rec), nil
		}
		if err != nil {
			return nil, err
		}

		switch state {
		case startRecord:
			if c == '\r' || c == '\n' {
				return rec, s.eatLF(c)
			}
			state = startField
			fallthrough
		case startField:
			switch c {
			case '\r', '\n':
				return s.save(rec), s.eatLF(c)
			case s.quote:
				state = inQuoted
			case s.comma:
				rec = s.save(rec)
			default:
				s.field.WriteRune(c)
				state = inField
			}
		case inField:
			switch c {
			case '\r', '\n':
				return s.save(rec), s.eatLF(c)
			case s.comma:
				rec = s.save(rec)
				state = startField
			default:
				s.field.WriteRune(c)
			}
		case inQuoted:
			if c == s.quote {
				state = quoteInQuoted
			} else {
				s.field.WriteRune(c)
			}
		case quoteInQuoted:
			switch c {
			case s.quote:
				s.field.WriteRune(c)
				state = inQuoted
			case s.comma:
				rec = s.save(rec)
				state = startField
			case '\r', '\n':
				return s.save(rec), s.eatLF(c)
			default:
				s.field.WriteRune(c)
				state = inField
			}
		}
	}
}

func (s *scanner) save(rec []string) []string {
	rec = append(rec, s.field.String())
	s.field.Reset()
	return rec
}

// eatLF consumes the \n of a \r\n pair.
func (s *scanner) eatLF(c rune) error {
	if c != '\r' {
		return nil
	}
	n, _, err := s.r.ReadRune()
	switch {
	case err == io.EOF:
		return nil
	case err != nil:
		return err
	case n != '\n':
		return s.r.UnreadRune()
	}
	return nil
}
