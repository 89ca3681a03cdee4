// Package decoder reads gzip-compressed text logs whose character encoding
// is not known in advance.
package decoder

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/mclog/mclog-go/internal/safefile"
)

// MaxLineBytes is the longest line the decoder yields. Longer lines are
// skipped and counted; see File.SkippedLines.
const MaxLineBytes = 1024 * 1024

// Sentinel errors.
var (
	// ErrUndecodable means every candidate encoding failed on some line.
	ErrUndecodable = errors.New("no encoding could decode the resource")

	// ErrInvalidUTF8 is returned by the UTF8 encoding for malformed input.
	ErrInvalidUTF8 = errors.New("invalid utf-8")
)

// DecodeError reports a resource that could not be read as text.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encoding is a named line decoder.
type Encoding struct {
	Name string

	// newDecoder returns a fresh per-resource decoding function.
	newDecoder func() func([]byte) (string, error)
}

// Decode decodes a single line.
func (e Encoding) Decode(line []byte) (string, error) {
	return e.newDecoder()(line)
}

// Built-in encodings.
var (
	UTF8 = Encoding{
		Name: "utf-8",
		newDecoder: func() func([]byte) (string, error) {
			return func(b []byte) (string, error) {
				if !utf8.Valid(b) {
					return "", ErrInvalidUTF8
				}
				return string(b), nil
			}
		},
	}
	// Latin1 maps every byte, so encodings listed after it are only reached
	// when a caller supplies its own order.
	Latin1      = charmapEncoding("latin1", charmap.ISO8859_1)
	Windows1252 = charmapEncoding("cp1252", charmap.Windows1252)
)

// DefaultEncodings is the priority order used when Open is given none.
var DefaultEncodings = []Encoding{UTF8, Latin1, Windows1252}

func charmapEncoding(name string, cm *charmap.Charmap) Encoding {
	return Encoding{
		Name: name,
		newDecoder: func() func([]byte) (string, error) {
			dec := cm.NewDecoder()
			return func(b []byte) (string, error) {
				out, err := dec.Bytes(b)
				if err != nil {
					return "", err
				}
				return string(out), nil
			}
		},
	}
}

// File is a log resource with a settled encoding.
type File struct {
	path    string
	enc     Encoding
	skipped int
}

// Open picks the first encoding in encs (DefaultEncodings if empty) that
// decodes every line of the gzip resource at path.
//
// Returns a *DecodeError wrapping ErrUndecodable when no encoding succeeds,
// or wrapping the underlying I/O or gzip error when the resource is unreadable.
func Open(path string, encs ...Encoding) (*File, error) {
	if len(encs) == 0 {
		encs = DefaultEncodings
	}

	for _, enc := range encs {
		ok, err := decodesCleanly(path, enc)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		if ok {
			return &File{path: path, enc: enc}, nil
		}
	}
	return nil, &DecodeError{Path: path, Err: ErrUndecodable}
}

// Path returns the resource path.
func (f *File) Path() string { return f.path }

// Encoding returns the encoding chosen by Open.
func (f *File) Encoding() Encoding { return f.enc }

// SkippedLines returns how many lines over MaxLineBytes the last Lines
// iteration dropped.
func (f *File) SkippedLines() int { return f.skipped }

// Lines yields decoded lines lazily. The resource is opened when iteration
// starts and closed when it ends or the consumer stops early. A read error
// is yielded once and ends the sequence.
func (f *File) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		dec := f.enc.newDecoder()
		f.skipped = 0
		err := scan(f.path, &f.skipped, func(raw []byte) (bool, error) {
			line, err := dec(raw)
			if err != nil {
				return false, err
			}
			return yield(line, nil), nil
		})
		if err != nil {
			yield("", &DecodeError{Path: f.path, Err: err})
		}
	}
}

// FirstMatch returns the first decoded line of the resource for which match
// returns true. Lines that fail to decode with the first encoding are
// retried with the remaining ones before being skipped.
func FirstMatch(path string, match func(string) bool, encs ...Encoding) (string, bool, error) {
	if len(encs) == 0 {
		encs = DefaultEncodings
	}
	decoders := make([]func([]byte) (string, error), len(encs))
	for i, enc := range encs {
		decoders[i] = enc.newDecoder()
	}

	var found string
	var ok bool
	err := scan(path, nil, func(raw []byte) (bool, error) {
		for _, dec := range decoders {
			line, err := dec(raw)
			if err != nil {
				continue
			}
			if match(line) {
				found, ok = line, true
				return false, nil
			}
			break
		}
		return true, nil
	})
	if err != nil {
		return "", false, &DecodeError{Path: path, Err: err}
	}
	return found, ok, nil
}

func decodesCleanly(path string, enc Encoding) (bool, error) {
	dec := enc.newDecoder()
	clean := true
	err := scan(path, nil, func(raw []byte) (bool, error) {
		if _, err := dec(raw); err != nil {
			clean = false
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return clean, nil
}

// scan feeds raw lines (CR/LF trimmed) to fn until fn returns false, a
// decode error, or the input ends. Decode errors from fn are returned as is.
// Lines over MaxLineBytes are not passed to fn; they are counted in skipped
// when it is non-nil.
func scan(path string, skipped *int, fn func(raw []byte) (bool, error)) error {
	f, _, err := safefile.OpenRegular(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty gzip stream: %w", io.ErrUnexpectedEOF)
		}
		return err
	}
	defer gz.Close()

	r := bufio.NewReaderSize(gz, 64*1024)
	var buf []byte
	for {
		raw, long, err := readLine(r, buf[:0])
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		buf = raw
		if long {
			if skipped != nil {
				*skipped++
			}
			continue
		}
		more, err := fn(raw)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// readLine reads the next line into buf without its terminator. A line
// longer than MaxLineBytes is consumed whole and reported with long set and
// no content kept. io.EOF is returned only when no bytes remain.
func readLine(r *bufio.Reader, buf []byte) (line []byte, long bool, err error) {
	n := 0
	for {
		chunk, err := r.ReadSlice('\n')
		n += len(chunk)
		if !long && len(buf)+len(chunk) <= MaxLineBytes+2 {
			buf = append(buf, chunk...)
		} else {
			long = true
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && n > 0) {
			return buf, false, err
		}
		break
	}

	buf = bytes.TrimSuffix(buf, []byte("\n"))
	buf = bytes.TrimSuffix(buf, []byte("\r"))
	if long || len(buf) > MaxLineBytes {
		return buf[:0], true, nil
	}
	return buf, false, nil
}
