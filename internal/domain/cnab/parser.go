package cnab

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// Parser limits
const (
	// MaxScanLineBytes bounds a single physical line read from the stream
	MaxScanLineBytes = 64 * 1024
	// contextCheckInterval is how many lines are decoded between cancellation checks
	contextCheckInterval = 500
)

// ErrEmptyFile is the message reported for a file without lines
const ErrEmptyFile = "file is empty: at least one line required"

// ParseResult aggregates the outcome of decoding a whole file
type ParseResult struct {
	Records    []Record // in file order
	Errors     []string // union of all line errors
	TotalLines int
	ValidLines int
}

// IsValid reports whether every line decoded and at least one record was produced
func (r *ParseResult) IsValid() bool {
	return len(r.Errors) == 0 && len(r.Records) > 0
}

// InvalidLines returns the number of lines that failed decoding
func (r *ParseResult) InvalidLines() int {
	return r.TotalLines - r.ValidLines
}

// Parser decodes a stream of CNAB lines
type Parser struct {
	decoder  *Decoder
	maxLines int
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithMaxLines rejects files with more than n lines; 0 disables the limit
func WithMaxLines(n int) ParserOption {
	return func(p *Parser) {
		p.maxLines = n
	}
}

// NewParser creates a parser around decoder
func NewParser(decoder *Decoder, opts ...ParserOption) *Parser {
	p := &Parser{decoder: decoder}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads r to the end as 7-bit text and decodes each line in order.
// Format problems are reported in the result; the error return is reserved for
// read failures and cancellation.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, LineLength+2), MaxScanLineBytes)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		if lineNumber%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if p.maxLines > 0 && lineNumber > p.maxLines {
			result.Errors = append(result.Errors, fmt.Sprintf("file exceeds the maximum of %d lines", p.maxLines))
			return result, nil
		}

		result.TotalLines++
		rec, lineErrs := p.decoder.DecodeLine(toASCII(scanner.Bytes()), lineNumber)
		if len(lineErrs) > 0 {
			result.Errors = append(result.Errors, lineErrs...)
			continue
		}
		result.Records = append(result.Records, rec)
		result.ValidLines++
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			result.Errors = append(result.Errors,
				lineError(lineNumber+1, fmt.Sprintf("invalid line length: line exceeds %d bytes", MaxScanLineBytes)))
			return result, nil
		}
		return nil, fmt.Errorf("read cnab content: %w", err)
	}

	if result.TotalLines == 0 {
		result.Errors = append(result.Errors, ErrEmptyFile)
	}

	return result, nil
}

// toASCII decodes b as 7-bit text, replacing bytes outside the range with '?'
func toASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c > 0x7f {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}
