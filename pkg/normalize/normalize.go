package normalize

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/source"
)

// Record is one canonical source record.
type Record struct {
	Seq        int
	Indicator  rune
	Code       string // the code window, exactly CodeWidth runes
	SourceLine int    // line number in the raw source
}

// Format renders r in the canonical text layout.
func (r Record) Format(seqWidth int) string {
	return fmt.Sprintf("%0*d%c%s", seqWidth, r.Seq, r.Indicator, r.Code)
}

// Trimmed returns the code window without surrounding blanks.
func (r Record) Trimmed() string {
	return strings.TrimSpace(r.Code)
}

// Normalize converts the raw lines of a unit into canonical records.
// The whole unit fails on the first line that cannot be decoded.
func Normalize(unit string, lines []source.Line, cfg config.Normalize) ([]Record, error) {
	enc, name, err := config.LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	d := decoder{enc: enc, name: name, utf8: name == "UTF-8"}

	total := max(cfg.CodeEnd, cfg.IndicatorColumn)
	limit := cfg.MaxSeq()

	records := make([]Record, 0, len(lines))
	seq := cfg.SeqStart
	for _, line := range lines {
		text, ok := d.decode(line.Raw)
		if !ok {
			return nil, &errors.DecodeError{Unit: unit, Line: line.Number, Encoding: name}
		}

		cols := pad([]rune(text), total)
		indicator := cols[cfg.IndicatorColumn-1]
		if strings.ContainsRune(cfg.CommentIndicators, indicator) {
			continue
		}
		if hasPrefix(string(cols[:cfg.IndicatorColumn]), cfg.IgnorePrefixes) {
			continue
		}
		code := string(cols[cfg.CodeStart-1 : cfg.CodeEnd])
		if strings.TrimSpace(code) == "" {
			continue
		}

		if seq > limit {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s: line %d: sequence number exceeds %d digits", unit, line.Number, cfg.SeqWidth)
		}
		records = append(records, Record{
			Seq:        seq,
			Indicator:  indicator,
			Code:       code,
			SourceLine: line.Number,
		})
		seq++
	}
	return records, nil
}

// Canonical reads records back from a canonical artifact written by [Write]
// with the same configuration.
func Canonical(unit string, lines []source.Line, cfg config.Normalize) ([]Record, error) {
	return Normalize(unit, lines, cfg.Canonical())
}

// Write emits records in the canonical text layout, one per line.
func Write(w io.Writer, records []Record, seqWidth int) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.Format(seqWidth)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type decoder struct {
	enc  encoding.Encoding
	name string
	utf8 bool
}

// decode returns line as text. Charmaps report undefined bytes as U+FFFD.
func (d decoder) decode(raw []byte) (string, bool) {
	if d.utf8 {
		return string(raw), utf8.Valid(raw)
	}
	out, err := d.enc.NewDecoder().Bytes(raw)
	if err != nil || strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

func pad(cols []rune, n int) []rune {
	for len(cols) < n {
		cols = append(cols, ' ')
	}
	return cols
}

func hasPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
