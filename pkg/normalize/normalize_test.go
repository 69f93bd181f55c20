package normalize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/source"
)

// raw builds a fixed-format line: sequence area, indicator, code.
func raw(seq string, indicator byte, code string) string {
	return seq + string(indicator) + code
}

func lines(texts ...string) []source.Line {
	out := make([]source.Line, len(texts))
	for i, s := range texts {
		out[i] = source.Line{Number: i + 1, Raw: []byte(s)}
	}
	return out
}

func codes(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Trimmed())
	}
	return out
}

func TestNormalizeDropRules(t *testing.T) {
	cfg := config.Default().Normalize
	input := lines(
		raw("000100", ' ', "IDENTIFICATION DIVISION."),
		raw("000200", '*', "THIS IS A COMMENT"),
		raw("000300", '/', "PAGE EJECT"),
		"SMASH SOME DIRECTIVE",
		"//JOBCARD JOB",
		raw("000400", ' ', "      "),
		"",
		raw("000500", ' ', "PROCEDURE DIVISION."),
		raw("000600", ' ', "    DISPLAY 'X'."+strings.Repeat(" ", 49))+"IDENT123",
	)

	got, err := Normalize("PROG", input, cfg)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	want := []string{"IDENTIFICATION DIVISION.", "PROCEDURE DIVISION.", "DISPLAY 'X'."}
	if diff := cmp.Diff(want, codes(got)); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}

	for i, r := range got {
		if r.Seq != cfg.SeqStart+i {
			t.Errorf("record %d: Seq = %d, want %d", i, r.Seq, cfg.SeqStart+i)
		}
		if n := len([]rune(r.Code)); n != cfg.CodeWidth() {
			t.Errorf("record %d: code width %d, want %d", i, n, cfg.CodeWidth())
		}
	}
	if got[1].SourceLine != 8 {
		t.Errorf("SourceLine = %d, want 8", got[1].SourceLine)
	}
	// identification area (cols 73-80) is outside the window
	if strings.Contains(got[2].Code, "IDENT") {
		t.Errorf("code window includes identification area: %q", got[2].Code)
	}
}

func TestNormalizeKeepsContentVerbatim(t *testing.T) {
	cfg := config.Default().Normalize
	got, err := Normalize("PROG", lines(raw("000100", ' ', "    MOVE   A   TO B.")), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got[0].Code, "    MOVE   A   TO B.") {
		t.Errorf("Code = %q, content realigned", got[0].Code)
	}
}

func TestNormalizeSequenceStart(t *testing.T) {
	cfg := config.Default().Normalize
	cfg.SeqStart = 100
	got, err := Normalize("PROG", lines(raw("      ", ' ', "A."), raw("      ", ' ', "B.")), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Seq != 100 || got[1].Seq != 101 {
		t.Errorf("Seq = %d,%d, want 100,101", got[0].Seq, got[1].Seq)
	}
	if s := got[0].Format(cfg.SeqWidth); !strings.HasPrefix(s, "000100 A.") {
		t.Errorf("Format() = %q", s)
	}
}

func TestNormalizeSequenceOverflow(t *testing.T) {
	cfg := config.Default().Normalize
	cfg.SeqWidth = 1
	cfg.SeqStart = 8
	_, err := Normalize("PROG", lines(raw("000000", ' ', "A."), raw("000000", ' ', "B."), raw("000000", ' ', "C.")), cfg)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Normalize() = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestNormalizeDecodeError(t *testing.T) {
	cfg := config.Default().Normalize
	cfg.Encoding = "utf-8"
	input := lines(
		raw("000100", ' ', "A."),
		"000200 B. \xff\xfe",
	)

	got, err := Normalize("PROG", input, cfg)
	if got != nil {
		t.Errorf("partial output on decode failure: %v", got)
	}
	var de *errors.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("Normalize() = %v, want *DecodeError", err)
	}
	if de.Line != 2 || de.Unit != "PROG" {
		t.Errorf("DecodeError = %+v, want line 2 of PROG", de)
	}
	if !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeDecode)
	}
}

func TestNormalizeLatin1(t *testing.T) {
	cfg := config.Default().Normalize
	// 0xC9 is É in ISO-8859-1
	got, err := Normalize("PROG", lines("000100 DISPLAY '\xc9T\xc9'."), cfg)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if got[0].Trimmed() != "DISPLAY 'ÉTÉ'." {
		t.Errorf("Code = %q", got[0].Trimmed())
	}
	if n := len([]rune(got[0].Code)); n != cfg.CodeWidth() {
		t.Errorf("code width %d, want %d", n, cfg.CodeWidth())
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	cfg := config.Default().Normalize
	input := lines(
		raw("000010", ' ', "PROCEDURE DIVISION."),
		raw("000020", '*', "comment"),
		raw("000030", ' ', "0001-INIT."),
		raw("000040", '-', "    'CONTINUED LITERAL'."),
		raw("000050", ' ', "    GOBACK."),
	)

	first, err := Normalize("PROG", input, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, first, cfg.SeqWidth); err != nil {
		t.Fatal(err)
	}
	second, err := Canonical("PROG", source.SplitLines(buf.Bytes()), cfg)
	if err != nil {
		t.Fatalf("Canonical() error: %v", err)
	}

	opt := cmpopts.IgnoreFields(Record{}, "SourceLine")
	if diff := cmp.Diff(first, second, opt); diff != "" {
		t.Errorf("re-normalization changed records (-first +second):\n%s", diff)
	}

	var again bytes.Buffer
	if err := Write(&again, second, cfg.SeqWidth); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("canonical text is not a fixed point")
	}
}

func TestWrite(t *testing.T) {
	recs := []Record{
		{Seq: 1, Indicator: ' ', Code: "A.  "},
		{Seq: 2, Indicator: '-', Code: "B.  "},
	}
	var buf bytes.Buffer
	if err := Write(&buf, recs, 6); err != nil {
		t.Fatal(err)
	}
	want := "000001 A.  \n000002-B.  \n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}
