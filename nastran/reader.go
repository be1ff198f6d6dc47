package nastran

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxFieldWidth caps a free format field. Free format has no column
// grid, so a runaway field (missing delimiter) is cut off here instead
// of consuming the rest of the file.
const maxFieldWidth = 63

// Reader extracts card fields from a bulk data stream in one of the
// three column layouts. One Reader serves one conversion run; it owns
// the read cursor, the current line number, the most recently read
// card keyword and the most recently seen comment. Multiline
// continuations are joined below the field level, so no caller ever
// observes them.
type Reader struct {
	r      *bufio.Reader
	format Format

	line      int  // line number of the next unread byte, 1 based
	bol       bool // the next unread byte starts a line
	pushedNL  bool // a consumed newline has been pushed back
	entry     string
	entryLine int // line the current keyword was read on

	comment struct {
		name string // trailing word of the last $ comment line
		line int    // line number of the line following that comment
		ok   bool
	}
}

func NewReader(r io.Reader, format Format) *Reader {
	return &Reader{
		r:      bufio.NewReader(r),
		format: format,
		line:   1,
		bol:    true,
	}
}

// Line reports the line number of the next unread byte.
func (rd *Reader) Line() int { return rd.line }

// Entry reports the card keyword most recently read by ReadKeyword.
func (rd *Reader) Entry() string { return rd.entry }

// readByte consumes one byte, keeping the line counter and the
// beginning of line flag in step with the cursor. A pushed back
// newline is delivered before the stream is touched again.
func (rd *Reader) readByte() (byte, error) {
	if rd.pushedNL {
		rd.pushedNL = false
		rd.line++
		rd.bol = true
		return '\n', nil
	}
	c, err := rd.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if c == '\n' {
		rd.line++
		rd.bol = true
	} else {
		rd.bol = false
	}
	return c, nil
}

// unreadNewline pushes a just consumed newline back so that end of
// record handling still observes it. The push back is held outside the
// buffered reader: bufio's UnreadByte refuses to unread across the
// Peek the continuation check has already done. It is exactly one byte
// deep and only ever holds a newline.
func (rd *Reader) unreadNewline() {
	rd.pushedNL = true
	rd.line--
	rd.bol = false
}

// readLine consumes through the next newline and returns the line
// without its terminator. Carriage returns are dropped.
func (rd *Reader) readLine() (string, error) {
	var sb strings.Builder
	for {
		c, err := rd.readByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if c == '\n' {
			return sb.String(), nil
		}
		if c != '\r' {
			sb.WriteByte(c)
		}
	}
}

// FindBulk scans forward to the line that opens the bulk data section.
// Everything before it, the executive and case control sections, is
// ignored.
func (rd *Reader) FindBulk() error {
	for {
		next, err := rd.r.Peek(1)
		if err != nil {
			if err == io.EOF {
				return ErrMissingBulk
			}
			return err
		}
		if next[0] == '$' {
			if _, err := rd.readLine(); err != nil {
				return ErrMissingBulk
			}
			continue
		}
		line, err := rd.readLine()
		if err != nil {
			if err == io.EOF {
				return ErrMissingBulk
			}
			return err
		}
		if strings.HasPrefix(line, "BEGIN BULK") {
			return nil
		}
	}
}

// nextField reads one raw field of at most width characters, width 0
// meaning free format. Space bytes count against the width but are not
// kept; carriage returns are ignored outright. A newline always ends
// the field, a comma ends it in free format.
//
// Continuation rule: a field that begins with + and was ended by a
// newline, with the next line starting + or *, marks a continued card.
// The flag column that restarts the next line (8 raw characters in the
// fixed formats, one comma delimited token in free format) is
// discarded and the real field is read from there. Callers never see
// the seam.
func (rd *Reader) nextField(width int) (string, error) {
	if width == 0 {
		width = maxFieldWidth
	}
	var sb strings.Builder
	endedNL := false
	for consumed := 0; consumed < width; {
		c, err := rd.readByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				break
			}
			return "", err
		}
		if c == '\r' {
			continue
		}
		if c == '\n' {
			endedNL = true
			break
		}
		if c == ',' && rd.format == Free {
			break
		}
		consumed++
		if c != ' ' {
			sb.WriteByte(c)
		}
	}
	field := sb.String()

	if endedNL && strings.HasPrefix(field, "+") {
		if next, err := rd.r.Peek(1); err == nil && (next[0] == '+' || next[0] == '*') {
			if err := rd.skipFlagColumn(); err != nil {
				return "", err
			}
			return rd.nextField(width)
		}
	}
	if endedNL && rd.format == Free {
		rd.unreadNewline()
	}
	return field, nil
}

// skipFlagColumn discards the flag field at the start of a
// continuation line. A newline inside the flag column ends it early
// rather than spilling into the following line.
func (rd *Reader) skipFlagColumn() error {
	if rd.format == Free {
		for {
			c, err := rd.readByte()
			if err != nil || c == ',' || c == '\n' {
				return err
			}
		}
	}
	for i := 0; i < 8; i++ {
		c, err := rd.readByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			break
		}
	}
	return nil
}

// finishCard flushes the remainder of the current logical card: the
// rest of the current line, plus every further line while the flushed
// line ends with the + continuation marker. At the beginning of a line
// there is nothing to flush.
func (rd *Reader) finishCard() error {
	if rd.bol {
		return nil
	}
	for {
		line, err := rd.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !strings.HasSuffix(line, "+") {
			return nil
		}
	}
}

// skipComments consumes $ comment lines, recording each one so a
// following property card can pick up its name.
func (rd *Reader) skipComments() error {
	for {
		next, err := rd.r.Peek(1)
		if err != nil || next[0] != '$' {
			return nil
		}
		line, err := rd.readLine()
		if err != nil {
			return err
		}
		rd.observeComment(line)
	}
}

// observeComment keeps the trailing word of a comment line together
// with the number of the line that follows it. Only the most recent
// comment is retained; whether it names anything is decided when a
// property card is read on exactly the recorded line.
func (rd *Reader) observeComment(line string) {
	rd.comment.name = ""
	rd.comment.line = rd.line
	rd.comment.ok = true
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		rd.comment.name = line[i+1:]
	}
}

// LastComment reports the trailing word of the most recent comment
// line and the line number that word would annotate.
func (rd *Reader) LastComment() (name string, line int, ok bool) {
	return rd.comment.name, rd.comment.line, rd.comment.ok
}

// ReadKeyword finishes the current card, consumes any comment lines,
// then reads and caches the next card keyword. A trailing * (the large
// format marker on a keyword) is stripped. io.EOF here means the deck
// ended cleanly between cards.
func (rd *Reader) ReadKeyword() (string, error) {
	if err := rd.finishCard(); err != nil {
		return "", err
	}
	if err := rd.skipComments(); err != nil {
		return "", err
	}
	rd.entryLine = rd.line
	kw, err := rd.nextField(rd.format.keywordWidth())
	if err != nil {
		return "", err
	}
	rd.entry = strings.TrimSuffix(kw, "*")
	return rd.entry, nil
}

// dataField reads one raw data field. Running out of input in the
// middle of a card is an error, unlike EOF between cards.
func (rd *Reader) dataField() (string, error) {
	f, err := rd.nextField(rd.format.dataWidth())
	if err == io.EOF {
		return "", fmt.Errorf("%w on line %d", io.ErrUnexpectedEOF, rd.line)
	}
	return f, err
}

// NextField returns the next raw data field. Used for card fields that
// are consumed but not interpreted, like the GRID coordinate system
// and element IDs.
func (rd *Reader) NextField() (string, error) {
	return rd.dataField()
}

// ReadInt parses the next data field as a decimal integer.
func (rd *Reader) ReadInt() (int, error) {
	ln := rd.line
	f, err := rd.dataField()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(f)
	if err != nil {
		return 0, fmt.Errorf("%w %q on line %d", ErrMalformedNumber, f, ln)
	}
	return n, nil
}

// ReadFloat parses the next data field as a float, repairing the
// compacted scientific notation NASTRAN permits, where the exponent
// sign abuts the mantissa with no e marker: 1.5-3 means 1.5e-3.
func (rd *Reader) ReadFloat() (float64, error) {
	ln := rd.line
	f, err := rd.dataField()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(repairExponent(f), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q on line %d", ErrMalformedNumber, f, ln)
	}
	return v, nil
}

// repairExponent splices an e before a bare exponent sign: the first +
// or - past the leading character, unless it already follows an e or
// E. Well formed numbers pass through unchanged, so the repair is
// idempotent.
func repairExponent(s string) string {
	for i := 1; i < len(s); i++ {
		if s[i] != '+' && s[i] != '-' {
			continue
		}
		if c := s[i-1]; c == 'e' || c == 'E' {
			return s
		}
		return s[:i] + "e" + s[i:]
	}
	return s
}
