package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// srtTimeSep separates cue start and end times in SubRip files.
const srtTimeSep = " --> "

// LoadSRT reads a SubRip file into a new document.
func LoadSRT(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitle file: %w", err)
	}
	defer f.Close()

	doc, err := ParseSRT(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.SetPath(path)
	return doc, nil
}

// ParseSRT parses SubRip cues from a reader. Cue numbers are not required
// to be sequential; CRLF line endings and runs of blank lines between cues
// are tolerated. A UTF-8 BOM on the first line is stripped.
func ParseSRT(r io.Reader) (*Document, error) {
	doc := NewDocument()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	first := true
	for {
		// Skip blank separator lines
		var text string
		var ok bool
		for {
			ok = scanner.Scan()
			if !ok {
				break
			}
			lineNo++
			text = strings.TrimRight(scanner.Text(), "\r")
			if first {
				text = strings.TrimPrefix(text, "\ufeff")
				first = false
			}
			if strings.TrimSpace(text) != "" {
				break
			}
		}
		if !ok {
			break
		}

		// Cue index
		if _, err := strconv.Atoi(strings.TrimSpace(text)); err != nil {
			return nil, fmt.Errorf("line %d: expected cue number, got %q", lineNo, text)
		}

		// Timing line
		if !scanner.Scan() {
			return nil, fmt.Errorf("line %d: unexpected end of file after cue number", lineNo)
		}
		lineNo++
		timing := strings.TrimRight(scanner.Text(), "\r")
		start, end, err := parseSRTTiming(timing)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		// Text lines until blank or EOF
		var textLines []string
		for scanner.Scan() {
			lineNo++
			t := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(t) == "" {
				break
			}
			textLines = append(textLines, t)
		}

		doc.Append(Line{
			Start: start,
			End:   end,
			Style: "Default",
			Text:  strings.Join(textLines, "\\N"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subtitle data: %w", err)
	}

	doc.dirty = false
	return doc, nil
}

// SaveSRT writes the document to its bound path and clears the dirty flag.
func SaveSRT(doc *Document) error {
	if doc.Path() == "" {
		return fmt.Errorf("document has no file path")
	}
	f, err := os.Create(doc.Path())
	if err != nil {
		return fmt.Errorf("create subtitle file: %w", err)
	}
	if err := WriteSRT(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	doc.MarkSaved()
	return nil
}

// WriteSRT formats the document as SubRip cues. Comment lines are skipped;
// cue numbers are renumbered from 1.
func WriteSRT(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	n := 0
	for _, id := range doc.Lines() {
		line := doc.Line(id)
		if line == nil || line.Comment {
			continue
		}
		n++
		fmt.Fprintf(bw, "%d\n", n)
		fmt.Fprintf(bw, "%s%s%s\n", formatSRTTime(line.Start), srtTimeSep, formatSRTTime(line.End))
		fmt.Fprintf(bw, "%s\n\n", strings.ReplaceAll(line.Text, "\\N", "\n"))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write subtitle data: %w", err)
	}
	return nil
}

// parseSRTTiming parses "HH:MM:SS,mmm --> HH:MM:SS,mmm".
func parseSRTTiming(s string) (Timecode, Timecode, error) {
	parts := strings.SplitN(s, srtTimeSep, 2)
	if len(parts) != 2 {
		return Timecode{}, Timecode{}, fmt.Errorf("invalid timing line %q", s)
	}
	start, err := parseSRTTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return Timecode{}, Timecode{}, err
	}
	end, err := parseSRTTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return Timecode{}, Timecode{}, err
	}
	return start, end, nil
}

func parseSRTTime(s string) (Timecode, error) {
	// Some files use '.' instead of ',' before the milliseconds
	s = strings.Replace(s, ".", ",", 1)
	main, msPart, found := strings.Cut(s, ",")
	ms := 0
	if found {
		v, err := strconv.Atoi(msPart)
		if err != nil || v < 0 || v > 999 {
			return Timecode{}, fmt.Errorf("invalid milliseconds in %q", s)
		}
		ms = v
	}
	parts := strings.Split(main, ":")
	if len(parts) != 3 {
		return Timecode{}, fmt.Errorf("invalid time %q", s)
	}
	var hms [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return Timecode{}, fmt.Errorf("invalid time %q", s)
		}
		hms[i] = v
	}
	if hms[1] > 59 || hms[2] > 59 {
		return Timecode{}, fmt.Errorf("invalid time %q", s)
	}
	return NewTimecode(((hms[0]*60+hms[1])*60+hms[2])*1000 + ms), nil
}

func formatSRTTime(t Timecode) string {
	ms := t.Milliseconds()
	h := ms / 3600000
	ms %= 3600000
	m := ms / 60000
	ms %= 60000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
