package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSRT = `1
00:00:01,500 --> 00:00:03,000
Hello there.

2
00:00:04,000 --> 00:00:06,250
Two lines
of dialogue.

3
00:01:00,000 --> 00:01:02,000
Last cue.
`

func TestParseSRT(t *testing.T) {
	doc, err := ParseSRT(strings.NewReader(sampleSRT))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Len())
	require.False(t, doc.Dirty(), "freshly parsed document is clean")

	ids := doc.Lines()
	first := doc.Line(ids[0])
	require.Equal(t, 1500, first.Start.Milliseconds())
	require.Equal(t, 3000, first.End.Milliseconds())
	require.Equal(t, "Hello there.", first.Text)

	second := doc.Line(ids[1])
	require.Equal(t, "Two lines\\Nof dialogue.", second.Text, "multi-line cues join with \\N")
}

func TestParseSRTToleratesCRLFAndBOM(t *testing.T) {
	data := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nhi\r\n\r\n2\r\n00:00:03.000 --> 00:00:04.000\r\ndotted millis\r\n"
	doc, err := ParseSRT(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, doc.Len())

	ids := doc.Lines()
	require.Equal(t, 3000, doc.Line(ids[1]).Start.Milliseconds())
}

func TestParseSRTRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage cue number", "one\n00:00:01,000 --> 00:00:02,000\nhi\n"},
		{"missing timing line", "1\n"},
		{"bad timing separator", "1\n00:00:01,000 -> 00:00:02,000\nhi\n"},
		{"bad timestamp", "1\n00:00:xx,000 --> 00:00:02,000\nhi\n"},
		{"minutes out of range", "1\n00:75:01,000 --> 00:00:02,000\nhi\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSRT(strings.NewReader(tc.data))
			require.Error(t, err)
		})
	}
}

func TestWriteSRT(t *testing.T) {
	doc := NewDocument()
	doc.Append(Line{Start: NewTimecode(1500), End: NewTimecode(3000), Text: "Hello there."})
	doc.Append(Line{Start: NewTimecode(4000), End: NewTimecode(6250), Text: "Two lines\\Nof dialogue.", Comment: true})
	doc.Append(Line{Start: NewTimecode(60000), End: NewTimecode(62000), Text: "Last cue."})

	var sb strings.Builder
	require.NoError(t, WriteSRT(&sb, doc))

	out := sb.String()
	require.Contains(t, out, "00:00:01,500 --> 00:00:03,000")
	require.NotContains(t, out, "Two lines", "comment lines are skipped on export")
	require.True(t, strings.HasPrefix(out, "1\n"), "cues are renumbered from 1")
	require.Contains(t, out, "\n2\n00:01:00,000 --> 00:01:02,000\nLast cue.\n")
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.srt")
	require.NoError(t, os.WriteFile(path, []byte(sampleSRT), 0644))

	doc, err := LoadSRT(path)
	require.NoError(t, err)
	require.Equal(t, path, doc.Path())

	ids := doc.Lines()
	doc.Line(ids[0]).Text = "Edited."
	doc.MarkDirty()
	require.NoError(t, SaveSRT(doc))
	require.False(t, doc.Dirty())

	again, err := LoadSRT(path)
	require.NoError(t, err)
	require.Equal(t, "Edited.", again.Line(again.Lines()[0]).Text)
}

func TestSaveSRTWithoutPath(t *testing.T) {
	require.Error(t, SaveSRT(NewDocument()))
}

func TestLoadSRTMissingFile(t *testing.T) {
	_, err := LoadSRT(filepath.Join(t.TempDir(), "nope.srt"))
	require.Error(t, err)
}
