package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVTable(t *testing.T) {
	data := []byte("Date,Flight Code,STD\n02JAN2026,BA123,08:00\n02JAN2026,BA900,10:00\n")

	headers, rows, err := parseCSVTable(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Flight Code", "STD"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"02JAN2026", "BA123", "08:00"}, rows[0])
}

func TestParseCSVTable_RaggedRows(t *testing.T) {
	data := []byte("Date,Flight Code,STD\n02JAN2026,BA123\n")

	headers, rows, err := parseCSVTable(data)
	require.NoError(t, err)
	assert.Len(t, headers, 3)
	require.Len(t, rows, 1)
	// Short rows come through as-is; the parser downstream pads them.
	assert.Len(t, rows[0], 2)
}

func TestParseCSVTable_Empty(t *testing.T) {
	headers, rows, err := parseCSVTable([]byte(""))
	require.NoError(t, err)
	assert.Nil(t, headers)
	assert.Nil(t, rows)
}

func TestExtractHTMLTable(t *testing.T) {
	body := `<html><body><p>Schedule below</p>
<table border="1">
<tr><th>Date</th><th>Flight Code</th><th>STD</th></tr>
<tr><td>02JAN2026</td><td>BA123</td><td>08:00</td></tr>
<tr><td>02JAN2026</td><td><b>BA900</b></td><td>&nbsp;10:00</td></tr>
</table></body></html>`

	headers, rows := extractHTMLTable(body)
	assert.Equal(t, []string{"Date", "Flight Code", "STD"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"02JAN2026", "BA123", "08:00"}, rows[0])
	// Nested tags and entities are stripped from cells.
	assert.Equal(t, "BA900", rows[1][1])
	assert.Equal(t, "10:00", rows[1][2])
}

func TestExtractHTMLTable_FirstTableWins(t *testing.T) {
	body := `<table><tr><th>Date</th></tr><tr><td>02JAN2026</td></tr></table>
<table><tr><th>Other</th></tr><tr><td>ignored</td></tr></table>`

	headers, rows := extractHTMLTable(body)
	assert.Equal(t, []string{"Date"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "02JAN2026", rows[0][0])
}

func TestExtractHTMLTable_NoTable(t *testing.T) {
	headers, rows := extractHTMLTable("<p>No schedule this week.</p>")
	assert.Nil(t, headers)
	assert.Nil(t, rows)
}

func TestCleanHTMLText(t *testing.T) {
	assert.Equal(t, "A & B", cleanHTMLText(" <span>A &amp; B</span>&nbsp;"))
	assert.Equal(t, "\"quoted\"", cleanHTMLText("&quot;quoted&quot;"))
	assert.Equal(t, "", cleanHTMLText("<br/>"))
}

func TestFilterPattern(t *testing.T) {
	s := &FeedService{subjectMatch: "Flight Schedule"}

	assert.True(t, s.FilterPattern("Flight Schedule 02JAN2026"))
	assert.True(t, s.FilterPattern("FW: flight schedule update"))
	assert.False(t, s.FilterPattern("Crew roster"))
}
