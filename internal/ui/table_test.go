package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueBlockContainsTitleAndPairs(t *testing.T) {
	result := KeyValueBlock("Status", [][2]string{
		{"Network", "Sepolia"},
		{"Count", "42"},
	})
	assert.Contains(t, result, "Status")
	assert.Contains(t, result, "Network")
	assert.Contains(t, result, "Sepolia")
	assert.Contains(t, result, "42")
}

func TestKeyValueBlockPreservesOrder(t *testing.T) {
	result := KeyValueBlock("Config", [][2]string{
		{"First", "AAA"},
		{"Second", "BBB"},
		{"Third", "CCC"},
	})
	first, second, third := strings.Index(result, "First"), strings.Index(result, "Second"), strings.Index(result, "Third")
	require.Greater(t, first, -1)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestKeyValueBlockHasBorder(t *testing.T) {
	result := KeyValueBlock("", [][2]string{{"Key", "Val"}})
	// lipgloss RoundedBorder uses ╭ and ╰ for corners.
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestTableRender(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "#", Width: 3},
		{Title: "Message", Width: 10},
	})
	tbl.AddRow(Row{"2", "gm"})
	tbl.AddRow(Row{"1", "a message that is too long"})
	tbl.AddRow(Row{"0"}) // short row

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Message")
	assert.Contains(t, lines[1], "───")
	assert.Contains(t, lines[2], "gm")
	assert.Contains(t, lines[3], "a message…")
	assert.NotContains(t, out, "too long")
}

func TestFitCell(t *testing.T) {
	assert.Equal(t, "hi        ", fitCell("hi", 10))
	assert.Equal(t, "hello", fitCell("hello", 5))
	assert.Equal(t, "toolo…", fitCell("toolongstring", 6))
	assert.Equal(t, "    ", fitCell("", 4))
	assert.Equal(t, "x", fitCell("x", 0))
	assert.Equal(t, "héllo ", fitCell("héllo", 6))
}
