package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tocview/pkg/toc"
)

func press(m ExplorerModel, keys ...string) ExplorerModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(ExplorerModel)
	}
	return m
}

func TestExplorerNavigation(t *testing.T) {
	m := NewExplorerModel(sampleGraph(t), "", nil)
	if m.Current() != "advocacy" || m.State.Focus != "advocacy" {
		t.Fatalf("start = %q focus %q, want advocacy", m.Current(), m.State.Focus)
	}

	m = press(m, "down", "right")
	if m.Current() != "evidence" {
		t.Errorf("after down,right Current() = %q, want evidence", m.Current())
	}
	m = press(m, "down", "down", "down")
	if m.Current() != "lonely" {
		t.Errorf("cursor should stop at the last row, got %q", m.Current())
	}
	m = press(m, "right")
	if m.Current() != "outcome" {
		t.Errorf("row should clamp in a shorter column, got %q", m.Current())
	}
	m = press(m, "l", "l")
	if m.Current() != "outcome" {
		t.Errorf("cursor should stop at the last column, got %q", m.Current())
	}
	if m.State.Focus != "outcome" {
		t.Errorf("focus should follow the cursor, got %q", m.State.Focus)
	}
}

func TestExplorerPinAndClear(t *testing.T) {
	m := NewExplorerModel(sampleGraph(t), "", []string{"outcome"})
	if !m.State.Highlighted("outcome") {
		t.Fatal("initial seed not pinned")
	}

	m = press(m, " ")
	if !m.State.Highlighted("advocacy") {
		t.Error("space should pin the node under the cursor")
	}
	m = press(m, " ")
	if m.State.Highlighted("advocacy") {
		t.Error("second space should unpin")
	}
	m = press(m, "c")
	if m.State.HasSeeds() {
		t.Error("c should clear all pins")
	}
}

func TestExplorerExpand(t *testing.T) {
	m := NewExplorerModel(sampleGraph(t), "", nil)
	m = press(m, "down", "e")
	if !m.Expanded.Has("research") {
		t.Fatal("e should expand the node under the cursor")
	}
	if !strings.Contains(m.View(), "Field studies") {
		t.Error("expanded node should show its detail text")
	}
	m = press(m, "e")
	if m.Expanded.Has("research") {
		t.Error("second e should collapse")
	}
}

func TestExplorerSkipsEmptyColumns(t *testing.T) {
	g, err := toc.New(toc.Data{Columns: []toc.Column{
		{Title: "Empty"},
		{Title: "A", Nodes: []toc.Node{{ID: "a"}}},
		{Title: "Also empty"},
		{Title: "B", Nodes: []toc.Node{{ID: "b"}}},
	}})
	if err != nil {
		t.Fatal(err)
	}

	m := NewExplorerModel(g, "", nil)
	if m.Current() != "a" {
		t.Fatalf("cursor should start in the first non-empty column, got %q", m.Current())
	}
	if m = press(m, "right"); m.Current() != "b" {
		t.Errorf("right should skip the empty column, got %q", m.Current())
	}
	if m = press(m, "left", "left"); m.Current() != "a" {
		t.Errorf("left should stop at the first non-empty column, got %q", m.Current())
	}
}

func TestExplorerEmptyDiagram(t *testing.T) {
	g, err := toc.New(toc.Data{})
	if err != nil {
		t.Fatal(err)
	}
	m := press(NewExplorerModel(g, "", nil), "right", " ", "e")
	if m.Current() != "" || m.State.HasSeeds() {
		t.Errorf("empty diagram should ignore keys, got %+v", m.State)
	}
	if !strings.Contains(m.View(), "empty diagram") {
		t.Error("empty diagram not reported")
	}
}
