package io

import (
	"github.com/matzehuels/tocview/pkg/toc"
)

// diagram is the on-disk shape shared by every encoding.
type diagram struct {
	Columns []column `json:"columns" yaml:"columns" toml:"columns"`
}

type column struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	Nodes []node `json:"nodes" yaml:"nodes" toml:"nodes"`
}

type node struct {
	ID            string   `json:"id" yaml:"id" toml:"id"`
	Title         string   `json:"title" yaml:"title" toml:"title"`
	Text          string   `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	ConnectionIDs []string `json:"connectionIds" yaml:"connectionIds" toml:"connectionIds"`
}

func fromData(d toc.Data) diagram {
	out := diagram{Columns: make([]column, len(d.Columns))}
	for i, c := range d.Columns {
		nodes := make([]node, len(c.Nodes))
		for j, n := range c.Nodes {
			ids := make([]string, len(n.ConnectionIDs))
			copy(ids, n.ConnectionIDs)
			nodes[j] = node{ID: n.ID, Title: n.Title, Text: n.Text, ConnectionIDs: ids}
		}
		out.Columns[i] = column{Title: c.Title, Nodes: nodes}
	}
	return out
}

func (d diagram) toData() toc.Data {
	out := toc.Data{Columns: make([]toc.Column, len(d.Columns))}
	for i, c := range d.Columns {
		nodes := make([]toc.Node, len(c.Nodes))
		for j, n := range c.Nodes {
			nodes[j] = toc.Node{ID: n.ID, Title: n.Title, Text: n.Text, ConnectionIDs: n.ConnectionIDs}
		}
		out.Columns[i] = toc.Column{Title: c.Title, Nodes: nodes}
	}
	return out
}
