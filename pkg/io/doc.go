// Package io reads and writes theory of change diagrams.
//
// # Overview
//
// A diagram is stored as an ordered list of columns, each holding an ordered
// list of nodes. Three encodings carry the same shape:
//
//   - JSON: the format used by the web front end and the HTTP API
//   - YAML: convenient for hand-written diagrams
//   - TOML: for diagrams kept next to a tocview config file
//
// # JSON Format
//
//	{
//	  "columns": [
//	    {
//	      "title": "Inputs",
//	      "nodes": [
//	        {"id": "funding", "title": "Funding", "text": "", "connectionIds": ["training"]}
//	      ]
//	    },
//	    {
//	      "title": "Outputs",
//	      "nodes": [
//	        {"id": "training", "title": "Training delivered", "connectionIds": []}
//	      ]
//	    }
//	  ]
//	}
//
// The YAML and TOML encodings use the same keys (columns, title, nodes, id,
// text, connectionIds).
//
// # Import
//
// Use [Import] to load a diagram from a path, choosing the format from the
// file extension, or [Read] to decode from any io.Reader:
//
//	g, err := io.Import("diagram.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decode failures are reported with the INVALID_FORMAT code and malformed
// diagrams (empty or duplicate node IDs) with INVALID_GRAPH. Connection IDs
// that point at unknown nodes are not an error; they are kept in the data
// and surfaced by [toc.Graph.Dangling].
//
// # Export
//
// [Write] and [Export] encode a [toc.Data] value. Converting between formats
// is an import followed by an export:
//
//	g, _ := io.Import("diagram.json")
//	_ = io.Export(g.Data(), "diagram.toml")
//
// All functions are safe for concurrent use.
package io
