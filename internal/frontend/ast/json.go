package ast

import (
	"io"

	"csema/internal/source"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type wireLoc struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	EndLine int    `json:"end_line,omitempty"`
	EndCol  int    `json:"end_col,omitempty"`
}

// wireNode is the interchange form of a Node. The annotation fields are only
// written by Encode with annotated set, and ignored by Decode.
type wireNode struct {
	Tag   Tag         `json:"tag"`
	Text  string      `json:"text,omitempty"`
	Loc   *wireLoc    `json:"loc,omitempty"`
	Kids  []*wireNode `json:"kids,omitempty"`
	Type  string      `json:"type,omitempty"`
	Str   string      `json:"str,omitempty"`
	Value string      `json:"value,omitempty"`
}

// Decode reads one tree from r. Children without a file name inherit their
// parent's.
func Decode(r io.Reader) (*Node, error) {
	var w wireNode
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(err, "decode syntax tree")
	}
	return fromWire(&w, ""), nil
}

func fromWire(w *wireNode, file string) *Node {
	n := &Node{Tag: w.Tag, Text: w.Text}
	if w.Loc != nil {
		if w.Loc.File != "" {
			file = w.Loc.File
		}
		end := source.Position{Line: w.Loc.EndLine, Column: w.Loc.EndCol}
		if end.Line == 0 {
			end = source.Position{Line: w.Loc.Line, Column: w.Loc.Col}
		}
		n.Location = source.NewLocation(file, source.Position{Line: w.Loc.Line, Column: w.Loc.Col}, end)
	} else {
		n.Location = source.Location{Filename: file}
	}
	if len(w.Kids) > 0 {
		n.Kids = make([]*Node, len(w.Kids))
		for i, k := range w.Kids {
			if k == nil {
				k = &wireNode{Tag: Empty}
			}
			n.Kids[i] = fromWire(k, file)
		}
	}
	return n
}

// Encode writes the tree rooted at n to w as indented JSON. With annotated
// set, the analysis results (type, bound name, value category) are included.
func Encode(w io.Writer, n *Node, annotated bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(toWire(n, "", annotated)), "encode syntax tree")
}

func toWire(n *Node, file string, annotated bool) *wireNode {
	w := &wireNode{Tag: n.Tag, Text: n.Text}
	if n.IsKnown() || n.Filename != file {
		w.Loc = &wireLoc{Line: n.Start.Line, Col: n.Start.Column}
		if n.End != n.Start {
			w.Loc.EndLine, w.Loc.EndCol = n.End.Line, n.End.Column
		}
		if n.Filename != file {
			w.Loc.File = n.Filename
		}
	}
	if annotated {
		if n.Type != nil {
			w.Type = n.Type.String()
			w.Value = n.Value.String()
		}
		w.Str = n.Str
	}
	for _, k := range n.Kids {
		w.Kids = append(w.Kids, toWire(k, n.Filename, annotated))
	}
	return w
}
