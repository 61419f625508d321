package guardedgraph

import (
	"encoding/json"
	"fmt"
)

// The JSON wire format for a Graph mirrors the in-memory shape almost
// directly: {"function", "nodes", "output"} — see SPEC_FULL.md §6.1.
// No "edges" key is written; one present in an input document is
// ignored like any other unknown key. encoding/json is used rather than a pack streaming-JSON library
// because this format is deliberately tolerant (unknown keys ignored,
// absent numeric attributes default to zero, an unrecognized node
// "kind" string is accepted by the parser and only rejected lazily at
// EvalGraph time) and struct-tag-driven marshal/unmarshal is exactly
// what encoding/json gives for free; no library in the example pack
// offers that symmetric behavior more directly.

type nodeWire struct {
	ID    int    `json:"id"`
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	Field int    `json:"field,omitempty"`
	Value int64  `json:"value,omitempty"`
	Cond  int    `json:"cond,omitempty"`
	Then  int    `json:"then,omitempty"`
	Else  int    `json:"else,omitempty"`
}

type graphWire struct {
	Function string     `json:"function"`
	Nodes    []nodeWire `json:"nodes"`
	Output   int        `json:"output"`
}

// MarshalJSON renders the graph as a dense, id-sorted node list.
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := graphWire{Function: g.Function, Output: g.Output}
	for id := 1; id <= g.NumNodes(); id++ {
		n, ok := g.Nodes[id]
		if !ok {
			continue
		}
		w.Nodes = append(w.Nodes, nodeWire{
			ID: n.ID, Kind: string(n.Kind), Name: n.Name,
			X: n.X, Y: n.Y, Field: n.Field, Value: n.Value,
			Cond: n.Cond, Then: n.Then, Else: n.Else,
		})
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts any node "kind" string, including ones unknown
// to this version of the evaluator — validity of kind is checked only
// when the graph is actually run.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w graphWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Nodes == nil && w.Function == "" && w.Output == 0 {
		return fmt.Errorf("graph: empty document")
	}
	g.Function = w.Function
	g.Output = w.Output
	g.Nodes = make(map[int]*Node, len(w.Nodes))
	for _, nw := range w.Nodes {
		g.Nodes[nw.ID] = &Node{
			ID: nw.ID, Kind: NodeKind(nw.Kind), Name: nw.Name,
			X: nw.X, Y: nw.Y, Field: nw.Field, Value: nw.Value,
			Cond: nw.Cond, Then: nw.Then, Else: nw.Else,
		}
	}
	return nil
}
