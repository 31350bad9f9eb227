package huff

import (
	"fmt"
	"io"
	"strings"
)

// PrintTree writes root to w sideways, one node per line, each edge labelled
// with its bit.
//
//	* (5)
//	├─0─ * (2)
//	│    ├─0─ 'b' (1)
//	│    └─1─ EOF (1)
//	└─1─ 'a' (3)
func PrintTree(w io.Writer, root Node) error {
	var sb strings.Builder
	writeTree(&sb, root, "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTree(sb *strings.Builder, n Node, lead, indent string) {
	sb.WriteString(lead)
	switch n := n.(type) {
	case *Leaf:
		fmt.Fprintf(sb, "%v (%d)\n", n.Symbol, n.Count)
	case *Internal:
		fmt.Fprintf(sb, "* (%d)\n", n.Count)
		writeTree(sb, n.Left, indent+"├─0─ ", indent+"│    ")
		writeTree(sb, n.Right, indent+"└─1─ ", indent+"     ")
	}
}

func logWeights(cfg Config, w *Weights) {
	for s, c := range w {
		if c > 0 {
			cfg.Logger.Infof("weight %v = %d", Symbol(s), c)
		}
	}
}

func logCodes(cfg Config, t *CodeTable) {
	for s, c := range t {
		if c != "" {
			cfg.Logger.Infof("code %v = %s", Symbol(s), c)
		}
	}
}

func logTree(cfg Config, root Node) {
	var sb strings.Builder
	writeTree(&sb, root, "", "")
	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		cfg.Logger.Infof("tree %s", line)
	}
}
