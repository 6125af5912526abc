// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gedforge/gedforge/pkg/structure"
)

const (
	treeFormatYAML = "yaml"
	treeFormatJSON = "json"
)

// treeNode is the serialized form of one structure.
type treeNode struct {
	Tag      string     `json:"tag" yaml:"tag"`
	Key      string     `json:"key" yaml:"key"`
	Xref     string     `json:"xref,omitempty" yaml:"xref,omitempty"`
	Payload  string     `json:"payload,omitempty" yaml:"payload,omitempty"`
	Children []treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func newTreeCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tree <file.ged>",
		Short: "Dump the parsed structure tree as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != treeFormatYAML && format != treeFormatJSON {
				return fmt.Errorf("unsupported format %q (valid: yaml, json)", format)
			}

			g, err := app.loadDocument(args[0])
			if err != nil {
				return err
			}

			roots := g.Records()
			if h := g.Header(); h != nil {
				roots = append([]*structure.Node{h}, roots...)
			}
			nodes := make([]treeNode, len(roots))
			for i, r := range roots {
				nodes[i] = toTreeNode(r)
			}

			return writeTree(cmd.OutOrStdout(), format, nodes)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", treeFormatYAML, "output format (yaml, json)")

	return cmd
}

func toTreeNode(n *structure.Node) treeNode {
	out := treeNode{Tag: n.Tag(), Key: n.Key(), Payload: n.Text()}
	if id := n.ID(); !id.IsZero() {
		out.Xref = id.Fullname()
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, toTreeNode(c))
	}
	return out
}

func writeTree(w io.Writer, format string, nodes []treeNode) error {
	if format == treeFormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(nodes)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nodes); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	return enc.Close()
}
