package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of scene statistics.
func (s *SimpleScene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Count"})
	table.Append([]string{"Materials", fmt.Sprintf("%d", len(s.materials))})
	table.Append([]string{"Primitive instances", fmt.Sprintf("%d", len(s.instances))})
	table.Render()
	return buf.String()
}

// Build a tabular representation of scene and BVH statistics.
func (s *BvhScene) Stats() string {
	nodes, leafs, maxDepth := s.root.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Count"})
	table.Append([]string{"Materials", fmt.Sprintf("%d", len(s.materials))})
	table.Append([]string{"Primitive instances", fmt.Sprintf("%d", len(s.instances))})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d", nodes)})
	table.Append([]string{"BVH leafs", fmt.Sprintf("%d", leafs)})
	table.Append([]string{"BVH depth", fmt.Sprintf("%d", maxDepth)})
	table.Render()
	return buf.String()
}
