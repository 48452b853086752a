package vis

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of the loaded scene and its BVH trees.
func (vc *VisCheck) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Mesh", "Triangles", "BVH Nodes", "BVH Leafs", "Max Depth"})

	var totalTris, totalNodes, totalLeafs, maxDepth int
	for i, root := range vc.bvhNodes {
		st := root.Stats()
		table.Append([]string{
			strconv.Itoa(i),
			strconv.Itoa(len(vc.meshes[i])),
			strconv.Itoa(st.Nodes),
			strconv.Itoa(st.Leafs),
			strconv.Itoa(st.MaxDepth),
		})
		totalTris += len(vc.meshes[i])
		totalNodes += st.Nodes
		totalLeafs += st.Leafs
		if st.MaxDepth > maxDepth {
			maxDepth = st.MaxDepth
		}
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d meshes", len(vc.meshes)),
		strconv.Itoa(totalTris),
		strconv.Itoa(totalNodes),
		strconv.Itoa(totalLeafs),
		strconv.Itoa(maxDepth),
	})

	table.Render()
	return buf.String()
}
