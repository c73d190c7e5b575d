package metadata

import (
	"strings"

	"github.com/simonhull/wavesurfer/internal/container"
	"github.com/simonhull/wavesurfer/internal/types"
)

// Crawl walks the hierarchy under g and returns it as a nested map
// keyed by normalized field names. Segment payloads, the "analogScans"
// datasets and the legacy flat trial datasets, are left out of the map
// so traces load lazily on access. Objects that are neither groups nor
// datasets are skipped.
func Crawl(g container.Group) (types.Map, error) {
	nodes, err := g.Children()
	if err != nil {
		return nil, err
	}

	result := make(types.Map, len(nodes))
	for _, node := range nodes {
		switch node.Kind {
		case container.KindGroup:
			field, err := FieldName(node.Name)
			if err != nil {
				return nil, err
			}
			child, err := Crawl(node.Group)
			if err != nil {
				return nil, err
			}
			result[field] = child
		case container.KindDataset:
			field, err := FieldName(node.Name)
			if err != nil {
				return nil, err
			}
			if node.Name == "analogScans" || strings.HasPrefix(node.Name, "trial") {
				continue
			}
			v, err := node.Dataset.Read()
			if err != nil {
				return nil, err
			}
			result[field] = v
		}
	}
	return result, nil
}
