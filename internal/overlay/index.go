// Package overlay normalizes ePlanning overlay layers into the flat
// display strings shown in the site table.
package overlay

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/planning-cli/pkg/eplanning"
)

// ErrMissingLayerName reports a layer block without a layerName, which
// means the upstream payload is malformed rather than merely sparse.
var ErrMissingLayerName = eris.New("overlay: layer block missing layerName")

// Index maps a layer name to that layer's intersection results. Built
// once per site lookup and read-only afterward.
type Index map[string][]eplanning.Record

// BuildIndex groups overlay layer blocks by layer name. Layer names are
// not validated against a known set; unknown layers are retained and
// simply never consulted. If the same name appears twice the later
// block replaces the earlier one.
func BuildIndex(layers []eplanning.Layer) (Index, error) {
	idx := make(Index, len(layers))
	for _, layer := range layers {
		if layer.LayerName == "" {
			return nil, ErrMissingLayerName
		}
		idx[layer.LayerName] = layer.Results
	}
	return idx, nil
}
