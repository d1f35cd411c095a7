package model

import "path/filepath"

type ArtifactKind string

const (
	ArtifactOrders ArtifactKind = "orders"
	ArtifactStock  ArtifactKind = "stock"
)

// KindOf tells an artifact's kind from its file extension. Unknown
// extensions yield "".
func KindOf(path string) ArtifactKind {
	switch filepath.Ext(path) {
	case ".json":
		return ArtifactOrders
	case ".csv":
		return ArtifactStock
	}
	return ""
}

// ArtifactEvent is broadcast to websocket clients after an artifact is persisted.
type ArtifactEvent struct {
	Type  string       `json:"type"` // always "artifact_written"
	Kind  ArtifactKind `json:"kind"`
	Path  string       `json:"path"`
	Bytes int          `json:"bytes"`
}
