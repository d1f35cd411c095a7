package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, ArtifactOrders, KindOf("data/raw/orders/pos_3_2024-01-01.json"))
	assert.Equal(t, ArtifactStock, KindOf("data/raw/stock/wh_1_2024-01-01.csv"))
	assert.Equal(t, ArtifactKind(""), KindOf("notes.txt"))
}
