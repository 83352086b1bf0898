package tiled

const (
	flippedHorizontallyFlag uint32 = 0x80000000
	flippedVerticallyFlag   uint32 = 0x40000000
	flippedDiagonallyFlag   uint32 = 0x20000000
	rotatedHexagonalFlag    uint32 = 0x10000000

	flagMask = flippedHorizontallyFlag | flippedVerticallyFlag | flippedDiagonallyFlag | rotatedHexagonalFlag
)

// GlobalTileIndex identifies a tile across every tileset of a map, along with
// the orientation flags Tiled packs into the high bits.
type GlobalTileIndex struct {
	ID                  uint32
	FlippedHorizontally bool
	FlippedVertically   bool
	FlippedDiagonally   bool
}

// ParseGID splits a raw Tiled gid into its id and flip flags.
func ParseGID(raw uint32) GlobalTileIndex {
	return GlobalTileIndex{
		ID:                  raw &^ flagMask,
		FlippedHorizontally: raw&flippedHorizontallyFlag != 0,
		FlippedVertically:   raw&flippedVerticallyFlag != 0,
		FlippedDiagonally:   raw&flippedDiagonallyFlag != 0,
	}
}

// Raw packs the index back into Tiled's encoding.
func (g GlobalTileIndex) Raw() uint32 {
	raw := g.ID
	if g.FlippedHorizontally {
		raw |= flippedHorizontallyFlag
	}
	if g.FlippedVertically {
		raw |= flippedVerticallyFlag
	}
	if g.FlippedDiagonally {
		raw |= flippedDiagonallyFlag
	}
	return raw
}

// Empty reports whether the index refers to no tile.
func (g GlobalTileIndex) Empty() bool {
	return g.ID == 0
}
