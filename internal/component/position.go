package component

// Position is an entity's location: tile coordinates plus a sub-tile pixel
// offset. Only movement resolution writes it; everything else reads.
type Position struct {
	TileX   int     `json:"tile_x"`
	TileY   int     `json:"tile_y"`
	OffsetX float64 `json:"offset_x"` // pixels within the tile
	OffsetY float64 `json:"offset_y"`
}
