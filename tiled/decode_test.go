package tiled

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"
)

const twoTilesetMap = `{
  "width": 2, "height": 1, "tilewidth": 16, "tileheight": 16,
  "orientation": "orthogonal",
  "layers": [
    {"id": 1, "name": "ground", "type": "tilelayer", "width": 2, "height": 1, "data": [1, 7]},
    {"id": 2, "name": "things", "type": "group", "layers": [
      {"id": 3, "name": "objs", "type": "objectgroup", "objects": [
        {"id": 1, "name": "door", "type": "", "x": 0, "y": 16, "width": 16, "height": 16, "gid": 2,
         "properties": [{"name": "locked", "type": "bool", "value": true}]}
      ]}
    ]}
  ],
  "tilesets": [
    {"firstgid": 1, "name": "a", "tilewidth": 16, "tileheight": 16, "tilecount": 4, "columns": 2,
     "image": "a.png", "tiles": [{"id": 1, "type": "door"}]},
    {"firstgid": 5, "name": "b", "tilewidth": 16, "tileheight": 16, "tilecount": 9, "columns": 3,
     "margin": 1, "spacing": 2, "image": "b.png"}
  ]
}`

func TestDecodeMap(t *testing.T) {
	m, err := Decode([]byte(twoTilesetMap))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(m.Layers) != 2 || m.Layers[1].Kind() != LayerGroup {
		t.Fatalf("unexpected layer tree: %+v", m.Layers)
	}
	if got := m.Layers[0].Data; len(got) != 2 || got[1] != 7 {
		t.Fatalf("unexpected tile data %v", got)
	}

	obj := m.Layers[1].Layers[0].Objects[0]
	if got := obj.DeepType(m); got != "door" {
		t.Fatalf("expected deep type from tile definition, got %q", got)
	}
	if v, ok := obj.JSONProperties()["locked"].(bool); !ok || !v {
		t.Fatalf("expected locked=true property, got %v", obj.JSONProperties())
	}
}

func TestTilesetByGID(t *testing.T) {
	m, err := Decode([]byte(twoTilesetMap))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	tests := []struct {
		gid     uint32
		sheet   string
		rect    image.Rectangle
		missing bool
	}{
		{gid: 1, sheet: "a.png", rect: image.Rect(0, 0, 16, 16)},
		{gid: 4, sheet: "a.png", rect: image.Rect(16, 16, 32, 32)},
		{gid: 5, sheet: "b.png", rect: image.Rect(1, 1, 17, 17)},
		{gid: 7, sheet: "b.png", rect: image.Rect(37, 1, 53, 17)},
		{gid: 8, sheet: "b.png", rect: image.Rect(1, 19, 17, 35)},
		{gid: 14, missing: true},
		{gid: 0, missing: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("gid_%d", tt.gid), func(t *testing.T) {
			ts, ok := m.TilesetByGID(tt.gid)
			if tt.missing {
				if ok {
					t.Fatalf("expected no tileset, got %s", ts.Name)
				}
				return
			}
			if !ok || ts.Image != tt.sheet {
				t.Fatalf("expected tileset %s, got %+v ok=%v", tt.sheet, ts, ok)
			}
			rect, ok := ts.AABB(tt.gid)
			if !ok || rect != tt.rect {
				t.Fatalf("expected rect %v, got %v ok=%v", tt.rect, rect, ok)
			}
		})
	}
}

func TestDecodeTileEncodings(t *testing.T) {
	tests := []struct {
		name        string
		encoding    string
		compression string
		data        string
	}{
		{"csv", "csv", "", `[1, 2147483650]`},
		{"base64", "base64", "", `"AQAAAAIAAIA="`},
		{"base64_zlib", "base64", "zlib", `"eJxjZGBgYGJgaAAAAJgAhA=="`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fmt.Sprintf(`{"width":2,"height":1,"tilewidth":8,"tileheight":8,
				"layers":[{"name":"l","type":"tilelayer","encoding":%q,"compression":%q,"data":%s}],
				"tilesets":[]}`, tt.encoding, tt.compression, tt.data)
			m, err := Decode([]byte(src))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			tiles := m.Layers[0].Tiles()
			if len(tiles) != 2 {
				t.Fatalf("expected 2 tiles, got %d", len(tiles))
			}
			if tiles[0].ID != 1 || tiles[1].ID != 2 || !tiles[1].FlippedHorizontally {
				t.Fatalf("unexpected tiles %+v", tiles)
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"infinite", `{"width":1,"height":1,"tilewidth":8,"tileheight":8,"infinite":true}`, ErrInfiniteMap},
		{"zero_width", `{"width":0,"height":1,"tilewidth":8,"tileheight":8}`, ErrInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.src)); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadResolvesExternalTilesets(t *testing.T) {
	files := map[string]string{
		"maps/level.json": `{"width":1,"height":1,"tilewidth":8,"tileheight":8,
			"layers":[{"name":"l","type":"tilelayer","data":[3]}],
			"tilesets":[{"firstgid":3,"source":"../sheets/ext.json"}]}`,
		"sheets/ext.json": `{"name":"ext","tilewidth":8,"tileheight":8,"tilecount":2,"columns":2,"image":"ext.png"}`,
	}
	fetch := func(_ context.Context, p string) ([]byte, error) {
		data, ok := files[p]
		if !ok {
			return nil, fmt.Errorf("no file %s", p)
		}
		return []byte(data), nil
	}

	m, err := Load(context.Background(), "maps/level.json", fetch)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	ts, ok := m.TilesetByGID(3)
	if !ok || ts.Name != "ext" || ts.FirstGID != 3 {
		t.Fatalf("expected resolved tileset ext at firstgid 3, got %+v ok=%v", ts, ok)
	}

	files["maps/tsx.json"] = `{"width":1,"height":1,"tilewidth":8,"tileheight":8,
		"tilesets":[{"firstgid":1,"source":"x.tsx"}]}`
	if _, err := Load(context.Background(), "maps/tsx.json", fetch); !errors.Is(err, ErrUnsupportedTSX) {
		t.Fatalf("expected ErrUnsupportedTSX, got %v", err)
	}
}
