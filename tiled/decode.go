package tiled

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	ErrInfiniteMap      = errors.New("tiled: infinite maps are not supported")
	ErrUnsupportedTSX   = errors.New("tiled: XML tilesets are not supported")
	ErrInvalidDimension = errors.New("tiled: invalid map dimensions")
)

// FetchFunc retrieves the raw bytes behind a map-relative path.
type FetchFunc func(ctx context.Context, path string) ([]byte, error)

// Decode parses a Tiled JSON map. External tilesets are left unresolved; see
// ResolveTilesets.
func Decode(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("tiled: unmarshal map: %w", err)
	}
	if m.Infinite {
		return nil, ErrInfiniteMap
	}
	if m.Width <= 0 || m.Height <= 0 || m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d tiles of %dx%d", ErrInvalidDimension, m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	if err := decodeLayers(m.Layers); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load fetches, decodes and resolves the map at mapPath, including any
// external tilesets referenced relative to it.
func Load(ctx context.Context, mapPath string, fetch FetchFunc) (*Map, error) {
	data, err := fetch(ctx, mapPath)
	if err != nil {
		return nil, fmt.Errorf("tiled: fetch %s: %w", mapPath, err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("tiled: decode %s: %w", mapPath, err)
	}
	if err := ResolveTilesets(ctx, m, mapPath, fetch); err != nil {
		return nil, err
	}
	return m, nil
}

// ResolveTilesets replaces every tileset reference that names an external
// source with the tileset stored there, keeping the map's firstgid.
func ResolveTilesets(ctx context.Context, m *Map, mapPath string, fetch FetchFunc) error {
	dir := path.Dir(mapPath)
	for i := range m.Tilesets {
		ref := m.Tilesets[i]
		if ref.Source == "" {
			continue
		}
		if strings.EqualFold(path.Ext(ref.Source), ".tsx") {
			return fmt.Errorf("%w: %s", ErrUnsupportedTSX, ref.Source)
		}
		src := path.Join(dir, ref.Source)
		data, err := fetch(ctx, src)
		if err != nil {
			return fmt.Errorf("tiled: fetch tileset %s: %w", src, err)
		}
		var ts Tileset
		if err := json.Unmarshal(data, &ts); err != nil {
			return fmt.Errorf("tiled: unmarshal tileset %s: %w", src, err)
		}
		ts.FirstGID = ref.FirstGID
		ts.Source = ref.Source
		m.Tilesets[i] = ts
	}
	return nil
}

func decodeLayers(layers []Layer) error {
	for i := range layers {
		l := &layers[i]
		switch l.Kind() {
		case LayerTiles:
			data, err := decodeTileData(l)
			if err != nil {
				return fmt.Errorf("tiled: layer %q: %w", l.Name, err)
			}
			l.Data = data
		case LayerGroup:
			if err := decodeLayers(l.Layers); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeTileData(l *Layer) ([]uint32, error) {
	if len(l.RawData) == 0 {
		return nil, nil
	}
	switch l.Encoding {
	case "", "csv":
		var data []uint32
		if err := json.Unmarshal(l.RawData, &data); err != nil {
			return nil, fmt.Errorf("unmarshal data: %w", err)
		}
		return data, nil
	case "base64":
		var encoded string
		if err := json.Unmarshal(l.RawData, &encoded); err != nil {
			return nil, fmt.Errorf("unmarshal data: %w", err)
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return nil, fmt.Errorf("base64: %w", err)
		}
		raw, err = decompress(l.Compression, raw)
		if err != nil {
			return nil, err
		}
		if len(raw)%4 != 0 {
			return nil, fmt.Errorf("tile data length %d is not a multiple of 4", len(raw))
		}
		data := make([]uint32, len(raw)/4)
		for i := range data {
			data[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", l.Encoding)
	}
}

func decompress(method string, raw []byte) ([]byte, error) {
	var r io.ReadCloser
	var err error
	switch method {
	case "":
		return raw, nil
	case "zlib":
		r, err = zlib.NewReader(bytes.NewReader(raw))
	case "gzip":
		r, err = gzip.NewReader(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("unsupported compression %q", method)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}
