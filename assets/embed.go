package assets

import (
	"embed"
	"io/fs"
)

//go:embed maps/*.json
var mapsFS embed.FS

// Embedded serves the maps bundled with the binary, rooted at maps/.
func Embedded() FSFetcher {
	sub, err := fs.Sub(mapsFS, "maps")
	if err != nil {
		panic(err)
	}
	return FSFetcher{FS: sub}
}
