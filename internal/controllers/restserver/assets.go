package restserver

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:assets
var assetsFS embed.FS

// AssetsDirEnv names the environment variable that points the server at an
// on-disk assets directory, so templates and CSS can be edited without a
// rebuild.
const AssetsDirEnv = "BIKESHARE_ASSETS_DIR"

// GetAssets returns the assets filesystem, either from disk or embedded
func GetAssets() fs.FS {
	if dir := os.Getenv(AssetsDirEnv); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic("failed to create assets sub-filesystem: " + err.Error())
	}
	return assets
}
