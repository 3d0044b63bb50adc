package files

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func ReadAsset(name string) (*models.Asset, error) {
	path, err := resourcePath(models.KindAsset, name)
	if err != nil {
		return nil, err
	}

	var asset models.Asset
	info, err := readYAML(path, "asset "+name, &asset)
	if err != nil {
		return nil, err
	}
	if asset.Name == "" {
		asset.Name = name
	}
	asset.Modified = info.ModTime()
	return &asset, nil
}

// WriteAsset stores asset metadata. A missing MIME type is guessed from
// the source file extension.
func WriteAsset(asset *models.Asset) error {
	if asset.Name == "" {
		return fmt.Errorf("asset name cannot be empty")
	}
	if asset.ID == "" {
		asset.ID = newID()
	}
	if asset.MimeType == "" && asset.Source != "" {
		asset.MimeType = mime.TypeByExtension(filepath.Ext(asset.Source))
	}
	path, err := resourcePath(models.KindAsset, asset.Name)
	if err != nil {
		return fmt.Errorf("invalid asset name: %w", err)
	}
	return writeYAML(path, "asset "+asset.Name, asset)
}

func ListAssets() ([]string, error) {
	return ListNames(models.KindAsset)
}
