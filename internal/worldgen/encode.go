package worldgen

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
)

// WriteImage encodes an image to disk, picking the codec from the file
// extension. Province ID buffers must stay lossless, so webp output is
// always lossless here.
func WriteImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		err = webp.Encode(f, img, &webp.Options{Lossless: true})
	case ".png":
		err = png.Encode(f, img)
	default:
		err = fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	log.Debug().Str("path", path).Msg("Image written")
	return nil
}
