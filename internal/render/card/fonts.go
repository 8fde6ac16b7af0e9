package card

import (
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Parsed fonts are shared; faces are not safe for concurrent use and are
// created per render.
var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func loadFonts() {
	fontsOnce.Do(func() {
		var err error
		if regularFont, err = opentype.Parse(goregular.TTF); err != nil {
			slog.Warn("Failed to parse regular card font", "error", err)
		}
		if boldFont, err = opentype.Parse(gobold.TTF); err != nil {
			slog.Warn("Failed to parse bold card font", "error", err)
		}
	})
}

// newFace falls back to the fixed 7x13 bitmap face when the font is unusable
func newFace(f *opentype.Font, size float64) font.Face {
	if f == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
