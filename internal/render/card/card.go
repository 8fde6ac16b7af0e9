// Package card draws a PNG status card for a fight: one panel per combatant
// with health and stamina bars, and the latest result underneath.
package card

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
)

// Card dimensions at scale 1
const (
	Width  = 480
	Height = 200

	MinScale = 0.5
	MaxScale = 3.0
)

const (
	panelPad  = 12.0
	panelW    = (Width - 3*panelPad) / 2
	panelH    = 140.0
	barH      = 14.0
	maxResult = 64
)

var (
	bgColor      = color.RGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}
	panelColor   = color.RGBA{R: 0xEC, G: 0xF0, B: 0xF1, A: 0xFF}
	textColor    = color.RGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}
	healthColor  = color.RGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}
	staminaColor = color.RGBA{R: 0xF3, G: 0x9C, B: 0x12, A: 0xFF}
	emptyColor   = color.RGBA{R: 0xBD, G: 0xC3, B: 0xC7, A: 0xFF}
	resultColor  = color.White
)

// Render draws the card. The result is clipped to a single line.
func Render(player, opponent combat.Snapshot, result string) image.Image {
	loadFonts()
	fc := faces{
		title: newFace(boldFont, 16),
		body:  newFace(regularFont, 12),
	}

	dc := gg.NewContext(Width, Height)
	dc.SetColor(bgColor)
	dc.Clear()

	drawPanel(dc, fc, panelPad, panelPad, player)
	drawPanel(dc, fc, 2*panelPad+panelW, panelPad, opponent)

	dc.SetFontFace(fc.title)
	dc.SetColor(resultColor)
	dc.DrawStringAnchored(clip(result), Width/2, panelPad+panelH+(Height-panelH-panelPad)/2, 0.5, 0.5)

	return dc.Image()
}

// Scale resizes the card by factor, clamped to [MinScale, MaxScale].
// NaN leaves the card at its natural size.
func Scale(img image.Image, factor float64) image.Image {
	if math.IsNaN(factor) {
		return img
	}
	factor = math.Max(MinScale, math.Min(MaxScale, factor))
	if factor == 1 {
		return img
	}

	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	return imaging.Resize(img, w, 0, imaging.Lanczos)
}

// Encode writes img as PNG
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

type faces struct {
	title font.Face
	body  font.Face
}

func drawPanel(dc *gg.Context, f faces, x, y float64, snap combat.Snapshot) {
	dc.SetColor(panelColor)
	dc.DrawRoundedRectangle(x, y, panelW, panelH, 8)
	dc.Fill()

	dc.SetColor(textColor)
	dc.SetFontFace(f.title)
	dc.DrawString(snap.Name, x+10, y+22)
	dc.SetFontFace(f.body)
	dc.DrawString(fmt.Sprintf("%s / %s / %s", snap.ClassName, snap.WeaponName, snap.ArmorName), x+10, y+42)

	drawBar(dc, x+10, y+58, snap.Health, snap.MaxHealth, healthColor)
	dc.SetColor(textColor)
	dc.DrawString(fmt.Sprintf("HP %.1f / %.0f", snap.Health, snap.MaxHealth), x+10, y+88)

	drawBar(dc, x+10, y+96, snap.Stamina, snap.MaxStamina, staminaColor)
	dc.SetColor(textColor)
	dc.DrawString(fmt.Sprintf("ST %.1f / %.0f", snap.Stamina, snap.MaxStamina), x+10, y+126)

	if snap.SkillUsed {
		dc.DrawStringAnchored("skill used", x+panelW-10, y+22, 1, 0)
	}
}

func drawBar(dc *gg.Context, x, y, current, maxValue float64, fill color.Color) {
	w := panelW - 20

	dc.SetColor(emptyColor)
	dc.DrawRectangle(x, y, w, barH)
	dc.Fill()

	if maxValue <= 0 {
		return
	}
	ratio := math.Max(0, math.Min(1, current/maxValue))
	if ratio == 0 {
		return
	}

	dc.SetColor(fill)
	dc.DrawRectangle(x, y, w*ratio, barH)
	dc.Fill()
}

func clip(result string) string {
	for i, r := range result {
		if r == '\n' {
			result = result[:i]
			break
		}
	}

	runes := []rune(result)
	if len(runes) > maxResult {
		return string(runes[:maxResult-3]) + "..."
	}
	return result
}
