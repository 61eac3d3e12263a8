// Package render turns a board into a PNG. Squares come from the theme,
// pieces are drawn as team-colored discs carrying their kind letter and
// highlights as translucent circle markers, both rasterized from
// embedded SVG assets.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/park285/chessboard/internal/board"
	"github.com/park285/chessboard/internal/theme"
)

//go:embed assets/*.svg
var assetFiles embed.FS

type assetKey struct {
	name string
	size int
	fill color.RGBA
	edge color.RGBA
}

type Renderer struct {
	theme *theme.Theme

	cacheMu sync.RWMutex
	cache   map[assetKey]image.Image
}

func New(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{theme: th, cache: make(map[assetKey]image.Image)}
}

// RenderPNG draws the whole board, bottom row at the bottom, and encodes
// it as PNG.
func (r *Renderer) RenderPNG(ctx context.Context, b *board.Board) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("board is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	sq := r.theme.SquarePx
	margin := r.theme.MarginPx
	total := board.Size*sq + margin*2
	origin := image.Point{X: margin, Y: margin}

	bg, _ := theme.ParseHex(r.theme.Background)
	img := image.NewRGBA(image.Rect(0, 0, total, total))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, imagedraw.Src)

	r.drawSquares(img, origin)
	if err := r.drawPieces(img, b, origin); err != nil {
		return nil, err
	}
	if err := r.drawMarkers(img, b, origin); err != nil {
		return nil, err
	}
	if r.theme.DrawLabels {
		r.drawLabels(img, origin)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// squareRect maps a board coordinate to pixels. Row 0 is drawn at the
// bottom so white faces the viewer.
func (r *Renderer) squareRect(c board.Coord, origin image.Point) image.Rectangle {
	sq := r.theme.SquarePx
	x := origin.X + c.Col*sq
	y := origin.Y + (board.Size-1-c.Row)*sq
	return image.Rect(x, y, x+sq, y+sq)
}

func (r *Renderer) drawSquares(img *image.RGBA, origin image.Point) {
	light, _ := theme.ParseHex(r.theme.LightSquare)
	dark, _ := theme.ParseHex(r.theme.DarkSquare)
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			clr := light
			if (col+row)%2 == 0 {
				clr = dark
			}
			rect := r.squareRect(board.Coord{Col: col, Row: row}, origin)
			imagedraw.Draw(img, rect, image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func (r *Renderer) drawPieces(img *image.RGBA, b *board.Board, origin image.Point) error {
	whiteFill, _ := theme.ParseHex(r.theme.WhitePieceFill)
	whiteText, _ := theme.ParseHex(r.theme.WhitePieceText)
	blackFill, _ := theme.ParseHex(r.theme.BlackPieceFill)
	blackText, _ := theme.ParseHex(r.theme.BlackPieceText)

	for _, pp := range b.Squares() {
		fill, text := whiteFill, whiteText
		if pp.Piece.Team == board.Black {
			fill, text = blackFill, blackText
		}
		disc, err := r.rasterize("assets/piece.svg", r.theme.SquarePx, fill, text)
		if err != nil {
			return err
		}
		rect := r.squareRect(pp.Coord, origin)
		imagedraw.Draw(img, rect, disc, image.Point{}, imagedraw.Over)
		r.drawGlyph(img, rect, string(pp.Piece.Kind.Letter()), text)
	}
	return nil
}

func (r *Renderer) drawMarkers(img *image.RGBA, b *board.Board, origin image.Point) error {
	highlight, _ := theme.ParseHex(r.theme.Highlight)
	size := int(float64(r.theme.SquarePx) * r.theme.MarkerScale * 2)
	if size <= 0 {
		return nil
	}
	for _, c := range b.Highlighted() {
		marker, err := r.rasterize("assets/marker.svg", size, highlight, highlight)
		if err != nil {
			return err
		}
		rect := r.squareRect(c, origin)
		off := (r.theme.SquarePx - size) / 2
		target := image.Rect(rect.Min.X+off, rect.Min.Y+off, rect.Min.X+off+size, rect.Min.Y+off+size)
		imagedraw.Draw(img, target, marker, image.Point{}, imagedraw.Over)
	}
	return nil
}

func (r *Renderer) drawLabels(img *image.RGBA, origin image.Point) {
	clr, _ := theme.ParseHex(r.theme.LabelText)
	sq := r.theme.SquarePx
	boardBottom := origin.Y + board.Size*sq

	for col := 0; col < board.Size; col++ {
		file := string(rune('a' + col))
		x := origin.X + col*sq + sq/2
		r.drawCenteredText(img, file, x, boardBottom+r.theme.MarginPx/2, clr)
	}
	for row := 0; row < board.Size; row++ {
		rank := strconv.Itoa(row + 1)
		y := origin.Y + (board.Size-1-row)*sq + sq/2
		r.drawCenteredText(img, rank, origin.X-r.theme.MarginPx/2, y, clr)
	}
}

// drawGlyph centers the piece letter inside the square.
func (r *Renderer) drawGlyph(img *image.RGBA, rect image.Rectangle, text string, clr color.RGBA) {
	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2
	r.drawCenteredText(img, text, cx, cy, clr)
}

func (r *Renderer) drawCenteredText(img *image.RGBA, text string, cx, cy int, clr color.RGBA) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: face,
	}
	width := drawer.MeasureString(text).Round()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	drawer.Dot = fixed.P(cx-width/2, cy+(ascent-descent)/2)
	drawer.DrawString(text)
}

// rasterize renders an embedded SVG at the given pixel size, filling the
// FILL and EDGE placeholders with theme colors. Results are cached.
func (r *Renderer) rasterize(name string, size int, fill, edge color.RGBA) (image.Image, error) {
	key := assetKey{name: name, size: size, fill: fill, edge: edge}
	r.cacheMu.RLock()
	if img, ok := r.cache[key]; ok {
		r.cacheMu.RUnlock()
		return img, nil
	}
	r.cacheMu.RUnlock()

	data, err := assetFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}
	data = bytes.ReplaceAll(data, []byte("#FILL"), []byte(hexRGB(fill)))
	data = bytes.ReplaceAll(data, []byte("#EDGE"), []byte(hexRGB(edge)))
	data = bytes.ReplaceAll(data, []byte("OPACITY"), []byte(opacity(fill)))

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse asset %s: %w", name, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	r.cacheMu.Lock()
	r.cache[key] = img
	r.cacheMu.Unlock()
	return img, nil
}

func hexRGB(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.RGBA) string {
	return strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
}
