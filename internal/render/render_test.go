package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/park285/chessboard/internal/board"
	"github.com/park285/chessboard/internal/theme"
)

func TestRenderStartingBoard(t *testing.T) {
	r := New(theme.Default())
	raw, err := r.RenderPNG(context.Background(), board.NewGame())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	th := theme.Default()
	want := board.Size*th.SquarePx + th.MarginPx*2
	if img.Bounds().Dx() != want || img.Bounds().Dy() != want {
		t.Fatalf("expected %dx%d image, got %v", want, want, img.Bounds())
	}
}

func TestRenderSquareColors(t *testing.T) {
	th := theme.Default()
	r := New(th)
	raw, err := r.RenderPNG(context.Background(), board.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Square a1 sits bottom-left and is dark; b1 next to it is light.
	centerOf := func(col, row int) (int, int) {
		x := th.MarginPx + col*th.SquarePx + th.SquarePx/2
		y := th.MarginPx + (board.Size-1-row)*th.SquarePx + th.SquarePx/2
		return x, y
	}
	dark, _ := theme.ParseHex(th.DarkSquare)
	light, _ := theme.ParseHex(th.LightSquare)

	x, y := centerOf(0, 0)
	if r8, g8, b8, _ := img.At(x, y).RGBA(); uint8(r8>>8) != dark.R || uint8(g8>>8) != dark.G || uint8(b8>>8) != dark.B {
		t.Fatalf("a1 should be dark %v, got %v", dark, img.At(x, y))
	}
	x, y = centerOf(1, 0)
	if r8, g8, b8, _ := img.At(x, y).RGBA(); uint8(r8>>8) != light.R || uint8(g8>>8) != light.G || uint8(b8>>8) != light.B {
		t.Fatalf("b1 should be light %v, got %v", light, img.At(x, y))
	}
}

func TestRenderHighlightChangesSquare(t *testing.T) {
	th := theme.Default()
	r := New(th)

	plain := board.New()
	marked := board.New()
	if err := marked.SetHighlight(board.Coord{Col: 3, Row: 3}, true); err != nil {
		t.Fatalf("highlight: %v", err)
	}

	ctx := context.Background()
	rawPlain, err := r.RenderPNG(ctx, plain)
	if err != nil {
		t.Fatalf("render plain: %v", err)
	}
	rawMarked, err := r.RenderPNG(ctx, marked)
	if err != nil {
		t.Fatalf("render marked: %v", err)
	}
	if bytes.Equal(rawPlain, rawMarked) {
		t.Fatal("highlight marker should change the image")
	}

	imgPlain, err := png.Decode(bytes.NewReader(rawPlain))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	imgMarked, err := png.Decode(bytes.NewReader(rawMarked))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	x := th.MarginPx + 3*th.SquarePx + th.SquarePx/2
	y := th.MarginPx + (board.Size-1-3)*th.SquarePx + th.SquarePx/2
	if imgPlain.At(x, y) == imgMarked.At(x, y) {
		t.Fatal("marked square center should differ from plain render")
	}
}

func TestRendererNilBoard(t *testing.T) {
	r := New(nil)
	if _, err := r.RenderPNG(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil board")
	}
}
