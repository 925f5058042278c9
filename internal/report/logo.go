package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/go-pdf/fpdf"
	"golang.org/x/image/draw"
)

const (
	logoName  = "logo"
	logoMaxPx = 240
)

// Logo é a imagem do cabeçalho, normalizada para PNG.
type Logo struct {
	png    []byte
	width  int
	height int
}

// LoadLogo lê webp, png ou jpeg do disco. path vazio devolve nil sem erro.
func LoadLogo(path string) (*Logo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	defer f.Close()

	return DecodeLogo(f, filepath.Ext(path))
}

func DecodeLogo(r io.Reader, ext string) (*Logo, error) {
	var (
		img image.Image
		err error
	)
	if strings.EqualFold(ext, ".webp") {
		img, err = webp.Decode(r)
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	img = fit(img, logoMaxPx)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}

	b := img.Bounds()
	return &Logo{png: buf.Bytes(), width: b.Dx(), height: b.Dy()}, nil
}

// fit reduz img para caber em limit×limit mantendo a proporção.
func fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}

	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func (l *Logo) Size() (int, int) { return l.width, l.height }

func (l *Logo) register(pdf *fpdf.Fpdf) {
	pdf.RegisterImageOptionsReader(logoName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(l.png))
}

// draw encaixa o logo num quadrado de lado box.
func (l *Logo) draw(pdf *fpdf.Fpdf, x, y, box float64) {
	w, h := box, box
	if l.width > l.height {
		h = box * float64(l.height) / float64(l.width)
		y += (box - h) / 2
	} else if l.height > l.width {
		w = box * float64(l.width) / float64(l.height)
		x += (box - w) / 2
	}
	pdf.ImageOptions(logoName, x, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}
