package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// kittyChunkSize is the maximum number of base64 bytes per Kitty protocol chunk.
const kittyChunkSize = 4096

// ErrEmptyFrame is returned when there is nothing to draw.
var ErrEmptyFrame = errors.New("render: empty frame")

// FrameConfig controls how a frame is sent to the terminal.
type FrameConfig struct {
	// Protocol is the preferred protocol; ProtocolNone means auto-detect.
	Protocol ImageProtocol
	// Cols is the number of terminal columns the frame occupies.
	Cols int
	// Rows is the number of terminal rows the frame occupies.
	Rows int
	// UseContextDetection uses SSH/tmux-aware detection.
	UseContextDetection bool
}

// DefaultFrameConfig returns an auto-detecting config for a cols×rows area.
func DefaultFrameConfig(cols, rows int) FrameConfig {
	return FrameConfig{
		Protocol:            ProtocolNone,
		Cols:                cols,
		Rows:                rows,
		UseContextDetection: true,
	}
}

// Frame is one encoded terminal frame.
type Frame struct {
	// Output is the escape sequence or half-block text to print.
	Output string
	// Protocol is the protocol the frame was encoded with.
	Protocol ImageProtocol
}

// Encode converts an image into terminal output for the configured area.
func Encode(img image.Image, cfg FrameConfig) (Frame, error) {
	if img == nil || img.Bounds().Empty() || cfg.Cols <= 0 || cfg.Rows <= 0 {
		return Frame{}, ErrEmptyFrame
	}

	protocol := cfg.Protocol
	if protocol == ProtocolNone {
		if cfg.UseContextDetection {
			protocol = DetectProtocolWithContext()
		} else {
			protocol = DetectProtocol()
		}
	}

	switch protocol {
	case ProtocolKitty, ProtocolITerm2:
		data, err := encodePNG(img)
		if err != nil {
			return Frame{}, fmt.Errorf("render: encode %s frame: %w", protocol, err)
		}
		if protocol == ProtocolKitty {
			return Frame{Output: Kitty(data, cfg.Cols, cfg.Rows), Protocol: protocol}, nil
		}
		return Frame{Output: ITerm2(data, cfg.Cols, cfg.Rows), Protocol: protocol}, nil
	default:
		return Frame{Output: HalfBlocks(img, cfg.Cols, cfg.Rows), Protocol: ProtocolUnicode}, nil
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Kitty wraps PNG data in Kitty Graphics Protocol escape sequences, split
// into chunks of at most kittyChunkSize base64 bytes.
func Kitty(pngData []byte, cols, rows int) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var b strings.Builder
	if len(encoded) <= kittyChunkSize {
		// m=0 marks the only (and last) chunk.
		fmt.Fprintf(&b, "\033_Gf=100,a=T,t=d,c=%d,r=%d,m=0;%s\033\\", cols, rows, encoded)
		return b.String()
	}

	for i := 0; i < len(encoded); i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(encoded))
		chunk := encoded[i:end]

		switch {
		case i == 0:
			// First chunk carries the metadata.
			fmt.Fprintf(&b, "\033_Gf=100,a=T,t=d,c=%d,r=%d,m=1;%s\033\\", cols, rows, chunk)
		case end >= len(encoded):
			fmt.Fprintf(&b, "\033_Gm=0;%s\033\\", chunk)
		default:
			fmt.Fprintf(&b, "\033_Gm=1;%s\033\\", chunk)
		}
	}
	return b.String()
}

// ITerm2 wraps PNG data in an iTerm2 inline image sequence sized in cells:
// OSC 1337 ; File=params : base64 BEL.
func ITerm2(pngData []byte, cols, rows int) string {
	params := strings.Join([]string{
		"inline=1",
		fmt.Sprintf("size=%d", len(pngData)),
		fmt.Sprintf("width=%d", cols),
		fmt.Sprintf("height=%d", rows),
		"preserveAspectRatio=0",
	}, ";")
	return fmt.Sprintf("\033]1337;File=%s:%s\007", params, base64.StdEncoding.EncodeToString(pngData))
}

// HalfBlocks resamples the image to cols×(rows*2) pixels and renders each
// pair of pixel rows as one line of upper half-block characters, foreground
// for the top pixel and background for the bottom one.
func HalfBlocks(img image.Image, cols, rows int) string {
	if img == nil || img.Bounds().Empty() || cols <= 0 || rows <= 0 {
		return ""
	}

	resized := imaging.Resize(img, cols, rows*2, imaging.Lanczos)
	bounds := resized.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			topR, topG, topB := rgb(resized.At(bounds.Min.X+x, bounds.Min.Y+y))

			var botR, botG, botB uint8
			if y+1 < h {
				botR, botG, botB = rgb(resized.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}

			fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀",
				topR, topG, topB, botR, botG, botB)
		}
		b.WriteString("\033[0m")
	}
	return b.String()
}

// rgb converts a color.Color to 8-bit channels, dropping alpha.
func rgb(c color.Color) (r, g, b uint8) {
	r32, g32, b32, _ := c.RGBA()
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8)
}
