package media_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/tpdc055/sheriff/internal/media"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeImageTranscodesToJPEGDataURI(t *testing.T) {
	for _, data := range [][]byte{testPNG(t), testJPEG(t)} {
		out, err := media.EncodeImage("capture", data)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !strings.HasPrefix(out, "data:image/jpeg;base64,") {
			t.Fatalf("expected jpeg data uri, got %.40s", out)
		}
	}
}

func TestEncodeImageRejectsUnsupportedType(t *testing.T) {
	_, err := media.EncodeImage("notes.txt", []byte("definitely not an image"))
	var rej media.ImageRejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rej.Name != "notes.txt" || !strings.Contains(rej.Reason, "unsupported type") {
		t.Fatalf("unexpected rejection %+v", rej)
	}
}

func TestEncodeImageRejectsEmptyAndOversize(t *testing.T) {
	if _, err := media.EncodeImage("empty", nil); err == nil {
		t.Fatal("expected rejection for empty file")
	}
	big := make([]byte, media.MaxImageBytes+1)
	_, err := media.EncodeImage("big", big)
	var rej media.ImageRejectedError
	if !errors.As(err, &rej) || !strings.Contains(rej.Reason, "byte limit") {
		t.Fatalf("expected size rejection, got %v", err)
	}
}

func TestEncodeImageRejectsTruncated(t *testing.T) {
	data := testPNG(t)
	if _, err := media.EncodeImage("trunc.png", data[:20]); err == nil {
		t.Fatal("expected rejection for undecodable data")
	}
}

func TestEncodeBatchContinuesPastRejects(t *testing.T) {
	files := []media.File{
		{Name: "a.png", Data: testPNG(t)},
		{Name: "bad.txt", Data: []byte("nope")},
		{Name: "b.jpg", Data: testJPEG(t)},
	}
	encoded, rejected := media.EncodeBatch(files)
	if len(encoded) != 2 {
		t.Fatalf("expected 2 encodes, got %d", len(encoded))
	}
	if len(rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(rejected))
	}
	var rej media.ImageRejectedError
	if !errors.As(rejected[0], &rej) || rej.Name != "bad.txt" {
		t.Fatalf("unexpected rejection %v", rejected[0])
	}
}
