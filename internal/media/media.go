// Package media validates and embeds captured images. Photos and signatures
// are transcoded to compressed JPEG and attached to records as data URIs so
// snapshots stay self-contained.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
)

// MaxImageBytes is the per-file ceiling for incoming captures.
const MaxImageBytes = 10 * 1024 * 1024

const jpegQuality = 70

// ImageRejectedError reports a single rejected file; a batch continues past
// rejected members.
type ImageRejectedError struct {
	Name   string
	Reason string
}

func (e ImageRejectedError) Error() string {
	if e.Name == "" {
		return "image rejected: " + e.Reason
	}
	return fmt.Sprintf("image %s rejected: %s", e.Name, e.Reason)
}

// EncodeImage validates raw capture bytes and returns a compressed embedded
// representation. Only JPEG and PNG inputs are accepted.
func EncodeImage(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ImageRejectedError{Name: name, Reason: "empty file"}
	}
	if len(data) > MaxImageBytes {
		return "", ImageRejectedError{Name: name, Reason: fmt.Sprintf("exceeds %d byte limit", MaxImageBytes)}
	}
	mime := http.DetectContentType(data)
	if mime != "image/jpeg" && mime != "image/png" {
		return "", ImageRejectedError{Name: name, Reason: "unsupported type " + mime}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ImageRejectedError{Name: name, Reason: "undecodable image data"}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("re-encode %s: %w", name, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// File is one named capture in a batch.
type File struct {
	Name string
	Data []byte
}

// EncodeBatch processes each file independently, preserving order.
// Rejections are reported per file and do not abort the rest of the batch.
func EncodeBatch(files []File) (encoded []string, rejected []error) {
	for _, f := range files {
		out, err := EncodeImage(f.Name, f.Data)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		encoded = append(encoded, out)
	}
	return encoded, rejected
}
