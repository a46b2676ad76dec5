package storage

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/avatars/abc-123.webp", "avatars/abc-123.webp"},
		{"https://bucket.s3.ap-south-1.amazonaws.com/avatars/xyz.webp", "avatars/xyz.webp"},
		{"https://minio.local/bucket/avatars/xyz.webp", "avatars/xyz.webp"},
		{"https://cdn.example.com/something-else.png", ""},
		{"", ""},
		{"://bad url", ""},
	}

	for _, tc := range cases {
		if got := KeyFromURL(tc.url); got != tc.want {
			t.Errorf("KeyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestNormalizeAvatar(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	out, err := NormalizeAvatar(&buf)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty webp output")
	}
	// RIFF....WEBP container header
	if !bytes.HasPrefix(out, []byte("RIFF")) || !bytes.Equal(out[8:12], []byte("WEBP")) {
		t.Fatalf("output is not webp: % x", out[:12])
	}
}

func TestNormalizeAvatar_RejectsNonImages(t *testing.T) {
	if _, err := NormalizeAvatar(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestScaleDown(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 2048, 1024))
	scaled := scaleDown(big, 512)
	b := scaled.Bounds()
	if b.Dx() != 512 || b.Dy() != 256 {
		t.Fatalf("scaled to %dx%d", b.Dx(), b.Dy())
	}

	small := image.NewRGBA(image.Rect(0, 0, 100, 100))
	if scaleDown(small, 512) != small {
		t.Fatal("small images must pass through untouched")
	}
}
