package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/snejhirpara/tiffin-tracker/internal/config"
)

const (
	avatarPrefix  = "avatars/"
	maxAvatarEdge = 512
	webpQuality   = 80
)

// AvatarStorage keeps user avatars in an S3 bucket. Every upload is decoded,
// downscaled and re-encoded to webp, so the bucket only ever holds one
// bounded format regardless of what the client sent.
type AvatarStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewAvatarStorage(cfg *config.Config) *AvatarStorage {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.S3PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &AvatarStorage{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores a new avatar and returns its public URL.
func (s *AvatarStorage) Upload(ctx context.Context, r io.Reader) (string, error) {
	encoded, err := NormalizeAvatar(r)
	if err != nil {
		return "", err
	}

	key := avatarPrefix + uuid.NewString() + ".webp"

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(encoded),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return s.publicBaseURL + "/" + key, nil
}

// Update uploads the replacement first and deletes the old object only once
// the new one exists; losing the old object is worse than leaking it.
func (s *AvatarStorage) Update(ctx context.Context, oldURL string, r io.Reader) (string, error) {
	newURL, err := s.Upload(ctx, r)
	if err != nil {
		return "", err
	}

	if oldKey := KeyFromURL(oldURL); oldKey != "" {
		if err := s.Delete(ctx, oldKey); err != nil {
			// non-fatal: the new avatar is already in place
			return newURL, nil
		}
	}

	return newURL, nil
}

func (s *AvatarStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// KeyFromURL extracts the object key from a stored avatar URL. Returns ""
// when the URL carries no avatar key.
func KeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	p := strings.TrimPrefix(u.Path, "/")
	if idx := strings.Index(p, avatarPrefix); idx >= 0 {
		return p[idx:]
	}
	return ""
}

// NormalizeAvatar decodes a jpeg/png upload, scales it down to fit
// maxAvatarEdge and re-encodes it as webp.
func NormalizeAvatar(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	img := scaleDown(src, maxAvatarEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scaleDown(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
