// Package media validates and uploads homepage images and videos.
package media

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTooLarge    = errors.New("file too large")
	ErrUnsupported = errors.New("unsupported media type")
	ErrEmpty       = errors.New("empty file")
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

const mb = 1 << 20

// Limits caps upload size. Slots listed in LargeVideoSlots get
// LargeVideoBytes, every other slot VideoBytes.
type Limits struct {
	ImageBytes      int64
	VideoBytes      int64
	LargeVideoBytes int64
	LargeVideoSlots map[string]bool
}

func DefaultLimits(imageMB, videoMB int) Limits {
	return Limits{
		ImageBytes:      int64(imageMB) * mb,
		VideoBytes:      50 * mb,
		LargeVideoBytes: int64(videoMB) * mb,
		LargeVideoSlots: map[string]bool{"hero": true, "video_showcase": true},
	}
}

func KindOf(contentType string) (Kind, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage, nil
	case strings.HasPrefix(ct, "video/"):
		return KindVideo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, contentType)
}

// Validate checks an upload for slot before any bytes leave the server.
func (l Limits) Validate(slot, contentType string, size int64) (Kind, error) {
	k, err := KindOf(contentType)
	if err != nil {
		return "", err
	}
	if size <= 0 {
		return "", ErrEmpty
	}
	limit := l.ImageBytes
	if k == KindVideo {
		limit = l.VideoBytes
		if l.LargeVideoSlots[slot] {
			limit = l.LargeVideoBytes
		}
	}
	if size > limit {
		return "", fmt.Errorf("%w: %d bytes, %s limit is %d MB", ErrTooLarge, size, k, limit/mb)
	}
	return k, nil
}

// Max is the largest upload any slot accepts.
func (l Limits) Max() int64 {
	return max(l.ImageBytes, l.VideoBytes, l.LargeVideoBytes)
}
