package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ariefcatur/zenzee-admin/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, r io.Reader, slot string, kind Kind) (Asset, error) {
	f.calls++
	if f.err != nil {
		return Asset{}, f.err
	}
	b, _ := io.ReadAll(r)
	return Asset{URL: "https://cdn.example/" + slot + "/" + string(b), PublicID: "zenzee/" + slot, Kind: kind}, nil
}

func TestService_UploadRecordsMedia(t *testing.T) {
	st := settings.NewMemoryStore()
	up := &fakeUploader{}
	svc := &Service{Limits: DefaultLimits(10, 100), Uploader: up, Settings: st, Log: zap.NewNop()}
	ctx := context.Background()

	a, err := svc.Upload(ctx, "brandBanner", "image/webp", 3, strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/brandBanner/abc", a.URL)

	m, err := settings.Media.Get(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, settings.MediaRef{URL: a.URL, Type: "image", PublicID: "zenzee/brandBanner"}, m["brandBanner"])
}

func TestService_RejectsBeforeUpload(t *testing.T) {
	up := &fakeUploader{}
	svc := &Service{Limits: DefaultLimits(10, 100), Uploader: up, Settings: settings.NewMemoryStore(), Log: zap.NewNop()}

	_, err := svc.Upload(context.Background(), "hero", "image/png", 20*mb, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, 0, up.calls)
}

func TestService_UploadFailureLeavesSettings(t *testing.T) {
	st := settings.NewMemoryStore()
	svc := &Service{Limits: DefaultLimits(10, 100), Uploader: &fakeUploader{err: errors.New("cdn down")}, Settings: st, Log: zap.NewNop()}

	_, err := svc.Upload(context.Background(), "hero", "image/png", 10, strings.NewReader("x"))
	require.Error(t, err)
	_, err = st.Get(context.Background(), settings.KeySectionMedia)
	assert.ErrorIs(t, err, settings.ErrNotFound)
}

func TestNewCloudinary_RequiresURL(t *testing.T) {
	_, err := NewCloudinary("", "zenzee")
	assert.Error(t, err)
}
