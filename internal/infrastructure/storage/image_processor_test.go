package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor(1024*1024, 100)

	format, err := p.ValidateImage(encodePNG(t, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = p.ValidateImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = p.ValidateImage(nil)
	assert.Error(t, err)

	small := NewImageProcessor(10, 100)
	_, err = small.ValidateImage(encodePNG(t, 10, 10))
	assert.Error(t, err)
}

func TestPrepare_KeepsSmallImageUntouched(t *testing.T) {
	p := NewImageProcessor(1024*1024, 100)
	data := encodePNG(t, 50, 20)

	out, contentType, err := p.Prepare(data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, data, out)
}

func TestPrepare_DownsizesWideImage(t *testing.T) {
	p := NewImageProcessor(1024*1024, 40)

	out, contentType, err := p.Prepare(encodePNG(t, 200, 100))
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("treva.PNG", "image/png")
	assert.True(t, strings.HasPrefix(key, "properties/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	assert.True(t, strings.HasSuffix(ObjectKey("blob", "image/png"), ".png"))
	assert.True(t, strings.HasSuffix(ObjectKey("blob.gif", "image/jpeg"), ".jpg"))
	assert.NotEqual(t, ObjectKey("a.jpg", ""), ObjectKey("a.jpg", ""))
}
