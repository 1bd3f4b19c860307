package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapturedImage_DataURI(t *testing.T) {
	img := &CapturedImage{MimeType: "image/png", Data: []byte("abc")}
	require.Equal(t, "data:image/png;base64,YWJj", img.DataURI())
}

func TestCapturedImage_Bounds(t *testing.T) {
	img := &CapturedImage{Width: 640, Height: 480}
	require.Equal(t, image.Rect(0, 0, 640, 480), img.Bounds())
}
