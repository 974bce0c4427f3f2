package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"scribe/config"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService_CorrectionLevels(t *testing.T) {
	tests := []struct {
		in   string
		want qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"M", qrcode.Medium},
		{"Q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, newQRCodeService(256, tt.in).errorCorrectionLevel)
		})
	}
}

func TestQRCodeService_EncodeProducesPNGOfConfiguredSize(t *testing.T) {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{Size: 200, ErrorCorrectionLevel: "M"}})

	pngBytes, err := svc.Encode("https://blog.example.com/blog-posts/42")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestQRCodeService_EncodeIsDeterministic(t *testing.T) {
	svc := newQRCodeService(128, "M")

	first, err := svc.Encode("https://blog.example.com/blog-posts/1")
	require.NoError(t, err)
	second, err := svc.Encode("https://blog.example.com/blog-posts/1")
	require.NoError(t, err)
	other, err := svc.Encode("https://blog.example.com/blog-posts/2")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestQRCodeService_EncodeRejectsEmpty(t *testing.T) {
	_, err := newQRCodeService(128, "M").Encode("")
	assert.Error(t, err)
}
