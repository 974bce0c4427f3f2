package service

// QRCodeService renders share codes.
type QRCodeService interface {
	// Encode renders content as a PNG QR code.
	Encode(content string) ([]byte, error)
}
