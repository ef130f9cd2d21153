package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders the QR code that diners scan to open a tenant's
// storefront menu.
type QRService struct {
	mainDomain string
}

func NewQRService(mainDomain string) *QRService {
	return &QRService{mainDomain: mainDomain}
}

// StorefrontQR returns a PNG encoding of the tenant's menu URL. The URL
// embeds the subdomain, which is why subdomains are immutable.
func (s *QRService) StorefrontQR(subdomain string) ([]byte, error) {
	url := fmt.Sprintf("https://%s.%s/menu", subdomain, s.mainDomain)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
