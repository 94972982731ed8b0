package models

// FormState is a point-in-time snapshot of a fabric form session.
type FormState struct {
	Fields     FabricForm `json:"fields"`
	QRCodeURL  string     `json:"qrCodeUrl,omitempty"`
	Submitting bool       `json:"submitting"`
	Message    string     `json:"message,omitempty"`
	Error      string     `json:"error,omitempty"`

	Err error `json:"-"`
}

// HasQRCode reports whether a QR code is available for printing.
func (s FormState) HasQRCode() bool {
	return s.QRCodeURL != ""
}
