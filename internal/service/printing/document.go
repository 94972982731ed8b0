package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const qrDocumentTemplate = `<html>
  <head>
    <title>Print QR Code</title>
    <style>
      body {
        display: flex;
        justify-content: center;
        align-items: center;
        padding: 20px;
        font-family: Arial, sans-serif;
      }
      img {
        max-width: 100%;
        height: auto;
      }
    </style>
  </head>
  <body>
    <h2 style="text-align: center;">QR Code</h2>
    <img src="{{.}}" alt="QR Code">
  </body>
</html>
`

var qrDocument = template.Must(template.New("qr").Parse(qrDocumentTemplate))

// Document is the markup written to a print surface together with the image it embeds.
type Document struct {
	ImageURL string
	Markup   []byte
}

// RenderDocument builds the self-contained print document for a QR image.
// Inline data:image URLs are embedded as-is; other URLs go through html/template sanitising.
func RenderDocument(imageURL string) (Document, error) {
	var src any = imageURL
	if strings.HasPrefix(imageURL, "data:image/") {
		src = template.URL(imageURL)
	}

	var buf bytes.Buffer
	if err := qrDocument.Execute(&buf, src); err != nil {
		return Document{}, fmt.Errorf("render qr print document: %w", err)
	}
	return Document{ImageURL: imageURL, Markup: buf.Bytes()}, nil
}
