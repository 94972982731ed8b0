package models

import "fmt"

// Form field keys. These are the only names accepted by the form controller.
const (
	FieldFabricType     = "fabricType"
	FieldColour         = "colour"
	FieldLength         = "length"
	FieldWidth          = "width"
	FieldPrice          = "price"
	FieldDateOfPurchase = "dateOfPurchase"
)

// FieldNames lists the form fields in display order.
var FieldNames = []string{
	FieldFabricType,
	FieldColour,
	FieldLength,
	FieldWidth,
	FieldPrice,
	FieldDateOfPurchase,
}

// FabricForm holds the raw values typed into the fabric entry form.
type FabricForm struct {
	FabricType     string `json:"fabricType" form:"fabricType" binding:"required"`
	Colour         string `json:"colour" form:"colour" binding:"required"`
	Length         string `json:"length" form:"length" binding:"required"`
	Width          string `json:"width" form:"width" binding:"required"`
	Price          string `json:"price" form:"price" binding:"required"`
	DateOfPurchase string `json:"dateOfPurchase" form:"dateOfPurchase" binding:"required"`
}

// Set replaces a single field by name.
func (f *FabricForm) Set(name, value string) error {
	switch name {
	case FieldFabricType:
		f.FabricType = value
	case FieldColour:
		f.Colour = value
	case FieldLength:
		f.Length = value
	case FieldWidth:
		f.Width = value
	case FieldPrice:
		f.Price = value
	case FieldDateOfPurchase:
		f.DateOfPurchase = value
	default:
		return fmt.Errorf("unknown form field %q", name)
	}
	return nil
}

// Value returns the current value of a field, or "" for unknown names.
func (f FabricForm) Value(name string) string {
	switch name {
	case FieldFabricType:
		return f.FabricType
	case FieldColour:
		return f.Colour
	case FieldLength:
		return f.Length
	case FieldWidth:
		return f.Width
	case FieldPrice:
		return f.Price
	case FieldDateOfPurchase:
		return f.DateOfPurchase
	}
	return ""
}

// FabricInput is the numeric-coerced payload sent with the insert mutation.
type FabricInput struct {
	FabricType     string  `json:"fabricType" bson:"fabric_type"`
	Colour         string  `json:"colour" bson:"colour"`
	Length         float64 `json:"length" bson:"length"`
	Width          float64 `json:"width" bson:"width"`
	Price          float64 `json:"price" bson:"price"`
	DateOfPurchase string  `json:"dateOfPurchase" bson:"date_of_purchase"`
}

// Variables renders the input as GraphQL mutation variables.
func (in FabricInput) Variables() map[string]any {
	return map[string]any{
		FieldFabricType:     in.FabricType,
		FieldColour:         in.Colour,
		FieldLength:         in.Length,
		FieldWidth:          in.Width,
		FieldPrice:          in.Price,
		FieldDateOfPurchase: in.DateOfPurchase,
	}
}

// InsertFabricResult mirrors the insertFabricDetails mutation payload.
type InsertFabricResult struct {
	QRCodeURL string `json:"qrCodeUrl"`
}
