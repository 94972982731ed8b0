package fabricform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

// Coerce converts the numeric form fields to floats and passes the rest through unchanged.
// It fails with ErrValidation when any of length, width or price is not a finite number.
func Coerce(form models.FabricForm) (models.FabricInput, error) {
	var invalid []string

	parse := func(name, raw string) float64 {
		value, ok := parseNumber(raw)
		if !ok {
			invalid = append(invalid, name)
		}
		return value
	}

	input := models.FabricInput{
		FabricType:     form.FabricType,
		Colour:         form.Colour,
		Length:         parse(models.FieldLength, form.Length),
		Width:          parse(models.FieldWidth, form.Width),
		Price:          parse(models.FieldPrice, form.Price),
		DateOfPurchase: form.DateOfPurchase,
	}

	if len(invalid) > 0 {
		return models.FabricInput{}, fmt.Errorf("%w: %s", ErrValidation, strings.Join(invalid, ", "))
	}
	return input, nil
}

// plainDecimal excludes the Go literal forms ParseFloat also accepts (hex, underscores, Inf).
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if !plainDecimal.MatchString(raw) {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
