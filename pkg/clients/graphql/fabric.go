package graphql

import (
	"context"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

const insertFabricDetailsMutation = `mutation InsertFabricDetails($fabricType: String!, $colour: String!, $length: Float!, $width: Float!, $price: Float!, $dateOfPurchase: String!) {
  insertFabricDetails(fabricType: $fabricType, colour: $colour, length: $length, width: $width, price: $price, dateOfPurchase: $dateOfPurchase) {
    qrCodeUrl
  }
}`

// InsertFabricDetails runs the insertFabricDetails mutation. A null mutation
// payload yields a result with an empty QR code URL.
func (c *APIClient) InsertFabricDetails(ctx context.Context, input models.FabricInput) (*models.InsertFabricResult, error) {
	var data struct {
		InsertFabricDetails *models.InsertFabricResult `json:"insertFabricDetails"`
	}

	req := Request{
		Query:         insertFabricDetailsMutation,
		OperationName: "InsertFabricDetails",
		Variables:     input.Variables(),
	}
	if err := c.Do(ctx, req, &data); err != nil {
		return nil, err
	}

	if data.InsertFabricDetails == nil {
		return &models.InsertFabricResult{}, nil
	}
	return data.InsertFabricDetails, nil
}
