// Package seed inserts the starter catalog on an empty till. Any empty
// catalog qualifies: emptying the catalog and restarting brings the sample
// products back, matching the original till's bootstrap.
package seed

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
)

var sampleProducts = []catalog.AddProductInput{
	{Name: "bread", Price: decimal.NewFromInt(500), Quantity: 50, Category: "food"},
	{Name: "milk", Price: decimal.NewFromInt(1000), Quantity: 30, Category: "drinks"},
	{Name: "hand cream", Price: decimal.NewFromInt(2000), Quantity: 15, Category: "hygiene"},
	{Name: "rug", Price: decimal.NewFromInt(50000), Quantity: 5, Category: "household"},
}

// Bootstrap populates the catalog with the sample products when it is
// empty. Loading persisted state must happen first.
func Bootstrap(ctx context.Context, session *pos.Session, logg *logger.Logger) error {
	if len(session.Products(ctx, "")) > 0 {
		return nil
	}
	for _, input := range sampleProducts {
		if _, err := session.AddProduct(ctx, input); err != nil {
			return err
		}
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "products", len(sampleProducts)), "seed.bootstrap")
	}
	return nil
}
