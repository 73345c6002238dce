package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// PropertiesClient wraps the admin property endpoints.
type PropertiesClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewPropertiesClient(b *backend.Client, logger *zap.Logger) *PropertiesClient {
	return &PropertiesClient{backend: b, logger: logger}
}

// ListProperties fetches one page of the upstream-paginated property list.
func (c *PropertiesClient) ListProperties(ctx context.Context, page, limit int) (*domain.PropertyPage, error) {
	ctx, span := tracer.Start(ctx, "PropertiesClient.ListProperties")
	defer span.End()

	var result domain.PropertyPage
	path := fmt.Sprintf("/admin/properties?page=%d&limit=%d", page, limit)
	if err := c.backend.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyProperty marks a property as verified.
func (c *PropertiesClient) VerifyProperty(ctx context.Context, propertyID string) error {
	ctx, span := tracer.Start(ctx, "PropertiesClient.VerifyProperty")
	defer span.End()

	path := fmt.Sprintf("/properties/admin/%s/verify", propertyID)
	if err := c.backend.Post(ctx, path, nil, nil); err != nil {
		c.logger.Warn("properties: verify failed",
			zap.String("property_id", propertyID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
