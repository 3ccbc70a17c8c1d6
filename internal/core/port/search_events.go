package port

import (
	"context"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// SearchEventsPort публикует аналитические события о поисках.
type SearchEventsPort interface {
	PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error
}
