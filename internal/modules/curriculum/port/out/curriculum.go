package out

import (
	"context"

	"hdt/internal/modules/curriculum/domain"
)

type Source interface {
	Load(ctx context.Context) (domain.Curriculum, error)
}
