package mediaimpl

import (
	"github.com/orgball2608/class-gallery/internal/media"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(media.Client)),
	),
)
