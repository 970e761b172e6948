package viewerimpl

import (
	"github.com/orgball2608/class-gallery/internal/viewer"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(viewer.Hub)),
	),
)
