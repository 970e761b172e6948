package diskimpl

import (
	"github.com/orgball2608/class-gallery/internal/storage"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(storage.Client)),
	),
)
