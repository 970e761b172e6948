package adminimpl

import (
	"github.com/orgball2608/class-gallery/internal/admin"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(admin.Service)),
	),
)
