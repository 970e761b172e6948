package fx

import (
	"github.com/orgball2608/class-gallery/internal/repositories/event"
	"github.com/orgball2608/class-gallery/internal/repositories/memory"
	"github.com/orgball2608/class-gallery/internal/repositories/message"
	"github.com/orgball2608/class-gallery/internal/repositories/news"
	"github.com/orgball2608/class-gallery/internal/repositories/photo"
	"github.com/orgball2608/class-gallery/internal/repositories/setting"
	"github.com/orgball2608/class-gallery/internal/repositories/tag"
	"go.uber.org/fx"
)

var Module = fx.Options(
	photo.Module,
	memory.Module,
	tag.Module,
	news.Module,
	event.Module,
	message.Module,
	setting.Module,
)
