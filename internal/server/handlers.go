package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/class-gallery/internal/backend"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/gallery"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

type photoPage struct {
	Items   []domain.MediaItem `json:"items"`
	Page    int                `json:"page"`
	HasMore bool               `json:"has_more"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "viewers": s.hub.Active()})
}

// listPhotos serves one page of the gallery for ?page=&q=&tags=&mode=.
func (s *Server) listPhotos(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		s.fail(c, apperrors.NewWithCode(apperrors.CodeBadRequest, "page must be a positive number"))
		return
	}

	size := s.cfg.Gallery.PageSize
	if size <= 0 {
		size = gallery.DefaultPageSize
	}
	if page-1 > math.MaxInt/size {
		s.fail(c, apperrors.NewWithCode(apperrors.CodeBadRequest, "page is out of range"))
		return
	}

	var fs gallery.FilterState
	fs.ApplyChecklist(splitList(c.Query("tags")), domain.ParseTagMode(c.Query("mode")))
	fs.SetQuery(c.Query("q"))

	items, err := s.backend.ListPhotos(c.Request.Context(), domain.ListOptions{
		OrderBy: "created_at",
		Offset:  (page - 1) * size,
		Limit:   size,
		Filter:  fs.Filter(),
	})
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load photos"))
		return
	}

	c.JSON(http.StatusOK, photoPage{Items: items, Page: page, HasMore: len(items) == size})
}

func (s *Server) listMemories(c *gin.Context) {
	items, err := s.backend.ListMemories(c.Request.Context(), domain.ListOptions{OrderBy: "order", Ascending: true})
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load memories"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) getMemory(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}

	item, err := s.backend.GetMemory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeNotFound, "memory not found"))
			return
		}
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load memory"))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) listNews(c *gin.Context) {
	items, err := s.backend.ListNews(c.Request.Context(), domain.ListOptions{OrderBy: "published_at"})
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load news"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listEvents(c *gin.Context) {
	items, err := s.backend.ListEvents(c.Request.Context(), domain.ListOptions{OrderBy: "date_end", Ascending: true})
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load events"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listMessages(c *gin.Context) {
	items, err := s.backend.ListMessages(c.Request.Context(), domain.ListOptions{OrderBy: "created_at"})
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load messages"))
		return
	}
	if items == nil {
		items = []domain.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) postMessage(c *gin.Context) {
	var msg domain.Message
	if !s.bindJSON(c, &msg) {
		return
	}
	created, err := s.backend.PostMessage(c.Request.Context(), msg)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) siteSettings(c *gin.Context) {
	settings, err := s.backend.SiteSettings(c.Request.Context())
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load settings"))
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) listTags(c *gin.Context) {
	tags, err := s.backend.ListTags(c.Request.Context())
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeFetchFailed, "failed to load tags"))
		return
	}
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"items": tags})
}

func (s *Server) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.fail(c, apperrors.NewWithCode(apperrors.CodeBadRequest, "invalid id"))
		return 0, false
	}
	return id, true
}

// fail writes err as a JSON error with a status derived from its code.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)
	switch {
	case apperrors.IsNotFound(err):
		status, code = http.StatusNotFound, apperrors.CodeNotFound
	case apperrors.IsBadRequest(err):
		status, code = http.StatusBadRequest, apperrors.CodeBadRequest
	case code == apperrors.CodeFetchFailed, code == apperrors.CodeUploadFailed:
		status = http.StatusBadGateway
	}
	if code == "" {
		code = apperrors.CodeInternal
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request error", "path", c.Request.URL.Path, "code", code, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"code": code, "message": apperrors.GetMessage(err)},
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
