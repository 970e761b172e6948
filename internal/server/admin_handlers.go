package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/class-gallery/internal/admin"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

type idsRequest struct {
	IDs  []int64 `json:"ids"`
	Tags string  `json:"tags"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type memoryDetailsRequest struct {
	Title            string `json:"title"`
	ShortDescription string `json:"short_desc"`
}

type eventRequest struct {
	Title   string `json:"title"`
	DateEnd string `json:"date_end"`
}

type footerRequest struct {
	Text string `json:"text"`
}

func (s *Server) dashboard(c *gin.Context) {
	counts, err := s.admin.Dashboard(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (s *Server) storageUsage(c *gin.Context) {
	usage, err := s.admin.StorageUsage(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": usage})
}

func (s *Server) uploadPhotos(c *gin.Context) {
	files, ok := s.formFiles(c, "files")
	if !ok {
		return
	}
	if len(files) == 0 {
		s.fail(c, apperrors.NewWithCode(apperrors.CodeBadRequest, "no files uploaded"))
		return
	}

	results := s.admin.UploadPhotos(c.Request.Context(), files, admin.PhotoMeta{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        splitList(c.PostForm("tags")),
	})

	status := http.StatusCreated
	for _, r := range results {
		if r.Error != "" {
			status = http.StatusMultiStatus
			break
		}
	}
	c.JSON(status, gin.H{"results": results})
}

func (s *Server) updatePhoto(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}

	update := admin.PhotoUpdate{PhotoMeta: admin.PhotoMeta{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        splitList(c.PostForm("tags")),
	}}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		f, ok := s.toFile(c, fh)
		if !ok {
			return
		}
		update.File = &f
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeBadRequest, "invalid upload"))
		return
	}

	if err := s.admin.UpdatePhoto(c.Request.Context(), id, update); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deletePhoto(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.admin.DeletePhoto(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) bulkTags(c *gin.Context) {
	var req idsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	n, err := s.admin.BulkTags(c.Request.Context(), req.IDs, req.Tags)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (s *Server) bulkDelete(c *gin.Context) {
	var req idsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	n, err := s.admin.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *Server) addTag(c *gin.Context) {
	var req nameRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if err := s.admin.AddTag(c.Request.Context(), req.Name); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) renameTag(c *gin.Context) {
	var req nameRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if err := s.admin.RenameTag(c.Request.Context(), c.Param("name"), req.Name); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteTag(c *gin.Context) {
	if err := s.admin.DeleteTag(c.Request.Context(), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createMemory(c *gin.Context) {
	files, ok := s.formFiles(c, "files")
	if !ok {
		return
	}

	input := admin.MemoryInput{
		Title:            strings.TrimSpace(c.PostForm("title")),
		ShortDescription: c.PostForm("short_desc"),
		Visible:          c.DefaultPostForm("visible", "true") != "false",
	}
	if v := c.PostForm("order"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			s.fail(c, apperrors.NewWithCode(apperrors.CodeBadRequest, "order must be a number"))
			return
		}
		input.Order = order
	}
	if v := c.PostForm("event_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeBadRequest, "invalid event_date"))
			return
		}
		input.EventDate = &d
	}

	id, err := s.admin.CreateMemory(c.Request.Context(), input, files)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) updateMemory(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	var req memoryDetailsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if err := s.admin.UpdateMemory(c.Request.Context(), id, strings.TrimSpace(req.Title), req.ShortDescription); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteMemory(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.admin.DeleteMemory(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createNews(c *gin.Context) {
	input := admin.NewsInput{
		Title:   strings.TrimSpace(c.PostForm("title")),
		Content: c.PostForm("content"),
	}
	if v := c.PostForm("published_at"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeBadRequest, "invalid published_at"))
			return
		}
		input.PublishedAt = d
	}

	image, ok := s.optionalFile(c, "image")
	if !ok {
		return
	}

	id, err := s.admin.CreateNews(c.Request.Context(), input, image)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) deleteNews(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.admin.DeleteNews(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createEvent(c *gin.Context) {
	var req eventRequest
	if !s.bindJSON(c, &req) {
		return
	}
	d, err := parseDate(req.DateEnd)
	if err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeBadRequest, "invalid date_end"))
		return
	}

	id, err := s.admin.CreateEvent(c.Request.Context(), admin.EventInput{Title: strings.TrimSpace(req.Title), DateEnd: d})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) deleteEvent(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.admin.DeleteEvent(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteMessage(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.admin.DeleteMessage(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) saveHero(c *gin.Context) {
	image, ok := s.optionalFile(c, "image")
	if !ok {
		return
	}
	hero, err := s.admin.SaveHero(c.Request.Context(), admin.HeroInput{
		Title:    c.PostForm("title"),
		Subtitle: c.PostForm("subtitle"),
	}, image)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hero)
}

func (s *Server) saveFooter(c *gin.Context) {
	var req footerRequest
	if !s.bindJSON(c, &req) {
		return
	}
	footer, err := s.admin.SaveFooter(c.Request.Context(), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, footer)
}

func (s *Server) bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

// formFiles collects the multipart files under field. A request without a
// multipart body yields no files.
func (s *Server) formFiles(c *gin.Context, field string) ([]admin.File, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeBadRequest, "invalid multipart form"))
		return nil, false
	}

	headers := form.File[field]
	files := make([]admin.File, 0, len(headers))
	for _, fh := range headers {
		f, ok := s.toFile(c, fh)
		if !ok {
			return nil, false
		}
		files = append(files, f)
	}
	return files, true
}

// optionalFile reads a single upload that may be absent.
func (s *Server) optionalFile(c *gin.Context, field string) (*admin.File, bool) {
	fh, err := c.FormFile(field)
	switch {
	case err == nil:
		f, ok := s.toFile(c, fh)
		if !ok {
			return nil, false
		}
		return &f, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, true
	default:
		s.fail(c, apperrors.WrapWithCode(err, apperrors.CodeBadRequest, "invalid upload"))
		return nil, false
	}
}

func (s *Server) toFile(c *gin.Context, fh *multipart.FileHeader) (admin.File, bool) {
	if limit := int64(s.cfg.Limits.MaxUploadMB) << 20; limit > 0 && fh.Size > limit {
		s.fail(c, apperrors.NewWithCode(apperrors.CodeBadRequest, fmt.Sprintf("%s exceeds %d MB", fh.Filename, s.cfg.Limits.MaxUploadMB)))
		return admin.File{}, false
	}
	return admin.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}, true
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}
