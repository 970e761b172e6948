package backendimpl

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/orgball2608/class-gallery/internal/domain"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

const (
	maxNameLength    = 60
	maxMessageLength = 1000
)

func (b *BackendImpl) ListMessages(ctx context.Context, opts domain.ListOptions) ([]domain.Message, error) {
	rows, err := query(ctx, b, "list messages", func() ([]*domain.Message, error) {
		return b.messages.List(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row)
	}
	return items, nil
}

func (b *BackendImpl) PostMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	msg.Sender = strings.TrimSpace(msg.Sender)
	msg.Recipient = strings.TrimSpace(msg.Recipient)
	msg.Content = strings.TrimSpace(msg.Content)

	if msg.Sender == "" || msg.Recipient == "" || msg.Content == "" {
		return nil, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "sender, recipient and message are required")
	}
	if utf8.RuneCountInString(msg.Sender) > maxNameLength || utf8.RuneCountInString(msg.Recipient) > maxNameLength {
		return nil, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest,
			fmt.Sprintf("names are limited to %d characters", maxNameLength))
	}
	if utf8.RuneCountInString(msg.Content) > maxMessageLength {
		return nil, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest,
			fmt.Sprintf("message is limited to %d characters", maxMessageLength))
	}

	created, err := b.messages.Create(ctx, domain.Message{
		Sender:    msg.Sender,
		Recipient: msg.Recipient,
		Content:   msg.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	return created, nil
}

func (b *BackendImpl) SiteSettings(ctx context.Context) (domain.SiteSettings, error) {
	raw, err := query(ctx, b, "site settings", func() (map[string][]byte, error) {
		return b.settings.All(ctx)
	})
	if err != nil {
		return domain.SiteSettings{}, err
	}

	settings, err := domain.DecodeSiteSettings(raw)
	if err != nil {
		b.logger.Warn("Ignoring malformed site settings", "error", err)
	}
	if img := settings.Hero.Image; img != nil && img.URL == "" {
		img.URL = b.storage.PublicURL(domain.BucketPhotos, img.Path)
	}
	return settings, nil
}
