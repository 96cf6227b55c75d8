package storage

import (
	"context"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/models"
)

// StaticLinks отдаёт постоянные ссылки из EBOOK_DOWNLOAD_LINK_V1/V2.
type StaticLinks struct {
	v1, v2 string
}

var _ EbookLinks = (*StaticLinks)(nil)

func NewStaticLinks(cfg config.DownloadsConfig) *StaticLinks {
	return &StaticLinks{v1: cfg.LinkV1, v2: cfg.LinkV2}
}

// Links возвращает ErrNoLinks, если хотя бы одна ссылка не задана.
func (s *StaticLinks) Links(_ context.Context) ([]models.DownloadLink, error) {
	if s.v1 == "" || s.v2 == "" {
		return nil, ErrNoLinks
	}

	return Bundle(s.v1, s.v2), nil
}
