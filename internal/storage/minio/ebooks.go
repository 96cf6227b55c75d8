package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	mclient "github.com/minio/minio-go/v7"

	"github.com/arsalan507/simplequran/internal/models"
	"github.com/arsalan507/simplequran/internal/storage"
)

// ContentTypePDF — тип загружаемых файлов.
const ContentTypePDF = "application/pdf"

// Links подписывает GET-ссылки на оба PDF на cfg.PresignTTL.
func (s *EbookStorage) Links(ctx context.Context) ([]models.DownloadLink, error) {
	const op = "storage.minio.Links"

	v1, err := s.presign(ctx, s.cfg.KeyV1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v2, err := s.presign(ctx, s.cfg.KeyV2)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return storage.Bundle(v1, v2), nil
}

func (s *EbookStorage) presign(ctx context.Context, key string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))

	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL, params)
	if err != nil {
		return "", err
	}

	return u.String(), nil
}

// Upload кладёт PDF в бакет под ключом key.
func (s *EbookStorage) Upload(ctx context.Context, key string, r io.Reader, size int64) error {
	const op = "storage.minio.Upload"

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, size, mclient.PutObjectOptions{
		ContentType: ContentTypePDF,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Exists проверяет наличие объекта.
func (s *EbookStorage) Exists(ctx context.Context, key string) (bool, error) {
	const op = "storage.minio.Exists"

	_, err := s.client.StatObject(ctx, s.cfg.Bucket, key, mclient.StatObjectOptions{})
	if err != nil {
		resp := mclient.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}
