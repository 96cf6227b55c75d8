// upload-ebooks кладёт PDF комплекта в бакет под ключами из конфигурации
// (s3.key_v1 / s3.key_v2), откуда портал раздаёт подписанные ссылки.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arsalan507/simplequran/internal/config"
	"github.com/arsalan507/simplequran/internal/storage/minio"
)

func main() {
	var (
		configPath string
		v1Path     string
		v2Path     string
		force      bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&v1Path, "v1", "simple-quran-v1.pdf", "local path to the simplified edition")
	flag.StringVar(&v2Path, "v2", "simple-quran-v2.pdf", "local path to the illustrated edition")
	flag.BoolVar(&force, "force", false, "overwrite objects that already exist")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if !cfg.S3.Enabled() {
		log.Error("s3_not_configured", slog.String("hint", "set S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY"))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := minio.New(ctx, cfg.S3)
	if err != nil {
		log.Error("s3_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	files := []struct{ local, key string }{
		{v1Path, cfg.S3.KeyV1},
		{v2Path, cfg.S3.KeyV2},
	}

	failed := 0
	for _, f := range files {
		if err := upload(ctx, st, f.local, f.key, force, log); err != nil {
			failed++
			log.Error("upload_failed",
				slog.String("file", f.local),
				slog.String("key", f.key),
				slog.String("err", err.Error()),
			)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}

	log.Info("upload_completed", slog.String("bucket", cfg.S3.Bucket))
}

func upload(ctx context.Context, st *minio.EbookStorage, local, key string, force bool, log *slog.Logger) error {
	if !force {
		exists, err := st.Exists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			log.Info("upload_skipped_exists", slog.String("key", key))
			return nil
		}
	}

	f, err := os.Open(local)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	start := time.Now()
	if err := st.Upload(ctx, key, f, info.Size()); err != nil {
		return err
	}

	log.Info("uploaded",
		slog.String("key", key),
		slog.String("size", fmt.Sprintf("%.2f MB", float64(info.Size())/1024/1024)),
		slog.Duration("dur", time.Since(start)),
	)

	return nil
}
