package main

import (
	"context"
	"fmt"
	"strings"

	"petcare/internal/adapters/auth/identitytoolkit"
	blobmem "petcare/internal/adapters/blob/memory"
	blobs3 "petcare/internal/adapters/blob/s3"
	"petcare/internal/adapters/diagnosis/gemini"
	"petcare/internal/adapters/docstore/firestore"
	"petcare/internal/adapters/docstore/memory"
	"petcare/internal/adapters/docstore/sqldoc"
	"petcare/internal/platform/config"
	"petcare/internal/platform/logger"
	"petcare/internal/platform/metrics"
	"petcare/internal/ports/auth"
	"petcare/internal/ports/blob"
	"petcare/internal/ports/diagnosis"
	"petcare/internal/ports/docstore"
)

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
}

// openStore abre el document store del driver configurado. Los drivers SQL
// aplican las migraciones al abrir.
func openStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.DocStore.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite", "postgres":
		d, err := sqldoc.DialectByName(cfg.DocStore.Driver)
		if err != nil {
			return nil, err
		}
		db, err := sqldoc.Open(d, cfg.DocStore.DSN)
		if err != nil {
			return nil, err
		}
		if err := sqldoc.Migrate(ctx, db, d); err != nil {
			_ = db.Close()
			return nil, err
		}
		return sqldoc.New(db, d, sqldoc.WithPollInterval(cfg.PollInterval())), nil
	case "firestore":
		return firestore.Open(ctx, firestore.Config{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
		})
	default:
		return nil, fmt.Errorf("unknown docstore driver %q", cfg.DocStore.Driver)
	}
}

// Los opcionales devuelven nil si no están configurados; el router los trata como ausentes.

func newIdentity(cfg *config.Config, m *metrics.Metrics) (auth.IdentityProvider, auth.AuthVerifier, error) {
	if strings.TrimSpace(cfg.Identity.APIKey) == "" {
		return nil, nil, nil
	}
	client, err := identitytoolkit.NewClient(identitytoolkit.Config{
		BaseURL: cfg.Identity.BaseURL,
		APIKey:  cfg.Identity.APIKey,
		Timeout: cfg.IdentityTimeout(),
		Metrics: m,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, identitytoolkit.NewVerifier(client), nil
}

func newAssistant(ctx context.Context, cfg *config.Config, log logger.Logger) (diagnosis.Assistant, error) {
	if strings.TrimSpace(cfg.Diagnosis.APIKey) == "" {
		return nil, nil
	}
	return gemini.New(ctx, gemini.Config{
		APIKey:     cfg.Diagnosis.APIKey,
		Model:      cfg.Diagnosis.Model,
		BaseURL:    cfg.Diagnosis.BaseURL,
		Structured: cfg.Diagnosis.Structured,
	}, gemini.WithLogger(log))
}

func newArchive(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.Blob.Driver {
	case "":
		return nil, nil
	case "memory":
		return blobmem.New(), nil
	case "s3":
		return blobs3.New(ctx, blobs3.Config{
			Bucket:          cfg.Blob.S3.Bucket,
			Region:          cfg.Blob.S3.Region,
			Endpoint:        cfg.Blob.S3.Endpoint,
			PathStyle:       cfg.Blob.S3.PathStyle,
			AccessKeyID:     cfg.Blob.S3.AccessKeyID,
			SecretAccessKey: cfg.Blob.S3.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
}
