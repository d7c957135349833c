package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/ducsssanh/testflow-lab-nexus/internal/shared/storage"
	"github.com/google/uuid"
)

// DocumentService stores technical documents in the object store and their
// metadata in the database.
type DocumentService struct {
	repo  *repository.DocumentRepository
	store *storage.Client
}

func NewDocumentService(repo *repository.DocumentRepository, store *storage.Client) *DocumentService {
	return &DocumentService{repo: repo, store: store}
}

// Upload stores the file content and records the document. The object is
// written first so a storage failure leaves no dangling metadata.
func (s *DocumentService) Upload(ctx context.Context, ownerType, ownerID, name, mimeType string, size int64, content io.Reader, userID string) (*entity.TechnicalDocument, error) {
	id := uuid.New().String()[:32]
	objectKey := fmt.Sprintf("documents/%s/%s/%s-%s", ownerType, ownerID, id, name)

	if err := s.store.Put(ctx, objectKey, content, size, mimeType); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	doc := &entity.TechnicalDocument{
		ID:         id,
		OwnerType:  ownerType,
		OwnerID:    ownerID,
		Name:       name,
		Kind:       entity.DocumentKindFromMime(mimeType),
		MimeType:   mimeType,
		Size:       size,
		ObjectKey:  objectKey,
		UploadedBy: userID,
		UploadedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) ListByOwner(ctx context.Context, ownerType, ownerID string) ([]entity.TechnicalDocument, error) {
	return s.repo.FindByOwner(ctx, ownerType, ownerID)
}

// DownloadURL returns a presigned link to a stored document.
func (s *DocumentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignedURL(ctx, doc.ObjectKey, 15*time.Minute)
}
