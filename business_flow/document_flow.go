package businessflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

var allowedDocumentExtensions = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// DocumentFlow manages uploaded documents and their public slugs
type DocumentFlow interface {
	UploadDocument(ctx context.Context, request *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	ListDocuments(ctx context.Context, userID uint) (*dto.ListDocumentsResponse, error)
	UpdateDocument(ctx context.Context, userID uint, docID uuid.UUID, request *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, userID uint, docID uuid.UUID) error
}

// DocumentFlowImpl implements the document business flow
type DocumentFlowImpl struct {
	docRepo        repository.DocumentRepository
	storageService services.StorageService
	maxUploadSize  int64
	db             *gorm.DB
}

// NewDocumentFlow creates a new document flow instance
func NewDocumentFlow(
	docRepo repository.DocumentRepository,
	storageService services.StorageService,
	maxUploadSize int64,
	db *gorm.DB,
) DocumentFlow {
	return &DocumentFlowImpl{
		docRepo:        docRepo,
		storageService: storageService,
		maxUploadSize:  maxUploadSize,
		db:             db,
	}
}

// UploadDocument validates, stores, and registers a new document
func (df *DocumentFlowImpl) UploadDocument(ctx context.Context, request *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	ext := strings.ToLower(filepath.Ext(request.OriginalFilename))
	expectedMime, ok := allowedDocumentExtensions[ext]
	if !ok {
		return nil, NewBusinessError("DOCUMENT_INVALID_TYPE", "File type is not allowed", ErrInvalidFileType)
	}
	if df.maxUploadSize > 0 && int64(len(request.Data)) > df.maxUploadSize {
		return nil, NewBusinessError("DOCUMENT_TOO_LARGE", "File exceeds the maximum allowed size", ErrFileTooLarge)
	}

	mimeType := request.MimeType
	if mimeType == "" {
		mimeType = expectedMime
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(request.OriginalFilename), ext)
	}

	var slug *string
	if s := utils.NormalizeSlug(request.Slug); s != "" {
		slug = utils.ToPtr(s)
	}

	docID := uuid.New()
	fileKey := fmt.Sprintf("documents/%d/%s%s", request.UserID, docID, ext)

	var doc *models.Document

	err := repository.WithTransaction(ctx, df.db, func(txCtx context.Context) error {
		if slug != nil {
			existing, err := df.docRepo.PublicBySlug(txCtx, request.UserID, *slug)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrSlugTaken
			}
		}

		doc = &models.Document{
			ID:         docID,
			UserID:     request.UserID,
			Title:      title,
			Filename:   filepath.Base(request.OriginalFilename),
			FilePath:   fileKey,
			FileSize:   int64(len(request.Data)),
			MimeType:   mimeType,
			Slug:       slug,
			CustomIcon: "file",
			IsPublic:   utils.ToPtr(true),
			IsActive:   utils.ToPtr(true),
		}
		return df.docRepo.Save(txCtx, doc)
	})
	if err != nil {
		return nil, NewBusinessError("DOCUMENT_UPLOAD_FAILED", "Failed to register document", err)
	}

	if err := df.storageService.Save(ctx, fileKey, request.Data, mimeType); err != nil {
		// Roll the registration back so no dangling record points at a missing file
		doc.IsActive = utils.ToPtr(false)
		_ = df.docRepo.Update(ctx, doc)
		return nil, NewBusinessError("DOCUMENT_UPLOAD_FAILED", "Failed to store document", err)
	}

	return &dto.UploadDocumentResponse{
		Message:  "Document uploaded successfully",
		Document: ToDocumentDTO(*doc, df.storageService),
	}, nil
}

// ListDocuments returns the user's active documents
func (df *DocumentFlowImpl) ListDocuments(ctx context.Context, userID uint) (*dto.ListDocumentsResponse, error) {
	docs, err := df.docRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("DOCUMENT_LIST_FAILED", "Failed to list documents", err)
	}

	docDTOs := make([]dto.DocumentDTO, 0, len(docs))
	for _, doc := range docs {
		docDTOs = append(docDTOs, ToDocumentDTO(*doc, df.storageService))
	}

	return &dto.ListDocumentsResponse{
		Message:   "Documents retrieved successfully",
		Documents: docDTOs,
	}, nil
}

// UpdateDocument applies the non-nil metadata fields of the request
func (df *DocumentFlowImpl) UpdateDocument(ctx context.Context, userID uint, docID uuid.UUID, request *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	var doc *models.Document

	err := repository.WithTransaction(ctx, df.db, func(txCtx context.Context) error {
		var err error
		doc, err = df.ownedDocument(txCtx, userID, docID)
		if err != nil {
			return err
		}

		if request.Title != nil {
			doc.Title = *request.Title
		}
		if request.Slug != nil {
			if s := utils.NormalizeSlug(*request.Slug); s != "" {
				if doc.Slug == nil || *doc.Slug != s {
					existing, err := df.docRepo.PublicBySlug(txCtx, userID, s)
					if err != nil {
						return err
					}
					if existing != nil && existing.ID != doc.ID {
						return ErrSlugTaken
					}
					doc.Slug = utils.ToPtr(s)
				}
			} else {
				doc.Slug = nil
			}
		}
		if request.CustomIcon != nil {
			doc.CustomIcon = *request.CustomIcon
		}
		if request.IsPublic != nil {
			doc.IsPublic = request.IsPublic
		}

		return df.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		if be, ok := err.(*BusinessError); ok {
			return nil, be
		}
		return nil, NewBusinessError("DOCUMENT_UPDATE_FAILED", "Failed to update document", err)
	}

	return &dto.DocumentResponse{
		Message:  "Document updated successfully",
		Document: ToDocumentDTO(*doc, df.storageService),
	}, nil
}

// DeleteDocument soft-deletes an owned document. The stored file is kept so
// existing direct URLs keep working until a cleanup job removes it.
func (df *DocumentFlowImpl) DeleteDocument(ctx context.Context, userID uint, docID uuid.UUID) error {
	doc, err := df.ownedDocument(ctx, userID, docID)
	if err != nil {
		return err
	}

	doc.IsActive = utils.ToPtr(false)
	if err := df.docRepo.Update(ctx, doc); err != nil {
		return NewBusinessError("DOCUMENT_DELETE_FAILED", "Failed to delete document", err)
	}
	return nil
}

func (df *DocumentFlowImpl) ownedDocument(ctx context.Context, userID uint, docID uuid.UUID) (*models.Document, error) {
	doc, err := df.docRepo.ByUUID(ctx, docID)
	if err != nil {
		return nil, NewBusinessError("DOCUMENT_LOOKUP_FAILED", "Failed to lookup document", err)
	}
	if doc == nil || !utils.IsTrue(doc.IsActive) {
		return nil, NewBusinessError("DOCUMENT_NOT_FOUND", "Document not found", ErrDocumentNotFound)
	}
	if doc.UserID != userID {
		return nil, NewBusinessError("DOCUMENT_ACCESS_DENIED", "Document access denied", ErrDocumentAccessDenied)
	}
	return doc, nil
}
