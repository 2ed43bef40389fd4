package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck/linkdeck/app/dto"
	apptesting "github.com/linkdeck/linkdeck/testing"
	"github.com/linkdeck/linkdeck/utils"
)

// recordingStorage captures saved files and can be told to fail.
type recordingStorage struct {
	saved   map[string][]byte
	saveErr error
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{saved: make(map[string][]byte)}
}

func (s *recordingStorage) Save(ctx context.Context, fileKey string, data []byte, contentType string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[fileKey] = data
	return nil
}

func (s *recordingStorage) Delete(ctx context.Context, fileKey string) error {
	delete(s.saved, fileKey)
	return nil
}

func (s *recordingStorage) PublicFileURL(fileKey string) string {
	return "https://cdn.test/" + fileKey
}

func uploadRequest(filename string) *dto.UploadDocumentRequest {
	return &dto.UploadDocumentRequest{
		UserID:           1,
		Title:            "Resume",
		Slug:             "resume",
		OriginalFilename: filename,
		Data:             []byte("%PDF-1.4 test"),
	}
}

func TestUploadDocumentStoresFileAndRecord(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	storage := newRecordingStorage()
	flow := NewDocumentFlow(docs, storage, 1024, nil)

	resp, err := flow.UploadDocument(context.Background(), uploadRequest("resume.pdf"))
	require.NoError(t, err)

	require.Len(t, docs.Docs, 1)
	doc := docs.Docs[0]
	assert.Equal(t, "application/pdf", doc.MimeType)
	require.NotNil(t, doc.Slug)
	assert.Equal(t, "resume", *doc.Slug)
	assert.True(t, utils.IsTrue(doc.IsActive))

	require.Len(t, storage.saved, 1)
	assert.Contains(t, resp.Document.PublicURL, "https://cdn.test/documents/1/")
}

func TestUploadDocumentTitleFallsBackToFilename(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	flow := NewDocumentFlow(docs, newRecordingStorage(), 1024, nil)

	req := uploadRequest("annual-report.pdf")
	req.Title = "  "
	req.Slug = ""

	resp, err := flow.UploadDocument(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "annual-report", resp.Document.Title)
	assert.Nil(t, resp.Document.Slug)
}

func TestUploadDocumentRejectsDisallowedExtension(t *testing.T) {
	flow := NewDocumentFlow(&apptesting.FakeDocumentRepository{}, newRecordingStorage(), 1024, nil)

	for _, filename := range []string{"evil.exe", "script.sh", "noext"} {
		_, err := flow.UploadDocument(context.Background(), uploadRequest(filename))
		require.Error(t, err, filename)
		assert.True(t, errors.Is(err, ErrInvalidFileType))
	}
}

func TestUploadDocumentRejectsOversizedFile(t *testing.T) {
	flow := NewDocumentFlow(&apptesting.FakeDocumentRepository{}, newRecordingStorage(), 4, nil)

	_, err := flow.UploadDocument(context.Background(), uploadRequest("resume.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}

func TestUploadDocumentRejectsTakenSlug(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	docs.Docs = append(docs.Docs, apptesting.NewTestDocument(1, "Old Resume", "resume"))
	flow := NewDocumentFlow(docs, newRecordingStorage(), 1024, nil)

	_, err := flow.UploadDocument(context.Background(), uploadRequest("resume.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlugTaken))
}

func TestUploadDocumentDeactivatesRecordWhenStorageFails(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	storage := newRecordingStorage()
	storage.saveErr = errors.New("bucket unavailable")
	flow := NewDocumentFlow(docs, storage, 1024, nil)

	_, err := flow.UploadDocument(context.Background(), uploadRequest("resume.pdf"))
	require.Error(t, err)
	require.Len(t, docs.Docs, 1)
	assert.False(t, utils.IsTrue(docs.Docs[0].IsActive), "record must not stay active without a stored file")
}

func TestUpdateDocumentSlugChange(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	doc := apptesting.NewTestDocument(1, "Resume", "resume")
	taken := apptesting.NewTestDocument(1, "CV", "cv")
	docs.Docs = append(docs.Docs, doc, taken)
	flow := NewDocumentFlow(docs, newRecordingStorage(), 1024, nil)

	// Moving to a free slug works
	resp, err := flow.UpdateDocument(context.Background(), 1, doc.ID, &dto.UpdateDocumentRequest{
		Slug: utils.ToPtr("My Resume 2026"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Document.Slug)
	assert.Equal(t, "my-resume-2026", *resp.Document.Slug)

	// Moving onto an occupied slug fails
	_, err = flow.UpdateDocument(context.Background(), 1, doc.ID, &dto.UpdateDocumentRequest{
		Slug: utils.ToPtr("cv"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlugTaken))
}

func TestUpdateDocumentClearsSlug(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	doc := apptesting.NewTestDocument(1, "Resume", "resume")
	docs.Docs = append(docs.Docs, doc)
	flow := NewDocumentFlow(docs, newRecordingStorage(), 1024, nil)

	resp, err := flow.UpdateDocument(context.Background(), 1, doc.ID, &dto.UpdateDocumentRequest{
		Slug: utils.ToPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Document.Slug)
}

func TestDeleteDocumentIsSoft(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	doc := apptesting.NewTestDocument(1, "Resume", "resume")
	docs.Docs = append(docs.Docs, doc)
	storage := newRecordingStorage()
	storage.saved[doc.FilePath] = []byte("data")
	flow := NewDocumentFlow(docs, storage, 1024, nil)

	require.NoError(t, flow.DeleteDocument(context.Background(), 1, doc.ID))

	require.Len(t, docs.Docs, 1)
	assert.False(t, utils.IsTrue(docs.Docs[0].IsActive))
	assert.Contains(t, storage.saved, doc.FilePath, "stored file is kept for existing direct URLs")

	// A soft-deleted document behaves as missing afterwards
	err := flow.DeleteDocument(context.Background(), 1, doc.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentNotFound))
}

func TestDocumentOwnership(t *testing.T) {
	docs := &apptesting.FakeDocumentRepository{}
	doc := apptesting.NewTestDocument(2, "Resume", "resume")
	docs.Docs = append(docs.Docs, doc)
	flow := NewDocumentFlow(docs, newRecordingStorage(), 1024, nil)

	err := flow.DeleteDocument(context.Background(), 1, doc.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentAccessDenied))

	err = flow.DeleteDocument(context.Background(), 1, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentNotFound))
}
