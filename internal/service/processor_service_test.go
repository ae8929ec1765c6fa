package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/memory"
	"ai-estimator-be/pkg/formatpattern"
	"ai-estimator-be/pkg/pricing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessorFixture(uow *fakeUow, store *stubStore) *processorService {
	svc := NewProcessorService(
		nil,
		constant.DocumentProcessTopic,
		&fakeUowFactory{uow: uow},
		store,
		&stubEmbedder{},
		formatpattern.NewExtractor(&stubLLM{}),
		pricing.NewExtractor(&stubLLM{}),
		memory.NewFormatAggregateCache(),
		nil,
		noopLogger{},
	)
	return svc.(*processorService)
}

func processMessageFor(doc *entity.Document) *message.Message {
	payload, _ := json.Marshal(dto.ProcessDocumentMessage{
		DocumentId:     doc.Id,
		OrganizationId: doc.OrganizationId,
	})
	return message.NewMessage(watermill.NewUUID(), payload)
}

func requireAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	case <-time.After(time.Second):
		t.Fatal("message was not acked")
	}
}

func textDocument() *entity.Document {
	return &entity.Document{
		Id:             uuid.New(),
		OrganizationId: uuid.New(),
		Name:           "scope.txt",
		DocType:        constant.DocumentTypeOther,
		MimeType:       "text/plain",
		StoragePath:    "org/scope.txt",
		Status:         constant.DocumentStatusPending,
	}
}

func TestProcessMessageIngestsTextDocument(t *testing.T) {
	uow := newFakeUow()
	doc := textDocument()
	uow.documents.doc = doc
	store := &stubStore{data: []byte(strings.Repeat("Hall bathroom refit scope and schedule. ", 20))}
	svc := newProcessorFixture(uow, store)

	msg := processMessageFor(doc)
	svc.processMessage(context.Background(), msg)

	requireAcked(t, msg)
	assert.NotEmpty(t, uow.chunks.created)
	assert.Equal(t, 1, uow.commits)

	require.NotEmpty(t, uow.documents.statuses)
	last := uow.documents.statuses[len(uow.documents.statuses)-1]
	assert.Equal(t, constant.DocumentStatusProcessed, last.status)
	assert.Equal(t, len(uow.chunks.created), last.details["chunks"])
}

func TestProcessMessageEmptyTextCompletesWithNote(t *testing.T) {
	uow := newFakeUow()
	doc := textDocument()
	uow.documents.doc = doc
	// A scanned image PDF or an empty file extracts to nothing.
	svc := newProcessorFixture(uow, &stubStore{data: []byte{}})

	msg := processMessageFor(doc)
	svc.processMessage(context.Background(), msg)

	requireAcked(t, msg)
	require.NotEmpty(t, uow.documents.statuses)
	last := uow.documents.statuses[len(uow.documents.statuses)-1]
	assert.Equal(t, constant.DocumentStatusProcessed, last.status)
	assert.Equal(t, 0, last.details["text_length"])
	assert.NotEmpty(t, last.details["note"])
	assert.Empty(t, uow.chunks.created)
}

func TestProcessMessageDownloadFailureMarksError(t *testing.T) {
	uow := newFakeUow()
	doc := textDocument()
	uow.documents.doc = doc
	svc := newProcessorFixture(uow, &stubStore{downloadErr: errors.New("object not found")})

	msg := processMessageFor(doc)
	svc.processMessage(context.Background(), msg)

	// The document must not stay stuck in processing.
	requireAcked(t, msg)
	require.NotEmpty(t, uow.documents.statuses)
	last := uow.documents.statuses[len(uow.documents.statuses)-1]
	assert.Equal(t, constant.DocumentStatusError, last.status)
	assert.Contains(t, last.details["reason"], "download failed")
}

func TestProcessMessageMalformedPayloadDropped(t *testing.T) {
	uow := newFakeUow()
	svc := newProcessorFixture(uow, &stubStore{})

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	svc.processMessage(context.Background(), msg)

	requireAcked(t, msg)
	assert.Empty(t, uow.documents.statuses)
}
