package service

import (
	"context"
	"time"

	"ai-estimator-be/internal/dto"
	"ai-estimator-be/internal/entity"
	"ai-estimator-be/internal/repository/contract"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/pkg/embedding"
	"ai-estimator-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository and provider seams, shared by the
// service tests in this package.

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubOrgService struct {
	err error
}

func (s *stubOrgService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateOrganizationRequest) (*dto.CreateOrganizationResponse, error) {
	return nil, nil
}

func (s *stubOrgService) Show(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) (*dto.ShowOrganizationResponse, error) {
	return nil, nil
}

func (s *stubOrgService) ListMembers(ctx context.Context, userId uuid.UUID, orgId uuid.UUID) ([]*dto.OrganizationMemberResponse, error) {
	return nil, nil
}

func (s *stubOrgService) AddMember(ctx context.Context, userId uuid.UUID, req *dto.AddMemberRequest) (*dto.AddMemberResponse, error) {
	return nil, nil
}

func (s *stubOrgService) ResolveContext(ctx context.Context, userId uuid.UUID) (*dto.AuthContextResponse, error) {
	return nil, nil
}

func (s *stubOrgService) RequireMembership(ctx context.Context, uow unitofwork.UnitOfWork, orgId, userId uuid.UUID) (*entity.OrganizationMember, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.OrganizationMember{OrganizationId: orgId, UserId: userId}, nil
}

type stubPublisher struct {
	published [][]byte
}

func (s *stubPublisher) Publish(ctx context.Context, payload []byte) error {
	s.published = append(s.published, payload)
	return nil
}

// stubLLM replays chunks for streams and a fixed response for prompts.
// streamErr is returned after the chunks are delivered, mimicking a
// connection dropped mid-stream.
type stubLLM struct {
	chunks    []string
	streamErr error
	response  string
	genErr    error
	prompts   []string
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.genErr
}

func (s *stubLLM) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, options ...llm.Option) error {
	for _, chunk := range s.chunks {
		if err := handler(chunk); err != nil {
			return err
		}
	}
	return s.streamErr
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.genErr
}

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Generate(ctx context.Context, text string) (*embedding.EmbeddingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{Values: []float32{0.1, 0.2, 0.3}}, nil
}

type stubStore struct {
	data        []byte
	downloadErr error
}

func (s *stubStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	return nil
}

func (s *stubStore) Download(ctx context.Context, path string) ([]byte, error) {
	return s.data, s.downloadErr
}

func (s *stubStore) SignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	return "", nil
}

func (s *stubStore) SignedUploadURL(ctx context.Context, path string) (string, error) {
	return "", nil
}

func (s *stubStore) Delete(ctx context.Context, path string) error { return nil }

type statusChange struct {
	status  string
	details map[string]interface{}
}

type fakeDocumentRepo struct {
	doc      *entity.Document
	statuses []statusChange
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error { return nil }
func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error { return nil }
func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	return r.doc, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeDocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, details map[string]interface{}) error {
	r.statuses = append(r.statuses, statusChange{status: status, details: details})
	return nil
}

type fakeChunkRepo struct {
	scored    []*contract.ScoredChunk
	searchErr error
	created   []*entity.DocumentChunk
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.created = append(r.created, chunks...)
	return nil
}

func (r *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return nil, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, orgId uuid.UUID, threshold float64, section string) ([]*contract.ScoredChunk, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.scored, nil
}

type fakeConversationRepo struct {
	conv      *entity.Conversation
	related   []*entity.Conversation
	searchErr error
	updated   []*entity.Conversation
}

func (r *fakeConversationRepo) Create(ctx context.Context, conv *entity.Conversation) error {
	r.conv = conv
	return nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, conv *entity.Conversation) error {
	r.updated = append(r.updated, conv)
	return nil
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	return r.conv, nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	return nil, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeConversationRepo) Touch(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeConversationRepo) SearchRelevant(ctx context.Context, orgId uuid.UUID, query string, excludeId uuid.UUID, limit int) ([]*entity.Conversation, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.related, nil
}

type fakeMessageRepo struct {
	created []*entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *entity.Message) error {
	r.created = append(r.created, msg)
	return nil
}

func (r *fakeMessageRepo) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return r.created, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.created)), nil
}

func (r *fakeMessageRepo) FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error) {
	if len(r.created) > limit {
		return r.created[len(r.created)-limit:], nil
	}
	return r.created, nil
}

type fakeFormatRepo struct{}

func (r *fakeFormatRepo) Create(ctx context.Context, record *entity.FormatPatternRecord) error {
	return nil
}

func (r *fakeFormatRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (r *fakeFormatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FormatPatternRecord, error) {
	return nil, nil
}

func (r *fakeFormatRepo) FindByOrganizationId(ctx context.Context, orgId uuid.UUID) ([]*entity.FormatPatternRecord, error) {
	return nil, nil
}

type fakePricingRepo struct {
	records      []*entity.PricingRecord
	keywordHits  []*entity.PricingRecord
	keywordCalls [][]string
}

func (r *fakePricingRepo) Create(ctx context.Context, record *entity.PricingRecord) error {
	return nil
}

func (r *fakePricingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (r *fakePricingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PricingRecord, error) {
	return nil, nil
}

func (r *fakePricingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PricingRecord, error) {
	return r.records, nil
}

func (r *fakePricingRepo) FindByDocumentIds(ctx context.Context, orgId uuid.UUID, documentIds []uuid.UUID) ([]*entity.PricingRecord, error) {
	var out []*entity.PricingRecord
	for _, rec := range r.records {
		for _, id := range documentIds {
			if rec.DocumentId == id {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func (r *fakePricingRepo) FindByKeywords(ctx context.Context, orgId uuid.UUID, keywords []string, limit int) ([]*entity.PricingRecord, error) {
	r.keywordCalls = append(r.keywordCalls, keywords)
	if len(r.keywordHits) > limit {
		return r.keywordHits[:limit], nil
	}
	return r.keywordHits, nil
}

type fakeCompanyRepo struct{}

func (r *fakeCompanyRepo) Upsert(ctx context.Context, profile *entity.CompanyProfile) error {
	return nil
}

func (r *fakeCompanyRepo) FindByOrganizationId(ctx context.Context, orgId uuid.UUID) (*entity.CompanyProfile, error) {
	return nil, nil
}

type fakePricingProfileRepo struct{}

func (r *fakePricingProfileRepo) Upsert(ctx context.Context, profile *entity.PricingProfile) error {
	return nil
}

func (r *fakePricingProfileRepo) FindByOrganizationId(ctx context.Context, orgId uuid.UUID) (*entity.PricingProfile, error) {
	return nil, nil
}

type fakeLaborRepo struct{}

func (r *fakeLaborRepo) Create(ctx context.Context, item *entity.LaborItem) error { return nil }
func (r *fakeLaborRepo) Update(ctx context.Context, item *entity.LaborItem) error { return nil }
func (r *fakeLaborRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }

func (r *fakeLaborRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LaborItem, error) {
	return nil, nil
}

func (r *fakeLaborRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LaborItem, error) {
	return nil, nil
}

func (r *fakeLaborRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeOrgRepo struct{}

func (r *fakeOrgRepo) Create(ctx context.Context, org *entity.Organization) error { return nil }
func (r *fakeOrgRepo) Update(ctx context.Context, org *entity.Organization) error { return nil }
func (r *fakeOrgRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }

func (r *fakeOrgRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error) {
	return nil, nil
}

func (r *fakeOrgRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error) {
	return nil, nil
}

type fakeMemberRepo struct{}

func (r *fakeMemberRepo) Create(ctx context.Context, member *entity.OrganizationMember) error {
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeMemberRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrganizationMember, error) {
	return nil, nil
}

func (r *fakeMemberRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrganizationMember, error) {
	return nil, nil
}

func (r *fakeMemberRepo) FindMembership(ctx context.Context, orgId, userId uuid.UUID) (*entity.OrganizationMember, error) {
	return nil, nil
}

type fakeUow struct {
	documents *fakeDocumentRepo
	chunks    *fakeChunkRepo
	convs     *fakeConversationRepo
	messages  *fakeMessageRepo
	pricing   *fakePricingRepo
	commits   int
	rollbacks int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		documents: &fakeDocumentRepo{},
		chunks:    &fakeChunkRepo{},
		convs:     &fakeConversationRepo{},
		messages:  &fakeMessageRepo{},
		pricing:   &fakePricingRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }

func (u *fakeUow) Commit() error {
	u.commits++
	return nil
}

func (u *fakeUow) Rollback() error {
	u.rollbacks++
	return nil
}

func (u *fakeUow) OrganizationRepository() contract.OrganizationRepository {
	return &fakeOrgRepo{}
}

func (u *fakeUow) OrganizationMemberRepository() contract.OrganizationMemberRepository {
	return &fakeMemberRepo{}
}

func (u *fakeUow) CompanyProfileRepository() contract.CompanyProfileRepository {
	return &fakeCompanyRepo{}
}

func (u *fakeUow) PricingProfileRepository() contract.PricingProfileRepository {
	return &fakePricingProfileRepo{}
}

func (u *fakeUow) LaborItemRepository() contract.LaborItemRepository {
	return &fakeLaborRepo{}
}

func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return u.documents
}

func (u *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return u.chunks
}

func (u *fakeUow) FormatPatternRepository() contract.FormatPatternRepository {
	return &fakeFormatRepo{}
}

func (u *fakeUow) PricingRecordRepository() contract.PricingRecordRepository {
	return u.pricing
}

func (u *fakeUow) ConversationRepository() contract.ConversationRepository {
	return u.convs
}

func (u *fakeUow) MessageRepository() contract.MessageRepository {
	return u.messages
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}
