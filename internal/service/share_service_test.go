package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiltdex-be/internal/dto"
	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/pkg/serverutils"
	"quiltdex-be/internal/repository/memory"
	"quiltdex-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatternRepo struct {
	pattern *entity.Pattern
}

func (f *fakePatternRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Pattern, error) {
	return f.pattern, nil
}

func (f *fakePatternRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Pattern, error) {
	return nil, nil
}

func (f *fakePatternRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakePatternRepo) TextSearch(_ context.Context, _ []string, _ int) ([]*entity.Pattern, error) {
	return nil, nil
}

func (f *fakePatternRepo) SearchSemantic(_ context.Context, _ []float32, _ float64, _ int) ([]*entity.ScoredPattern, error) {
	return nil, nil
}

type fakeShareRepo struct {
	link        *entity.ShareLink
	createdLink *entity.ShareLink
	feedback    []*entity.PatternFeedback
	feedbackErr error
}

func (f *fakeShareRepo) CreateLink(_ context.Context, link *entity.ShareLink) error {
	f.createdLink = link
	return nil
}

func (f *fakeShareRepo) FindLink(_ context.Context, _ ...specification.Specification) (*entity.ShareLink, error) {
	return f.link, nil
}

func (f *fakeShareRepo) CreateFeedback(_ context.Context, fb *entity.PatternFeedback) error {
	if f.feedbackErr != nil {
		return f.feedbackErr
	}
	f.feedback = append(f.feedback, fb)
	return nil
}

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

func newShareService(patterns *fakePatternRepo, shares *fakeShareRepo) IShareService {
	return NewShareService(patterns, shares, memory.NewIdempotencyRepository(), nil, "https://quiltdex.example", testLogger{})
}

func TestCreateShare(t *testing.T) {
	patterns := &fakePatternRepo{pattern: &entity.Pattern{Id: 42, FileName: "rose3.qli"}}
	shares := &fakeShareRepo{}
	svc := newShareService(patterns, shares)

	days := 7
	res, err := svc.CreateShare(context.Background(), uuid.New(), &dto.CreateShareRequest{
		PatternId:     42,
		ExpiresInDays: &days,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "https://quiltdex.example/shared/"+res.Token, res.URL)
	require.NotNil(t, res.ExpiresAt)
	require.NotNil(t, shares.createdLink)
	assert.Equal(t, int64(42), shares.createdLink.PatternId)
}

func TestCreateShareUnknownPattern(t *testing.T) {
	svc := newShareService(&fakePatternRepo{}, &fakeShareRepo{})

	_, err := svc.CreateShare(context.Background(), uuid.New(), &dto.CreateShareRequest{PatternId: 99})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", string(appErr.Code))
}

func TestResolveShareExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	shares := &fakeShareRepo{link: &entity.ShareLink{
		PatternId: 42,
		Token:     "tok",
		ExpiresAt: &past,
	}}
	svc := newShareService(&fakePatternRepo{pattern: &entity.Pattern{Id: 42}}, shares)

	_, err := svc.ResolveShare(context.Background(), "tok")
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", string(appErr.Code))
}

func TestSubmitFeedbackIdempotent(t *testing.T) {
	shares := &fakeShareRepo{link: &entity.ShareLink{PatternId: 42, Token: "tok"}}
	svc := newShareService(&fakePatternRepo{pattern: &entity.Pattern{Id: 42}}, shares)

	req := &dto.SubmitFeedbackRequest{
		AuthorName: "Dana",
		Comment:    "Stitched beautifully",
		Rating:     5,
		ClientKey:  "abc-123",
	}

	first, err := svc.SubmitFeedback(context.Background(), "tok", req)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	// Same client key again: the original id comes back, no second row.
	second, err := svc.SubmitFeedback(context.Background(), "tok", req)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Id, second.Id)
	assert.Len(t, shares.feedback, 1)
}

func TestSubmitFeedbackWithoutClientKey(t *testing.T) {
	shares := &fakeShareRepo{link: &entity.ShareLink{PatternId: 42, Token: "tok"}}
	svc := newShareService(&fakePatternRepo{pattern: &entity.Pattern{Id: 42}}, shares)

	req := &dto.SubmitFeedbackRequest{AuthorName: "Dana", Rating: 4}

	for i := 0; i < 2; i++ {
		res, err := svc.SubmitFeedback(context.Background(), "tok", req)
		require.NoError(t, err)
		assert.False(t, res.Duplicate)
	}
	assert.Len(t, shares.feedback, 2, "no key means no dedup")
}

func TestSubmitFeedbackStoreFailure(t *testing.T) {
	shares := &fakeShareRepo{
		link:        &entity.ShareLink{PatternId: 42, Token: "tok"},
		feedbackErr: errors.New("insert failed"),
	}
	svc := newShareService(&fakePatternRepo{pattern: &entity.Pattern{Id: 42}}, shares)

	_, err := svc.SubmitFeedback(context.Background(), "tok", &dto.SubmitFeedbackRequest{
		AuthorName: "Dana",
		Rating:     3,
		ClientKey:  "k1",
	})
	require.Error(t, err)

	// A failed insert must not poison the idempotency cache.
	shares.feedbackErr = nil
	res, err := svc.SubmitFeedback(context.Background(), "tok", &dto.SubmitFeedbackRequest{
		AuthorName: "Dana",
		Rating:     3,
		ClientKey:  "k1",
	})
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
}
