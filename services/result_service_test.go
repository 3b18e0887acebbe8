package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapi/models"
)

type fakeCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := f.entries[key]
	if !ok {
		return nil, errCacheMiss
	}
	return data, nil
}

func sampleDetail() *models.QuizResultDetail {
	return &models.QuizResultDetail{
		QuizID:     7,
		UserEmail:  "user@example.com",
		UserScore:  1,
		MaxScore:   2,
		FinishedAt: fixedTime,
		Answers: []models.ResultAnswer{
			{QuestionID: 1, UserAnswerID: 1, CorrectAnswerID: 1, IsCorrect: true},
			{QuestionID: 2, UserAnswerID: 9, CorrectAnswerID: 3, IsCorrect: false},
		},
	}
}

func TestResultCacheKey_Deterministic(t *testing.T) {
	key := ResultCacheKey("user@example.com", 7, fixedTime)
	again := ResultCacheKey("user@example.com", 7, fixedTime)
	assert.Equal(t, key, again)
	assert.Equal(t, "user@example.com:::7:::2026-03-14T15:09:26.535898Z", key)
}

func TestResultCacheKey_SensitiveToEveryInput(t *testing.T) {
	base := ResultCacheKey("user@example.com", 7, fixedTime)

	assert.NotEqual(t, base, ResultCacheKey("other@example.com", 7, fixedTime))
	assert.NotEqual(t, base, ResultCacheKey("user@example.com", 8, fixedTime))
	assert.NotEqual(t, base, ResultCacheKey("user@example.com", 7, fixedTime.Add(time.Microsecond)))
}

func TestResultCacheKey_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t,
		ResultCacheKey("user@example.com", 7, fixedTime),
		ResultCacheKey("user@example.com", 7, fixedTime.In(loc)))
}

func TestWriteDetailToCache_RoundTrip(t *testing.T) {
	cache := newFakeCache()
	service := &ResultService{cache: cache}
	detail := sampleDetail()

	require.NoError(t, service.writeDetailToCache(context.Background(), detail))

	key := ResultCacheKey(detail.UserEmail, detail.QuizID, detail.FinishedAt)
	data, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, resultDetailTTL, cache.ttls[key])

	var loaded models.QuizResultDetail
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, *detail, loaded)
}

func TestWriteDetailToCache_SecondAttemptSameMicrosecondOverwrites(t *testing.T) {
	cache := newFakeCache()
	service := &ResultService{cache: cache}

	first := sampleDetail()
	second := sampleDetail()
	second.UserScore = 2
	second.Answers[1].IsCorrect = true

	require.NoError(t, service.writeDetailToCache(context.Background(), first))
	require.NoError(t, service.writeDetailToCache(context.Background(), second))

	// Same user, quiz and timestamp share a key; last write wins.
	assert.Len(t, cache.entries, 1)

	data, err := cache.Get(context.Background(), ResultCacheKey(first.UserEmail, first.QuizID, first.FinishedAt))
	require.NoError(t, err)
	var loaded models.QuizResultDetail
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, 2, loaded.UserScore)
}

func TestCacheGet_MissIsDistinctError(t *testing.T) {
	cache := newFakeCache()
	_, err := cache.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, errCacheMiss))
}

func TestExportResultDetail(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv-files")
	service := &ResultService{exportDir: dir}
	detail := sampleDetail()

	path, err := service.ExportResultDetail(detail)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"quiz_id;user_email;user_score;max_score;question_id;user_answer_id;correct_answer_id;is_correct;finished_at",
		lines[0])
	// The legacy format writes correct_answer_id twice; the is_correct
	// column never held the flag.
	assert.Equal(t, "7;user@example.com;1;2;1;1;1;1;2026-03-14T15:09:26.535898Z", lines[1])
	assert.Equal(t, "7;user@example.com;1;2;2;9;3;3;2026-03-14T15:09:26.535898Z", lines[2])
}

func TestExportResultDetail_ReplacesPreviousExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv-files")
	service := &ResultService{exportDir: dir}

	first, err := service.ExportResultDetail(sampleDetail())
	require.NoError(t, err)
	second, err := service.ExportResultDetail(sampleDetail())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
