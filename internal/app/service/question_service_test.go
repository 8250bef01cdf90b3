package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikkim/shopit-client/internal/app/model"
)

func TestQuestionServiceCreate(t *testing.T) {
	_, client := setupServiceTest(t)
	svc := NewQuestionService(client)

	created, err := svc.CreateQuestion(context.Background(), QuestionInput{
		Title:   "배송 문의드립니다",
		Content: "주문한 상품이 아직 안 왔어요.",
		Author:  "user@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.QuestionStatusPending, created.Status)
	assert.Equal(t, "user@example.com", created.Author)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestQuestionServiceCreateRequiresAuthor(t *testing.T) {
	_, client := setupServiceTest(t)
	svc := NewQuestionService(client)

	_, err := svc.CreateQuestion(context.Background(), QuestionInput{
		Title:   "제목",
		Content: "내용",
	})
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestQuestionServiceSearch(t *testing.T) {
	_, client := setupServiceTest(t)
	svc := NewQuestionService(client)
	ctx := context.Background()

	_, err := svc.CreateQuestion(ctx, QuestionInput{
		Title: "배송 문의", Content: "언제 오나요", Author: "a@example.com",
	})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, QuestionInput{
		Title: "환불 문의", Content: "환불해주세요", Author: "b@example.com",
	})
	require.NoError(t, err)

	all, err := svc.GetQuestions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.GetQuestions(ctx, "배송")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "배송 문의", matched[0].Title)
}

func TestQuestionServiceUpdateKeepsUntouchedFields(t *testing.T) {
	_, client := setupServiceTest(t)
	svc := NewQuestionService(client)
	ctx := context.Background()

	created, err := svc.CreateQuestion(ctx, QuestionInput{
		Title:   "원래 제목",
		Content: "원래 내용",
		Author:  "user@example.com",
		Files: []model.QuestionFile{
			{Key: "abc.png", OriginalName: "스크린샷.png"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateQuestion(ctx, created.ID, QuestionInput{
		Title:   "수정된 제목",
		Content: "수정된 내용",
	})

	require.NoError(t, err)
	assert.Equal(t, "수정된 제목", updated.Title)
	assert.Equal(t, "수정된 내용", updated.Content)
	// Author, status and attachments ride along the full-document PUT.
	assert.Equal(t, "user@example.com", updated.Author)
	assert.Equal(t, created.Status, updated.Status)
	require.Len(t, updated.Files, 1)
	assert.Equal(t, "abc.png", updated.Files[0].Key)
}

func TestQuestionServiceDelete(t *testing.T) {
	_, client := setupServiceTest(t)
	svc := NewQuestionService(client)
	ctx := context.Background()

	created, err := svc.CreateQuestion(ctx, QuestionInput{
		Title: "삭제할 글", Content: "내용", Author: "user@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuestion(ctx, created.ID))

	_, err = svc.GetQuestion(ctx, created.ID)
	assert.Error(t, err)
}
