package service

import (
	"context"
	"net/url"
	"time"

	"github.com/ikkim/shopit-client/internal/api"
	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/pkg/logger"
)

// QuestionInput QnA 게시글 작성/수정 데이터
type QuestionInput struct {
	Title   string               `json:"title"`
	Content string               `json:"content"`
	Author  string               `json:"author"`
	Files   []model.QuestionFile `json:"files,omitempty"`
}

type QuestionService interface {
	GetQuestions(ctx context.Context, search string) ([]model.Question, error)
	GetQuestion(ctx context.Context, id string) (*model.Question, error)
	CreateQuestion(ctx context.Context, input QuestionInput) (*model.Question, error)
	UpdateQuestion(ctx context.Context, id string, input QuestionInput) (*model.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
}

type questionService struct {
	client *api.Client
}

func NewQuestionService(client *api.Client) QuestionService {
	return &questionService{client: client}
}

func (s *questionService) GetQuestions(ctx context.Context, search string) ([]model.Question, error) {
	params := url.Values{}
	if search != "" {
		params.Set("q", search)
	}

	body, err := s.client.Get(ctx, "/questions", params)
	if err != nil {
		logger.Error("Failed to fetch questions", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}

	var questions []model.Question
	if err := api.DecodeJSON(body, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	body, err := s.client.Get(ctx, "/questions/"+url.PathEscape(id), nil)
	if err != nil {
		logger.Error("Failed to fetch question", err, map[string]interface{}{
			"question_id": id,
		})
		return nil, err
	}

	var question model.Question
	if err := api.DecodeJSON(body, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, input QuestionInput) (*model.Question, error) {
	if input.Author == "" {
		return nil, ErrLoginRequired
	}

	logger.Info("Creating question", map[string]interface{}{
		"author": input.Author,
		"title":  input.Title,
	})

	now := time.Now()
	payload := model.Question{
		Title:     input.Title,
		Content:   input.Content,
		Author:    input.Author,
		Status:    model.QuestionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		Files:     input.Files,
	}

	body, err := s.client.Post(ctx, "/questions", payload)
	if err != nil {
		logger.Error("Failed to create question", err, map[string]interface{}{
			"author": input.Author,
		})
		return nil, err
	}

	var created model.Question
	if err := api.DecodeJSON(body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, id string, input QuestionInput) (*model.Question, error) {
	logger.Info("Updating question", map[string]interface{}{
		"question_id": id,
	})

	existing, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	// PUT replaces the document, so unchanged fields ride along.
	existing.Title = input.Title
	existing.Content = input.Content
	if len(input.Files) > 0 {
		existing.Files = input.Files
	}
	existing.UpdatedAt = time.Now()

	body, err := s.client.Put(ctx, "/questions/"+url.PathEscape(id), existing)
	if err != nil {
		logger.Error("Failed to update question", err, map[string]interface{}{
			"question_id": id,
		})
		return nil, err
	}

	var updated model.Question
	if err := api.DecodeJSON(body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id string) error {
	logger.Info("Deleting question", map[string]interface{}{
		"question_id": id,
	})

	if _, err := s.client.Delete(ctx, "/questions/"+url.PathEscape(id)); err != nil {
		logger.Error("Failed to delete question", err, map[string]interface{}{
			"question_id": id,
		})
		return err
	}
	return nil
}
