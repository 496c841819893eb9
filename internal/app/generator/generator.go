package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/repository"

	"github.com/sirupsen/logrus"
)

const (
	MaxTokenBudget     = 4000
	PreviewTokenBudget = 200
	DefaultTemperature = 0.7
	ApprovalThreshold  = 0.7
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrTemplateNotFound = errors.New("content template not found")
	ErrEmptyCompletion  = errors.New("llm returned empty content")
)

// Store is the persistence the generator depends on.
type Store interface {
	GetOrderByID(id uint) (*ds.Order, error)
	GetActiveTemplate(contentType string) (*ds.ContentTemplate, error)
	UpdateOrderStatus(id uint, status ds.OrderStatus) error
	SaveGeneratedContent(orderID uint, generated repository.GeneratedContent) (*ds.Content, *ds.Order, error)
}

type Settings struct {
	Model        string
	PreviewModel string
	Temperature  float64
}

func DefaultSettings() Settings {
	return Settings{
		Model:        "gpt-4",
		PreviewModel: "gpt-3.5-turbo",
		Temperature:  DefaultTemperature,
	}
}

type Generator struct {
	store    Store
	llm      LLMClient
	settings Settings
}

func New(store Store, llm LLMClient, settings Settings) *Generator {
	return &Generator{
		store:    store,
		llm:      llm,
		settings: settings,
	}
}

// Result is the persisted outcome of a generation run.
type Result struct {
	Content *ds.Content
	Order   *ds.Order
}

// TokenBudget caps completion tokens at twice the requested word count.
func TokenBudget(wordCount int) int {
	if wordCount <= 0 {
		return MaxTokenBudget
	}
	if wordCount*2 > MaxTokenBudget {
		return MaxTokenBudget
	}
	return wordCount * 2
}

// Process moves the order into progress and generates its content. On failure
// the order goes back to the status it had before the attempt.
func (g *Generator) Process(ctx context.Context, order *ds.Order) (*Result, error) {
	previous := order.Status
	if previous != ds.OrderStatusInProgress {
		if err := g.store.UpdateOrderStatus(order.ID, ds.OrderStatusInProgress); err != nil {
			return nil, err
		}
	}

	result, err := g.Generate(ctx, order.ID)
	if err != nil {
		log := logrus.WithFields(logrus.Fields{"order_id": order.ID, "status": previous})
		log.WithError(err).Error("content generation failed")
		if previous != ds.OrderStatusInProgress {
			if rerr := g.store.UpdateOrderStatus(order.ID, previous); rerr != nil {
				log.WithError(rerr).Error("failed to restore order status")
			}
		}
		return nil, err
	}
	return result, nil
}

// Generate builds the prompt for an in-progress order, calls the model and
// stores the scored result.
func (g *Generator) Generate(ctx context.Context, orderID uint) (*Result, error) {
	order, err := g.store.GetOrderByID(orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	tpl, err := g.template(order.ContentType)
	if err != nil {
		return nil, err
	}

	text, err := g.llm.Complete(ctx, Prompt{
		System:      SystemInstruction,
		User:        BuildPrompt(order, tpl),
		Model:       g.settings.Model,
		MaxTokens:   TokenBudget(order.WordCount),
		Temperature: g.settings.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("llm completion: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyCompletion
	}

	score := QualityScore(text, order.WordCount)
	content, completed, err := g.store.SaveGeneratedContent(order.ID, repository.GeneratedContent{
		Text:         text,
		Format:       ds.FormatMarkdown,
		QualityScore: score,
		Approved:     score > ApprovalThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":      order.ID,
		"quality_score": score,
		"approved":      content.IsApproved,
	}).Info("content generated")

	return &Result{Content: content, Order: completed}, nil
}

// Preview asks for a short sample of the content without persisting anything.
func (g *Generator) Preview(ctx context.Context, contentType, title, description string) (string, error) {
	tpl, err := g.template(contentType)
	if err != nil {
		return "", err
	}

	text, err := g.llm.Complete(ctx, Prompt{
		System:      PreviewSystemInstruction,
		User:        BuildPreviewPrompt(tpl, title, description),
		Model:       g.settings.PreviewModel,
		MaxTokens:   PreviewTokenBudget,
		Temperature: g.settings.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("llm completion: %w", err)
	}
	return text, nil
}

func (g *Generator) template(contentType string) (*ds.ContentTemplate, error) {
	tpl, err := g.store.GetActiveTemplate(contentType)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}
