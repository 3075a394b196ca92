// Package llm implements the AI-assisted content analyzer on the Anthropic
// Claude API, with a static fallback for when the API is unavailable.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitescore/internal/common"
	"github.com/ternarybob/sitescore/internal/interfaces"
	"github.com/ternarybob/sitescore/internal/models"
	"github.com/ternarybob/sitescore/internal/retry"
	"github.com/ternarybob/sitescore/internal/services/semantic"
)

// Service calls Claude for content quality assessment
type Service struct {
	config common.ClaudeConfig
	client anthropic.Client
	policy *retry.Policy
	logger arbor.ILogger
}

var _ interfaces.ContentAnalyzer = (*Service)(nil)

// NewService creates a Claude-backed content analyzer. An empty API key is
// allowed; calls will fail and callers degrade to FallbackAnalysis.
func NewService(config common.ClaudeConfig, logger arbor.ILogger) *Service {
	if config.Model == "" {
		config.Model = "claude-sonnet-4-20250514"
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 4096
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.APIKey),
	)

	logger.Debug().
		Str("model", config.Model).
		Int("max_tokens", config.MaxTokens).
		Msg("Claude content analyzer initialized")

	return &Service{
		config: config,
		client: client,
		policy: retry.NewPolicyWithAttempts(2),
		logger: logger,
	}
}

// analysisResponse is the JSON shape requested from the model
type analysisResponse struct {
	ContentGaps      []string `json:"content_gaps"`
	TopicCoverage    float64  `json:"topic_coverage"`
	ContentDepth     float64  `json:"content_depth"`
	ExpertiseSignals []string `json:"expertise_signals"`
}

const systemPrompt = `You are a content quality analyst. You respond with a single JSON object and nothing else. No markdown, no prose.`

// AnalyzeContentQuality asks Claude to assess content depth, topic coverage,
// and gaps for the target keywords. Returns an error when the API key is
// missing or the call fails after retries; callers should substitute
// FallbackAnalysis in that case.
func (s *Service) AnalyzeContentQuality(ctx context.Context, page *models.PageContent, keywords []string) (*models.ContentQualityAnalysis, error) {
	if s.config.APIKey == "" {
		return nil, fmt.Errorf("content analysis unavailable: no API key configured")
	}

	prompt := buildPrompt(page, keywords)

	var responseText string
	err := s.policy.Do(ctx, s.logger, "claude_content_analysis", func() error {
		start := time.Now()

		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(s.config.Model),
			MaxTokens: int64(s.config.MaxTokens),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
		}
		if s.config.Temperature > 0 {
			params.Temperature = anthropic.Float(float64(s.config.Temperature))
		}

		resp, err := s.client.Messages.New(ctx, params)
		if err != nil {
			return fmt.Errorf("claude api call failed: %w", err)
		}

		var text strings.Builder
		for _, block := range resp.Content {
			if block.Type == "text" {
				text.WriteString(block.Text)
			}
		}
		if text.Len() == 0 {
			return fmt.Errorf("empty response from claude api")
		}
		responseText = text.String()

		s.logger.Debug().
			Str("url", page.URL).
			Int("response_length", text.Len()).
			Dur("duration", time.Since(start)).
			Msg("Content analysis completed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	parsed, err := parseResponse(responseText)
	if err != nil {
		return nil, err
	}

	analysis := baseAnalysis(page, keywords)
	analysis.ContentGaps = parsed.ContentGaps
	analysis.TopicCoverage = clampPercent(parsed.TopicCoverage)
	analysis.ContentDepth = clampPercent(parsed.ContentDepth)
	analysis.ExpertiseSignals = parsed.ExpertiseSignals
	return analysis, nil
}

// FallbackAnalysis builds a deterministic analysis from extracted page data
// alone, marked Degraded.
func FallbackAnalysis(page *models.PageContent, keywords []string) *models.ContentQualityAnalysis {
	analysis := baseAnalysis(page, keywords)
	analysis.TopicCoverage = semantic.TopicCoverage(page.Text, keywords)
	analysis.ContentDepth = depthFromWordCount(page.WordCount)
	analysis.Degraded = true
	return analysis
}

// baseAnalysis fills the locally computable fields
func baseAnalysis(page *models.PageContent, keywords []string) *models.ContentQualityAnalysis {
	return &models.ContentQualityAnalysis{
		WordCount:             page.WordCount,
		HeadingStructureScore: headingStructureScore(page),
		KeywordDensity:        semantic.DensityProfile(page.Text, keywords),
	}
}

func headingStructureScore(page *models.PageContent) float64 {
	score := 0.0
	if page.H1Count() == 1 {
		score += 50
	}
	if page.HeadingCount(2) >= 2 {
		score += 25
	}
	if page.HasLogicalHeadingFlow() {
		score += 25
	}
	return score
}

func depthFromWordCount(wordCount int) float64 {
	switch {
	case wordCount >= 2000:
		return 90
	case wordCount >= 1000:
		return 75
	case wordCount >= 500:
		return 60
	case wordCount >= 300:
		return 45
	default:
		return 25
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func buildPrompt(page *models.PageContent, keywords []string) string {
	content := page.Markdown
	if content == "" {
		content = page.Text
	}
	// Bound the prompt so long pages do not blow past the token budget
	const maxContentChars = 20000
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var b strings.Builder
	b.WriteString("Assess the following page content for the target keywords.\n")
	b.WriteString("Target keywords: ")
	b.WriteString(strings.Join(keywords, ", "))
	b.WriteString("\n\nRespond with JSON matching this schema:\n")
	b.WriteString(`{"content_gaps": ["missing subtopic", ...], "topic_coverage": 0-100, "content_depth": 0-100, "expertise_signals": ["signal", ...]}`)
	b.WriteString("\n\nPage title: ")
	b.WriteString(page.Title)
	b.WriteString("\n\nContent:\n")
	b.WriteString(content)
	return b.String()
}

// parseResponse extracts the JSON object from the model response, tolerating
// code fences.
func parseResponse(text string) (*analysisResponse, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("malformed analysis response: no JSON object found")
	}

	var parsed analysisResponse
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	return &parsed, nil
}
