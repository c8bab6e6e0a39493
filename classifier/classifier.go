// Package classifier asks a vision model what kind and how much waste a photo shows.
package classifier

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"safaisync-be/models"

	"github.com/sashabaranov/go-openai"
)

var ErrClassificationIncomplete = errors.New("classification incomplete")

const prompt = "Analyse this photo in exactly 3 lines:\n" +
	"1. In 10-15 words, describe what the photo shows (e.g. 'Plastic bottles, paper and household waste by the roadside.'). Mention stagnant water, drains, nearby hospitals, schools or animals if visible.\n" +
	"2. The waste type(s) seen, comma separated, ONLY from: 'Household (Gharelu Kachra)', 'Construction Debris (Imarati Malba)', 'Plastic Waste', 'Organic (Gali Sarri Cheezein)', 'Other (Deegar)'.\n" +
	"3. The amount of waste, ONLY one of: 'Small (Chota Dher)', 'Medium (Darmiyana Dher)', 'Large (Bohot Bara Dher)'."

// Client classifies waste photos with an OpenAI vision model.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// NewClientWithConfig is used when the API base URL must be overridden.
func NewClientWithConfig(cfg openai.ClientConfig, model string) *Client {
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Classify returns the raw three-line analysis for image.
func (c *Client) Classify(ctx context.Context, image []byte) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(image), base64.StdEncoding.EncodeToString(image))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
		MaxTokens: 200,
	})
	if err != nil {
		return "", fmt.Errorf("classification request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrClassificationIncomplete)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ParseAnalysis splits a classifier response into description, waste type
// and amount. Blank lines are ignored; fewer than three remaining lines or an
// unrecognised amount label is ErrClassificationIncomplete.
func ParseAnalysis(text string) (*models.WasteAnalysis, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if l := cleanLine(line); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: got %d of 3 lines", ErrClassificationIncomplete, len(lines))
	}

	amount, ok := models.ParseWasteAmount(lines[2])
	if !ok {
		return nil, fmt.Errorf("%w: unknown amount %q", ErrClassificationIncomplete, lines[2])
	}

	return &models.WasteAnalysis{
		Description: lines[0],
		WasteType:   lines[1],
		Amount:      amount,
		AmountLabel: lines[2],
	}, nil
}

// cleanLine trims whitespace and a leading "1." style list marker.
func cleanLine(line string) string {
	l := strings.TrimSpace(line)
	if len(l) > 2 && l[0] >= '1' && l[0] <= '9' && (l[1] == '.' || l[1] == ')') {
		l = strings.TrimSpace(l[2:])
	}
	return l
}
