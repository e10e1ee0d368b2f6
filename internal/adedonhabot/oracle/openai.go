package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/adedonha-games/adedonha/internal/adedonhabot/game"
	"github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT4oMini

// Client judges answers through the OpenAI chat API. One request covers
// one player's batch for a round; the model returns an index->verdict
// JSON object.
type Client struct {
	api   *openai.Client
	model string
}

func New(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{api: openai.NewClient(apiKey), model: model}
}

func (c *Client) ValidateBatch(ctx context.Context, letter rune, items []game.BatchItem) (map[int]bool, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(letter, items)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty response")
	}

	verdicts, err := parseVerdicts(resp.Choices[0].Message.Content, len(items))
	if err != nil {
		return nil, fmt.Errorf("parse verdicts: %w", err)
	}

	return verdicts, nil
}

const systemPrompt = `You judge answers for a categories-by-letter word game. ` +
	`For each numbered item decide whether the answer is a real, commonly known ` +
	`example of its category. Spelling slips of one letter are acceptable. ` +
	`Reply with a single JSON object mapping each item number to true or false, ` +
	`nothing else.`

func buildPrompt(letter rune, items []game.BatchItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Letter: %c\n", letter)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. category: %s, answer: %s\n", i, item.Category, item.Answer)
	}
	return b.String()
}

// parseVerdicts reads the model's JSON object, tolerating a markdown
// fence around it. Items the model skipped are left out of the map; the
// coordinator treats absent slots as invalid.
func parseVerdicts(content string, n int) (map[int]bool, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw map[string]bool
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}

	verdicts := make(map[int]bool, len(raw))
	for key, ok := range raw {
		idx, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || idx < 0 || idx >= n {
			continue
		}
		verdicts[idx] = ok
	}

	return verdicts, nil
}
