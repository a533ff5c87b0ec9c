// internal/server/extraction.go - AI ingredient extraction client
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"nutrition-advisor/internal/models"
)

type ExtractionClient struct {
	httpClient *http.Client
	proxyURL   string
	apiKey     string
	model      string
}

func NewExtractionClient() *ExtractionClient {
	proxyURL := os.Getenv("AI_PROXY_URL")
	if proxyURL == "" {
		proxyURL = "http://ai-gateway:9876"
	}

	apiKey := os.Getenv("AI_PROXY_API_KEY")

	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "anthropic/claude-3.5-sonnet"
	}

	return &ExtractionClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		proxyURL: proxyURL,
		apiKey:   apiKey,
		model:    model,
	}
}

// ExtractIngredients asks the AI gateway to pull {name, quantity} pairs out
// of a free-text recipe or meal description. The result is a raw guess list;
// names still go through the mapping service before any lookup.
func (c *ExtractionClient) ExtractIngredients(ctx context.Context, text string) ([]models.Ingredient, error) {
	systemPrompt := `You are a nutrition assistant that extracts ingredients from recipe text.

IMPORTANT: Always respond with valid JSON in this exact format:
{
  "ingredients": [
    {
      "name": "specific ingredient name",
      "quantity": "amount with units, or empty string if unknown"
    }
  ]
}

Keep ingredient names in the language of the input text. Do not invent
ingredients that are not mentioned.`

	userPrompt := fmt.Sprintf(`Extract all ingredients from this text: "%s"`, text)

	completionRequest := map[string]interface{}{
		"model":         c.model,
		"system_prompt": systemPrompt,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": userPrompt,
			},
		},
		"max_tokens":  1000,
		"temperature": 0.1,
	}

	gatewayResponse, err := c.callGateway(ctx, "create_completion", completionRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to get AI completion: %w", err)
	}

	return c.parseExtractionResponse(gatewayResponse)
}

func (c *ExtractionClient) callGateway(ctx context.Context, toolName string, args interface{}) (string, error) {
	url := fmt.Sprintf("%s/openrouter-gateway", c.proxyURL)

	requestData := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name":      toolName,
			"arguments": args,
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("request failed with status %d and couldn't read body: %v", resp.StatusCode, err)
		}
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var gatewayResponse map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResponse); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if result, ok := gatewayResponse["result"].(map[string]interface{}); ok {
		if content, ok := result["content"].([]interface{}); ok && len(content) > 0 {
			if textContent, ok := content[0].(map[string]interface{}); ok {
				if text, ok := textContent["text"].(string); ok {
					return text, nil
				}
			}
		}
	}

	return "", fmt.Errorf("unexpected response format")
}

func (c *ExtractionClient) parseExtractionResponse(aiOutput string) ([]models.Ingredient, error) {
	var completionResp map[string]interface{}
	content := aiOutput
	if err := json.Unmarshal([]byte(aiOutput), &completionResp); err == nil {
		if inner, ok := completionResp["content"].(string); ok {
			content = inner
		}
	}

	// Models sometimes wrap the JSON in prose or fences; cut to the braces.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in AI response")
	}

	var response struct {
		Ingredients []models.Ingredient `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &response); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return response.Ingredients, nil
}
