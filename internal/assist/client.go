// Package assist adapts the external text-completion service behind the
// icebreaker, profile-advice, and compatibility features.
//
// The service is untrusted: every failure mode (timeout, HTTP error,
// malformed payload) is recovered locally with a canned fallback. Callers
// never see an error, only usable text.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/soulai-app/soulai/internal/config"
	"github.com/soulai-app/soulai/internal/domain"
	svcErr "github.com/soulai-app/soulai/internal/errors"
)

// Safe fallbacks, returned whenever the service fails or misbehaves.
const (
	FallbackIcebreaker = "Hey! I really liked your profile. How's your day going?"
	FallbackAdvice     = "Could not get advice at this time."
	adviceWhenEmpty    = "Your profile looks great! Maybe add more specifics about your hobbies."

	maxIcebreakers = 3
)

// Compatibility is the structured result of the compatibility check.
type Compatibility struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// FallbackCompatibility is returned when the call itself fails.
func FallbackCompatibility() Compatibility {
	return Compatibility{Score: 70, Reason: "You both have interesting backgrounds!"}
}

// parsedFallback is returned when the call succeeds but the payload does
// not parse as the requested structure.
func parsedFallback() Compatibility {
	return Compatibility{Score: 75, Reason: "You both seem active!"}
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
}

// NewClient creates an assist client from config.
func NewClient(cfg *config.Config, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Assist.Timeout},
		baseURL:    cfg.Assist.BaseURL,
		apiKey:     cfg.Assist.APIKey,
		model:      cfg.Assist.Model,
		log:        log,
	}
}

// GenerateIcebreakers asks for up to three short openers based on the two
// profiles. Always returns at least one usable suggestion.
func (c *Client) GenerateIcebreakers(ctx context.Context, viewer, target domain.Profile) []string {
	prompt := fmt.Sprintf(
		"You are a dating coach wingman.\nMy profile: %s\nTarget's profile: %s\n\n"+
			"Generate 3 witty, short, and engaging icebreaker messages I could send to them "+
			"based on our shared interests or something unique in their bio. "+
			"Return them as a single string separated by newlines.",
		profileJSON(viewer), profileJSON(target),
	)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		c.log.Warn("icebreaker generation failed", "err", err)
		return []string{FallbackIcebreaker}
	}
	suggestions := ParseIcebreakers(text)
	if len(suggestions) == 0 {
		return []string{FallbackIcebreaker}
	}
	return suggestions
}

// GenerateAdvice asks for profile-coaching feedback on the given profile.
func (c *Client) GenerateAdvice(ctx context.Context, profile domain.Profile) string {
	prompt := fmt.Sprintf(
		"Analyze this dating profile bio and interests:\nBio: %s\nInterests: %s\n\n"+
			"Provide constructive, friendly advice on how to make it more appealing "+
			"or what kind of photos might complement it.\nKeep it concise.",
		profile.Bio, joinInterests(profile),
	)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		c.log.Warn("advice generation failed", "err", err)
		return FallbackAdvice
	}
	if text == "" {
		return adviceWhenEmpty
	}
	return text
}

// GenerateCompatibility asks for a structured 0-100 score plus a reason.
// Malformed structured output degrades to a fixed default pair.
func (c *Client) GenerateCompatibility(ctx context.Context, p1, p2 domain.Profile) Compatibility {
	prompt := fmt.Sprintf(
		"Compare these two profiles for a dating app:\nProfile 1: %s\nProfile 2: %s\n\n"+
			"Provide a compatibility score (0-100) and a short reason why they would or "+
			"wouldn't match.\nFormat the response as JSON with keys \"score\" and \"reason\".",
		profileJSON(p1), profileJSON(p2),
	)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		c.log.Warn("compatibility generation failed", "err", err)
		return FallbackCompatibility()
	}
	result, ok := ParseCompatibility(text)
	if !ok {
		return parsedFallback()
	}
	return result
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs one text-completion round trip.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", svcErr.Wrap(svcErr.ErrExternalService, "encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", svcErr.Wrap(svcErr.ErrExternalService, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", svcErr.Wrap(svcErr.ErrExternalService, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", svcErr.Wrap(svcErr.ErrExternalService, "status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", svcErr.Wrap(svcErr.ErrExternalService, "decode response: %v", err)
	}
	if len(decoded.Choices) == 0 {
		return "", svcErr.Wrap(svcErr.ErrExternalService, "empty choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

func profileJSON(p domain.Profile) string {
	b, err := json.Marshal(p)
	if err != nil {
		return p.Name
	}
	return string(b)
}

func joinInterests(p domain.Profile) string {
	out := ""
	for i, interest := range p.Interests {
		if i > 0 {
			out += ", "
		}
		out += interest
	}
	return out
}
