// Package gemini is a REST client for the Gemini generateContent API that
// implements the AI gateway used by the tutor, speech and lesson features.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/infrastructure/config"
)

const tutorPersona = `You are "Guru", a professional German language instructor who teaches people from Karnataka.
You are fluent in German, English, and Kannada.
When explaining German grammar or vocabulary, always provide the meaning in both English and Kannada.
Keep your tone encouraging and friendly. Use Kannada script for Kannada words.
If the user asks a question in Kannada, answer back explaining the German concept using Kannada and English support.`

// Client talks to the Gemini REST API. It never retries.
type Client struct {
	log         logrus.FieldLogger
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	textModel   string
	speechModel string
	voice       string
}

// NewClient builds a client from configuration.
func NewClient(cfg *config.Config, log logrus.FieldLogger) *Client {
	timeout := cfg.Gemini.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		log:         log.WithField("component", "gemini"),
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.Gemini.BaseURL, "/"),
		apiKey:      strings.TrimSpace(cfg.Gemini.APIKey),
		textModel:   cfg.Gemini.TextModel,
		speechModel: cfg.Gemini.SpeechModel,
		voice:       cfg.Gemini.Voice,
	}
}

// Voice is the prebuilt voice used for speech synthesis.
func (c *Client) Voice() string { return c.voice }

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseModalities []string       `json:"responseModalities,omitempty"`
	ResponseMimeType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	SpeechConfig       *speechConfig  `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// text concatenates the text parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (r *generateResponse) inline() *inlineData {
	if len(r.Candidates) == 0 {
		return nil
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return p.InlineData
		}
	}
	return nil
}

func (c *Client) generate(ctx context.Context, model string, req *generateRequest) (*generateResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: missing api key", entity.ErrGatewayUnavailable)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrGatewayUnavailable, err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read response: %w", readErr)
	}

	c.log.WithFields(logrus.Fields{
		"model":    model,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("generateContent completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedAIResponse, err)
	}
	return &out, nil
}

func textContent(role, text string) content {
	return content{Role: role, Parts: []part{{Text: text}}}
}

// IsHTTPStatus reports whether err is an API response with the given status.
func IsHTTPStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}
