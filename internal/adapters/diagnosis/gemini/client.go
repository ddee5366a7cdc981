package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"petcare/internal/platform/logger"
	"petcare/internal/ports/diagnosis"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // vacío = endpoint público de Gemini
	// Structured pide JSON {thai, english} y lo vuelve a texto "Thai:/English:".
	Structured bool
	HTTPClient *http.Client
}

// Client implementa diagnosis.Assistant sobre la API de Gemini.
type Client struct {
	genai      *genai.Client
	model      string
	structured bool
	log        logger.Logger
}

var _ diagnosis.Assistant = (*Client)(nil)

type Option func(*Client)

func WithLogger(l logger.Logger) Option { return func(c *Client) { c.log = l } }

func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	c := &Client{
		genai:      gc,
		model:      model,
		structured: cfg.Structured,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Translate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	return c.generate(ctx, contents, nil)
}

// Diagnose manda el prompt y, si hay, la imagen como inline data en el mismo turno.
func (c *Client) Diagnose(ctx context.Context, req diagnosis.Request) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if len(req.Image) > 0 {
		mimeType := req.ImageMIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		parts = append(parts, genai.NewPartFromBytes(req.Image, mimeType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	if !c.structured {
		return c.generate(ctx, contents, nil)
	}

	text, err := c.generate(ctx, contents, structuredConfig())
	if err != nil {
		return "", err
	}
	rendered, ok := RenderStructured(text)
	if !ok {
		c.log.Warn("structured diagnosis not parseable; using raw text", map[string]any{"model": c.model})
		return text, nil
	}
	return rendered, nil
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %w", diagnosis.ErrUpstream, ctxErr)
		}
		return "", fmt.Errorf("%w: %v", diagnosis.ErrUpstream, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", diagnosis.ErrEmptyResponse
	}
	return text, nil
}

func structuredConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"thai":    {Type: genai.TypeString, Description: "Diagnosis and advice in Thai"},
				"english": {Type: genai.TypeString, Description: "Diagnosis and advice in English"},
			},
			Required: []string{"thai", "english"},
		},
	}
}

type structuredDiagnosis struct {
	Thai    string `json:"thai"`
	English string `json:"english"`
}

// RenderStructured convierte {thai, english} al texto con etiquetas que
// entienden el historial y el PDF. ok=false si no es ese JSON.
func RenderStructured(raw string) (string, bool) {
	var d structuredDiagnosis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &d); err != nil {
		return "", false
	}
	thai := strings.TrimSpace(d.Thai)
	english := strings.TrimSpace(d.English)
	if thai == "" && english == "" {
		return "", false
	}
	return "Thai: " + thai + "\nEnglish: " + english, true
}
