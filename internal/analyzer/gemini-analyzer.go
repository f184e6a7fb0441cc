package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/esgfactsheet/factsheet-ai/internal/utils"
)

const systemPrompt = `You are an ESG consultant producing concise, advisory, business-grade assessments for executives. Infer sector and material topics intelligently from the deck text and enrich with sector-specific context. Avoid generic boilerplate and invented KPIs. Use 'Insufficient evidence' only when the deck truly lacks support. Output in English.`

const defaultTaskPrompt = `Task:
1) Write three sections: "Strengths", "Weaknesses", "Action Plan (12 months)".
2) English only, consultative tone, executive-ready.
3) Concise bullets (<= 22 words), 5-9 bullets per section.
4) Add sector/materiality context; avoid generic ESG boilerplate.
5) Do not invent KPIs or numbers.

Return STRICT JSON:
{
  "strengths": ["...", "...", "..."],
  "weaknesses": ["...", "...", "..."],
  "action_plan": ["...", "...", "..."]
}`

// Result is the canonical shape of one analysis call.
type Result struct {
	ModelName   string
	SummaryText string
	RawOutput   json.RawMessage
}

type Analyzer interface {
	// Analyze sends flattened deck text for assessment.
	Analyze(ctx context.Context, text, prompt string) (*Result, error)
	// AnalyzeAttachment uploads a PDF rendition and assesses it once the
	// remote side reports it ready.
	AnalyzeAttachment(ctx context.Context, pdfData []byte, prompt string) (*Result, error)
}

type geminiAnalyzer struct {
	apiKey  string
	model   string
	baseURL string
	logger  *utils.Logger
	client  *http.Client

	pollAttempts int
	pollBase     time.Duration
	pollCeiling  time.Duration
}

func NewGeminiAnalyzer(apiKey, model, baseURL string, logger *utils.Logger) Analyzer {
	return &geminiAnalyzer{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		pollAttempts: 10,
		pollBase:     500 * time.Millisecond,
		pollCeiling:  8 * time.Second,
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text     string          `json:"text,omitempty"`
	FileData *geminiFileData `json:"fileData,omitempty"`
}

type geminiFileData struct {
	MimeType string `json:"mimeType"`
	FileURI  string `json:"fileUri"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiFile struct {
	Name  string `json:"name"`
	URI   string `json:"uri"`
	State string `json:"state"`
}

type geminiFileEnvelope struct {
	File geminiFile `json:"file"`
}

// assessmentPayload is the strict JSON schema the model is instructed to
// return.
type assessmentPayload struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	ActionPlan []string `json:"action_plan"`
}

func (a *geminiAnalyzer) Analyze(ctx context.Context, text, prompt string) (*Result, error) {
	userPrompt := buildUserPrompt(text, prompt)

	parts := []geminiPart{
		{Text: systemPrompt},
		{Text: userPrompt},
	}

	return a.generate(ctx, parts)
}

func (a *geminiAnalyzer) AnalyzeAttachment(ctx context.Context, pdfData []byte, prompt string) (*Result, error) {
	file, err := a.uploadFile(ctx, pdfData)
	if err != nil {
		return nil, err
	}

	file, err = a.awaitFileReady(ctx, file)
	if err != nil {
		return nil, err
	}

	if prompt == "" {
		prompt = defaultTaskPrompt
	}

	parts := []geminiPart{
		{Text: systemPrompt},
		{FileData: &geminiFileData{MimeType: "application/pdf", FileURI: file.URI}},
		{Text: prompt},
	}

	return a.generate(ctx, parts)
}

func (a *geminiAnalyzer) generate(ctx context.Context, parts []geminiPart) (*Result, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      0.2,
			MaxOutputTokens:  2048,
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("Gemini API error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var envelope geminiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates in response", ErrMalformedEnvelope)
	}

	raw := stripCodeFences(envelope.Candidates[0].Content.Parts[0].Text)

	var assessment assessmentPayload
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		a.logger.Error("Failed to parse assessment", "content", raw)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if assessment.Strengths == nil || assessment.Weaknesses == nil || assessment.ActionPlan == nil {
		return nil, fmt.Errorf("%w: missing required sections", ErrMalformedPayload)
	}

	return &Result{
		ModelName:   a.model,
		SummaryText: formatSummary(assessment),
		RawOutput:   json.RawMessage(raw),
	}, nil
}

// uploadFile pushes the PDF through the raw media upload endpoint.
func (a *geminiAnalyzer) uploadFile(ctx context.Context, data []byte) (*geminiFile, error) {
	url := fmt.Sprintf("%s/upload/v1beta/files?key=%s", a.baseURL, a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("X-Goog-Upload-Protocol", "raw")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading upload response: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("Gemini file upload error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("%w: upload status %d", ErrTransport, resp.StatusCode)
	}

	var envelope geminiFileEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if envelope.File.Name == "" {
		return nil, fmt.Errorf("%w: upload response missing file name", ErrMalformedEnvelope)
	}

	return &envelope.File, nil
}

// awaitFileReady polls until the remote side reports the file ACTIVE, with a
// bounded attempt budget and doubling backoff up to a ceiling. A remote
// FAILED state surfaces immediately without consuming the remaining budget.
func (a *geminiAnalyzer) awaitFileReady(ctx context.Context, file *geminiFile) (*geminiFile, error) {
	delay := a.pollBase

	for attempt := 0; attempt < a.pollAttempts; attempt++ {
		switch file.State {
		case "ACTIVE":
			return file, nil
		case "FAILED":
			return nil, fmt.Errorf("%w: file %s", ErrProcessingFailed, file.Name)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if delay > a.pollCeiling {
			delay = a.pollCeiling
		}

		updated, err := a.getFile(ctx, file.Name)
		if err != nil {
			return nil, err
		}
		file = updated
	}

	return nil, fmt.Errorf("%w: file %s still %s", ErrProcessingTimeout, file.Name, file.State)
}

func (a *geminiAnalyzer) getFile(ctx context.Context, name string) (*geminiFile, error) {
	url := fmt.Sprintf("%s/v1beta/%s?key=%s", a.baseURL, name, a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create file status request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading file status: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: file status %d", ErrTransport, resp.StatusCode)
	}

	var file geminiFile
	if err := json.Unmarshal(respBody, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	return &file, nil
}

func buildUserPrompt(text, prompt string) string {
	if prompt == "" {
		prompt = defaultTaskPrompt
	}

	return fmt.Sprintf("Context:\nExtracted deck text (may be noisy):\n<<<\n%s\n>>>\n\n%s", text, prompt)
}

// formatSummary joins the three assessment sections as Markdown, ready for
// editor review and for placeholder rendering.
func formatSummary(assessment assessmentPayload) string {
	var sections []string

	appendSection := func(title string, bullets []string) {
		lines := make([]string, 0, len(bullets)+1)
		lines = append(lines, "**"+title+"**")
		for _, bullet := range bullets {
			lines = append(lines, "- "+bullet)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	appendSection("Strengths", assessment.Strengths)
	appendSection("Weaknesses", assessment.Weaknesses)
	appendSection("Action Plan (12 months)", assessment.ActionPlan)

	return strings.Join(sections, "\n\n")
}

// stripCodeFences removes a wrapping markdown code fence if the model added
// one despite the JSON response type.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
