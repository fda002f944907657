// Package insight formats dashboard snapshots into an analyst prompt and
// requests a short narrative report from the Gemini text-generation service.
// The client never returns an error to callers: any transport or service
// failure collapses into a fixed fallback message, so a broken AI service
// can never destabilize the dashboard.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"labour-dashboard/internal/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"

	// requestTimeout bounds the outbound call. The browser build had no
	// timeout at all and could hang on a dead service; the port caps it.
	requestTimeout = 30 * time.Second
)

// Fallback strings, kept verbatim from the browser build.
const (
	fallbackMessage = "The AI intelligence module is currently undergoing maintenance or the API key is invalid. Please try again later."
	emptyMessage    = "Unable to generate intelligence report at this time."
)

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the given API key. An empty key is allowed; the
// request will simply fail and surface the fallback message.
func New(apiKey, model string) *Client {
	return NewWithBaseURL(apiKey, model, defaultBaseURL)
}

// NewWithBaseURL returns a client addressing an alternate endpoint, for
// proxies and tests.
func NewWithBaseURL(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// BuildPrompt renders the policy-analyst prompt for a snapshot. The
// embedded figures are the snapshot's aggregates, not the raw tables.
func BuildPrompt(snap models.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "As a senior policy analyst for the Labour Department of Telangana, analyze the following dashboard data for a %s in %s.\n\n",
		snap.Role, snap.Jurisdiction)
	b.WriteString("Data Summary:\n")
	fmt.Fprintf(&b, "- BOCW Pending Applications: %d\n", snap.TotalBOCWPending())
	fmt.Fprintf(&b, "- Shop Registration Renewals Pending: %d\n", snap.TotalRenewalsPending())
	fmt.Fprintf(&b, "- Case Disposal Rate: %d%%\n", snap.CaseDisposalRate())
	fmt.Fprintf(&b, "- Inspection Achievement: %d/%d\n", snap.Inspections.Achieved, snap.Inspections.Target)
	fmt.Fprintf(&b, "- Child Labour Rescues: %d\n", snap.Inspections.ChildLabourRescues)
	b.WriteString("\nProvide a concise, professional report (3-4 bullet points) in Markdown format focusing on:\n")
	b.WriteString("1. Critical bottlenecks (High pendency areas).\n")
	b.WriteString("2. Operational efficiency trends.\n")
	fmt.Fprintf(&b, "3. Specific recommendations for the %s to improve performance in the current jurisdiction.\n", snap.Role)
	b.WriteString("4. Notable successes (like high compliance or effective rescues).\n")
	b.WriteString("\nKeep the tone authoritative yet helpful.\n")

	return b.String()
}

// Wire types for the generateContent endpoint. Only the fields this client
// touches are mapped.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ThinkingConfig *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateReport requests a narrative report for the snapshot. It always
// returns displayable text: the model's answer, or a fallback when the
// service is unreachable, errors, or answers with nothing.
func (c *Client) GenerateReport(ctx context.Context, snap models.Snapshot) string {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(snap)}}}},
		GenerationConfig: &generationConfig{
			ThinkingConfig: &thinkingConfig{ThinkingBudget: 0},
		},
	})
	if err != nil {
		log.Printf("[insight] request marshal failed: %v", err)
		return fallbackMessage
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("[insight] request build failed: %v", err)
		return fallbackMessage
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[insight] generate request failed: %v", err)
		return fallbackMessage
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[insight] service returned %d: %s", resp.StatusCode, raw)
		return fallbackMessage
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[insight] response decode failed: %v", err)
		return fallbackMessage
	}

	text := extractText(out)
	if strings.TrimSpace(text) == "" {
		return emptyMessage
	}
	return text
}

func extractText(out generateResponse) string {
	if len(out.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
