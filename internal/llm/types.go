package llm

import (
	"encoding/json"
	"fmt"
)

// ModelID identifies one of the two models this backend is allowed to call.
// The wrapped name is unexported so callers cannot send an arbitrary model
// string; TextModel and VisionModel are the only constructible values.
type ModelID struct {
	name string
}

var (
	// TextModel handles plain chat and structured-extraction requests.
	TextModel = ModelID{"qwen-max"}
	// VisionModel handles multimodal requests carrying an image.
	VisionModel = ModelID{"qwen-vl-max-latest"}
)

func (m ModelID) String() string { return m.name }

func (m ModelID) MarshalJSON() ([]byte, error) {
	if m.name == "" {
		return nil, fmt.Errorf("model not set")
	}
	return json.Marshal(m.name)
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentPart is one unit of a multimodal message: either a text span or an
// image reference, matching the OpenAI-compatible wire shape.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

func ImagePart(url string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: url}}
}

// Content is a tagged variant: either a plain string or an ordered sequence
// of parts. Providers use both shapes, sometimes within the same reply, so
// the variant is resolved once at decode time instead of via runtime type
// inspection at every use site.
type Content struct {
	text    string
	parts   []ContentPart
	isParts bool
	raw     json.RawMessage
}

// TextContent wraps a plain string.
func TextContent(text string) Content {
	return Content{text: text}
}

// PartsContent wraps an ordered multimodal part sequence.
func PartsContent(parts ...ContentPart) Content {
	return Content{parts: parts, isParts: true}
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.isParts {
		return json.Marshal(c.parts)
	}
	return json.Marshal(c.text)
}

// UnmarshalJSON accepts either wire shape. Content that is neither a string
// nor a part array is retained raw so ExtractText can still stringify it.
func (c *Content) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Content{text: text}
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err == nil {
		*c = Content{parts: parts, isParts: true}
		return nil
	}
	*c = Content{raw: append(json.RawMessage(nil), data...)}
	return nil
}

// ExtractText reduces content to plain text: a string is returned verbatim,
// a part sequence yields the first text part, and anything else falls back
// to the stringified structure.
func (c Content) ExtractText() string {
	if c.isParts {
		for _, p := range c.parts {
			if p.Type == "text" {
				return p.Text
			}
		}
		b, err := json.Marshal(c.parts)
		if err != nil {
			return ""
		}
		return string(b)
	}
	if c.raw != nil {
		return string(c.raw)
	}
	return c.text
}

type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// ResponseFormat asks the provider to constrain its output shape.
type ResponseFormat struct {
	Type string `json:"type"`
}

// JSONObject requests a strict JSON object reply as a transport-level
// option rather than a prompt instruction.
func JSONObject() *ResponseFormat {
	return &ResponseFormat{Type: "json_object"}
}

type Request struct {
	Model          ModelID         `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	Stream         bool            `json:"stream"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type Reply struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
