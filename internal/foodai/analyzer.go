// Package foodai runs the food-photo analysis pipeline: compress the image,
// ask the vision model for a free-text description, ask the text model to
// structure that description as JSON, and parse the result into a nutrition
// record. The pipeline is linear and all-or-nothing; any stage failure
// aborts the run.
package foodai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hanqiu-dev/dietagent/internal/domain"
	"github.com/hanqiu-dev/dietagent/internal/imaging"
	"github.com/hanqiu-dev/dietagent/internal/llm"
)

// maxBase64Len is the provider's practical request-size ceiling for an
// embedded image (qwen-vl rejects payloads around 130k characters).
const maxBase64Len = 120000

const (
	stageMaxTokens       = 2000
	visionTemperature    = 0.7
	structureTemperature = 0.3
)

const visionPrompt = `请仔细分析这张食物图片，识别图片中的食物并提供以下详细信息：
1. 食物名称（中文）
2. 食物分类（如：主食、肉类、蔬菜、水果、饮品等）
3. 每100克的营养成分：热量（千卡）、蛋白质（克）、脂肪（克）、碳水化合物（克）
4. 常用单位和建议分量
5. 健康建议

请提供准确的数值估计。`

const structureSystemPrompt = `你是一个营养分析专家。请将食物分析结果转换为严格的JSON格式，包含以下字段：
{
    "food": {
        "name": "食物名称（字符串）",
        "category": "食物分类（字符串，如：主食、肉类、蔬菜、水果）",
        "calories": 数值（每100克热量，千卡，必须是数字）,
        "protein": 数值（每100克蛋白质，克，必须是数字）,
        "fat": 数值（每100克脂肪，克，必须是数字）,
        "carbohydrate": 数值（每100克碳水化合物，克，必须是数字）,
        "unit": "常用单位（如：克、个、碗、杯）",
        "suggestedPortion": "建议分量（如：100克、1个、1碗）",
        "advice": "健康建议（字符串）"
    },
    "nutritionAnalysis": "详细的营养分析文本（字符串）"
}

重要：calories、protein、fat、carbohydrate必须是数字类型，不要加单位。
如果无法准确识别某项数值，请给出合理估计值。
只返回JSON，不要添加其他文字说明。`

// errEmptyDescription means the vision reply decoded fine but reduced to no
// usable text.
var errEmptyDescription = errors.New("vision reply contains no text")

// Completer is the outbound model transport seam.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Reply, error)
}

type Analyzer struct {
	llm        Completer
	logger     *slog.Logger
	compressFn func(data []byte, quality float64) ([]byte, error)
}

func NewAnalyzer(completer Completer, logger *slog.Logger) *Analyzer {
	if completer == nil {
		panic("foodai: nil completer")
	}
	if logger == nil {
		panic("foodai: nil logger")
	}
	return &Analyzer{
		llm:        completer,
		logger:     logger,
		compressFn: imaging.Compress,
	}
}

// AnalyzeImage runs the full pipeline on raw image bytes. It always returns
// a result value: business failures surface as Success=false with the
// failing stage named in ErrorMessage, never as an error.
func (a *Analyzer) AnalyzeImage(ctx context.Context, raw []byte) domain.FoodAnalysis {
	payload, err := a.preprocess(raw)
	if err != nil {
		return failure("preprocess", err)
	}

	description, err := a.describe(ctx, payload)
	if err != nil {
		return failure("describe", err)
	}
	a.logger.Info("vision description obtained", "length", len(description))

	record, analysis, err := a.structure(ctx, description)
	if err != nil {
		return failure("structure", err)
	}
	a.logger.Info("food analysis completed", "food", record.Name)

	return domain.FoodAnalysis{
		Success:           true,
		Food:              record,
		NutritionAnalysis: analysis,
	}
}

// preprocess compresses the image and base64-encodes it. If the encoded
// payload exceeds the transport budget, one more pass runs at a lower
// quality on the already-resized output; after that the payload is used
// as-is. Best effort, not a guaranteed bound.
func (a *Analyzer) preprocess(raw []byte) (string, error) {
	compressed, err := a.compressFn(raw, imaging.DefaultQuality)
	if err != nil {
		return "", err
	}

	payload := base64.StdEncoding.EncodeToString(compressed)
	if len(payload) > maxBase64Len {
		a.logger.Warn("compressed image exceeds transport budget, recompressing",
			"base64_len", len(payload))
		compressed, err = a.compressFn(compressed, imaging.RetryQuality)
		if err != nil {
			return "", err
		}
		payload = base64.StdEncoding.EncodeToString(compressed)
		if len(payload) > maxBase64Len {
			a.logger.Warn("image still exceeds transport budget after recompression",
				"base64_len", len(payload))
		}
	}
	return payload, nil
}

// describe asks the vision model for a free-text description of the food.
func (a *Analyzer) describe(ctx context.Context, payload string) (string, error) {
	reply, err := a.llm.Complete(ctx, llm.Request{
		Model: llm.VisionModel,
		Messages: []llm.Message{{
			Role: llm.RoleUser,
			Content: llm.PartsContent(
				llm.TextPart(visionPrompt),
				llm.ImagePart("data:image/jpeg;base64,"+payload),
			),
		}},
		MaxTokens:   stageMaxTokens,
		Temperature: visionTemperature,
	})
	if err != nil {
		return "", err
	}

	text := reply.Choices[0].Message.Content.ExtractText()
	if strings.TrimSpace(text) == "" {
		return "", errEmptyDescription
	}
	return text, nil
}

// structure converts the free-text description into a typed record via the
// text model with a JSON-object response format.
func (a *Analyzer) structure(ctx context.Context, description string) (*domain.FoodRecord, string, error) {
	reply, err := a.llm.Complete(ctx, llm.Request{
		Model: llm.TextModel,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: llm.TextContent(structureSystemPrompt)},
			{Role: llm.RoleUser, Content: llm.TextContent(description)},
		},
		MaxTokens:      stageMaxTokens,
		Temperature:    structureTemperature,
		ResponseFormat: llm.JSONObject(),
	})
	if err != nil {
		return nil, "", err
	}
	return parseStructuredReply(reply.Choices[0].Message.Content.ExtractText())
}

func failure(stage string, err error) domain.FoodAnalysis {
	return domain.FoodAnalysis{
		Success:      false,
		ErrorMessage: fmt.Sprintf("%s: %s", stage, err),
	}
}
