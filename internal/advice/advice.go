// Package advice generates the free-text guidance attached to nutrition
// reports. The generator is an interface with two implementations, one
// backed by the text model and one returning locally composed text, so the
// rest of the system never checks at run time whether an AI client exists.
package advice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

const systemPrompt = `你是一位专业的饮食健康智能顾问，致力于帮助用户建立科学的饮食习惯和健康的生活方式。
请根据用户一天的营养摄入数据给出简明、可操作的饮食建议。
不做医学诊断；遇到严重健康问题请建议咨询医生。`

// Advisor produces advice text for a daily nutrition report. Implementations
// must always return usable text; they handle their own failures.
type Advisor interface {
	DailyAdvice(ctx context.Context, report *domain.NutritionReport) string
}

// Static composes advice locally without any model call. It is the fallback
// implementation and the default when no API key is configured.
type Static struct{}

func (Static) DailyAdvice(_ context.Context, report *domain.NutritionReport) string {
	return fmt.Sprintf(
		"日期: %s\n总体建议: 建议保持均衡摄入，尝试更多蔬菜和优质蛋白。\n"+
			"热量: %.0f kcal；蛋白质: %.1f g；脂肪: %.1f g；碳水: %.1f g。\n"+
			"建议: 控制高脂/高糖食物，每餐配蔬菜，每周增加2次中等强度运动。",
		report.Date, report.TotalCalories, report.TotalProtein, report.TotalFat, report.TotalCarbohydrate)
}

// Chatter is the single-turn completion seam the model-backed advisor needs.
type Chatter interface {
	Chat(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Model asks the text model for advice and falls back to Static on any
// failure. Report generation must never fail because advice generation did.
type Model struct {
	chatter     Chatter
	maxTokens   int
	temperature float64
	logger      *slog.Logger
	fallback    Static
}

func NewModel(chatter Chatter, maxTokens int, temperature float64, logger *slog.Logger) *Model {
	if chatter == nil {
		panic("advice: nil chatter")
	}
	return &Model{chatter: chatter, maxTokens: maxTokens, temperature: temperature, logger: logger}
}

func (m *Model) DailyAdvice(ctx context.Context, report *domain.NutritionReport) string {
	prompt := fmt.Sprintf(
		"用户 %s 当天的营养摄入：热量 %.0f 千卡，蛋白质 %.1f 克，脂肪 %.1f 克，碳水化合物 %.1f 克。"+
			"请给出当天的饮食评价和第二天的改进建议，150字以内。",
		report.Date, report.TotalCalories, report.TotalProtein, report.TotalFat, report.TotalCarbohydrate)

	text, err := m.chatter.Chat(ctx, systemPrompt, prompt, m.maxTokens, m.temperature)
	if err != nil {
		m.logger.Error("advice generation failed, using static fallback", "error", err)
		return m.fallback.DailyAdvice(ctx, report)
	}
	return text
}
