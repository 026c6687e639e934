package llm

import (
	"context"
	"fmt"

	"github.com/djf2128/WWGemini/models"
)

// NutrientEstimate is the oracle's structured answer for one unit of a food.
type NutrientEstimate struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	IsZeroPoint bool    `json:"is_zero_point"`
}

var nutrientSchema = Schema{
	"calories":      Number,
	"protein":       Number,
	"carbs":         Number,
	"fat":           Number,
	"fiber":         Number,
	"is_zero_point": Bool,
}

// EstimateNutrients asks for the nutrient facts of exactly one unit of the
// named food. All six fields must come back correctly typed.
func (c *Client) EstimateNutrients(ctx context.Context, name, unit string) (NutrientEstimate, error) {
	prompt := fmt.Sprintf(`Provide nutritional information for exactly 1 %s of: %s

Return ONLY a JSON object:
{
  "calories": float,
  "protein": float (grams),
  "carbs": float (grams),
  "fat": float (grams),
  "fiber": float (grams),
  "is_zero_point": bool (true only for non-starchy vegetables, most fruits, skinless chicken/turkey breast, fish, eggs, plain nonfat yogurt, beans and lentils)
}`, unit, name)

	doc, err := c.Structured(ctx,
		"You are a nutrition expert. Provide estimated nutritional data for the requested portion. Use average values when the food is generic.",
		prompt, nutrientSchema)
	if err != nil {
		return NutrientEstimate{}, err
	}

	est := NutrientEstimate{
		Calories:    doc.Get("calories").Float(),
		Protein:     doc.Get("protein").Float(),
		Carbs:       doc.Get("carbs").Float(),
		Fat:         doc.Get("fat").Float(),
		Fiber:       doc.Get("fiber").Float(),
		IsZeroPoint: doc.Get("is_zero_point").Bool(),
	}
	est.capInsaneValues()
	return est, nil
}

// capInsaneValues bounds obviously wrong estimates. A single portion above
// 3000 kcal or a macro above 1000g is noise, not food.
func (e *NutrientEstimate) capInsaneValues() {
	if e.Calories > 3000 {
		e.Calories = 3000
	}
	for _, v := range []*float64{&e.Protein, &e.Carbs, &e.Fat, &e.Fiber} {
		if *v > 1000 {
			*v = 1000
		}
		if *v < 0 {
			*v = 0
		}
	}
	if e.Calories < 0 {
		e.Calories = 0
	}
}

var suggestionSchema = Schema{
	"suggestions": StringArray,
}

// SuggestMeals asks for three short meal ideas inside a category's target
// point range.
func (c *Client) SuggestMeals(ctx context.Context, category models.MealCategory) ([]string, error) {
	prompt := fmt.Sprintf(`Suggest 3 %s ideas, each costing roughly %d to %d points under a Weight-Watchers-style scheme (points grow with calories and fat, shrink with fiber).

Return ONLY a JSON object:
{
  "suggestions": [string, string, string]
}

Each suggestion is one short sentence naming the meal and its rough portion.`,
		category.Name, category.MinPoints, category.MaxPoints)

	doc, err := c.Structured(ctx,
		"You are a meal planning assistant. Suggest simple, practical meals.",
		prompt, suggestionSchema)
	if err != nil {
		return nil, err
	}

	arr := doc.Get("suggestions").Array()
	if len(arr) != 3 {
		return nil, fmt.Errorf("expected 3 suggestions, got %d", len(arr))
	}
	out := make([]string, 0, 3)
	for _, el := range arr {
		out = append(out, el.String())
	}
	return out, nil
}

// AnalyzeDay asks for a free-text take on the day's log. The reply is
// rendered verbatim by the client.
func (c *Client) AnalyzeDay(ctx context.Context, summary string) (string, error) {
	prompt := fmt.Sprintf(`Here is everything I ate today:

%s

In 3-4 sentences: encourage me about what went well, then give exactly one concrete suggestion for tomorrow.`, summary)

	return c.Chat(ctx, []Message{
		{Role: "system", Content: "You are a supportive nutrition coach. Be warm and specific, never judgmental."},
		{Role: "user", Content: prompt},
	})
}
