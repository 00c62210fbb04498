package domain

import "time"

// Food is one entry in the food catalog. Nutrient values are per 100 g.
type Food struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`
	Fat          float64   `json:"fat"`
	Carbohydrate float64   `json:"carbohydrate"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DietEntry is one logged meal component for a user on a given day.
// Date is stored as YYYY-MM-DD; nutrient values are totals for the
// logged quantity, not per 100 g.
type DietEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Date         string    `json:"date"`
	MealType     string    `json:"mealType"`
	FoodName     string    `json:"foodName"`
	Grams        float64   `json:"grams"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`
	Fat          float64   `json:"fat"`
	Carbohydrate float64   `json:"carbohydrate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WeightRecord is one weigh-in. HeightCm may be zero when unknown.
type WeightRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      string    `json:"date"`
	WeightKg  float64   `json:"weightKg"`
	HeightCm  float64   `json:"heightCm,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NutritionReport is the stored daily summary for a user.
type NutritionReport struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	Date              string    `json:"date"`
	TotalCalories     float64   `json:"totalCalories"`
	TotalProtein      float64   `json:"totalProtein"`
	TotalFat          float64   `json:"totalFat"`
	TotalCarbohydrate float64   `json:"totalCarbohydrate"`
	Score             int       `json:"score"`
	Advice            string    `json:"advice"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FoodRecord is the structured result of analyzing a food photo.
// Nutrient fields are per 100 g and always numeric in this type no
// matter how the upstream model formatted them.
type FoodRecord struct {
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Calories         float64 `json:"calories"`
	Protein          float64 `json:"protein"`
	Fat              float64 `json:"fat"`
	Carbohydrate     float64 `json:"carbohydrate"`
	Unit             string  `json:"unit"`
	SuggestedPortion string  `json:"suggestedPortion"`
	Advice           string  `json:"advice"`
}

// FoodAnalysis is the terminal result of one analysis pipeline run.
// Exactly one of Food or ErrorMessage is set.
type FoodAnalysis struct {
	Success           bool        `json:"success"`
	Food              *FoodRecord `json:"food,omitempty"`
	NutritionAnalysis string      `json:"nutritionAnalysis,omitempty"`
	ErrorMessage      string      `json:"errorMessage,omitempty"`
	ImageURL          string      `json:"imageUrl,omitempty"`
}
