package mealdb

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Meal is a full recipe as returned by the search, lookup and random endpoints.
type Meal struct {
	ID                       string              `json:"idMeal"`
	Name                     string              `json:"strMeal"`
	DrinkAlternate           string              `json:"strDrinkAlternate,omitempty"`
	Category                 string              `json:"strCategory,omitempty"`
	Area                     string              `json:"strArea,omitempty"`
	Instructions             string              `json:"strInstructions,omitempty"`
	Thumbnail                string              `json:"strMealThumb,omitempty"`
	Tags                     string              `json:"strTags,omitempty"`
	YouTube                  string              `json:"strYoutube,omitempty"`
	Source                   string              `json:"strSource,omitempty"`
	ImageSource              string              `json:"strImageSource,omitempty"`
	CreativeCommonsConfirmed string              `json:"strCreativeCommonsConfirmed,omitempty"`
	DateModified             string              `json:"dateModified,omitempty"`
	Ingredients              []IngredientMeasure `json:"ingredients,omitempty"`
}

// IngredientMeasure pairs one ingredient of a meal with its measure.
type IngredientMeasure struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure,omitempty"`
}

// UnmarshalJSON folds the numbered strIngredientN/strMeasureN columns into Ingredients.
func (m *Meal) UnmarshalJSON(data []byte) error {
	type mealAlias Meal
	var base mealAlias
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	*m = Meal(base)
	if len(m.Ingredients) > 0 {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	m.Ingredients = collectIngredients(fields)
	return nil
}

func collectIngredients(fields map[string]any) []IngredientMeasure {
	var out []IngredientMeasure
	for i := 1; ; i++ {
		n := strconv.Itoa(i)
		raw, ok := fields["strIngredient"+n]
		if !ok {
			break
		}
		name := trimmedString(raw)
		if name == "" {
			continue
		}
		out = append(out, IngredientMeasure{
			Ingredient: name,
			Measure:    trimmedString(fields["strMeasure"+n]),
		})
	}
	return out
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// TagList splits the comma separated strTags value.
func (m Meal) TagList() []string {
	if strings.TrimSpace(m.Tags) == "" {
		return nil
	}
	parts := strings.Split(m.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MealSummary is the reduced meal shape returned by the filter endpoints.
type MealSummary struct {
	ID        string `json:"idMeal"`
	Name      string `json:"strMeal"`
	Thumbnail string `json:"strMealThumb,omitempty"`
}

// Category is an entry of categories.php.
type Category struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumbnail   string `json:"strCategoryThumb,omitempty"`
	Description string `json:"strCategoryDescription,omitempty"`
}

// Ingredient is an entry of list.php?i=list.
type Ingredient struct {
	ID          string `json:"idIngredient"`
	Name        string `json:"strIngredient"`
	Description string `json:"strDescription,omitempty"`
	Type        string `json:"strType,omitempty"`
}

type categoryName struct {
	Name string `json:"strCategory"`
}

type areaName struct {
	Name string `json:"strArea"`
}
