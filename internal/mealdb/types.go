package mealdb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// slotCount is the number of fixed ingredient/measure slots in a lookup record.
const slotCount = 20

// RecipeSummary is the listing projection of a recipe.
type RecipeSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Ingredient pairs an ingredient name with its measurement.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// RecipeDetail is a normalized lookup record.
type RecipeDetail struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Instructions string       `json:"instructions,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Category     string       `json:"category,omitempty"`
	Area         string       `json:"area,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	YouTubeURL   string       `json:"youtubeUrl,omitempty"`
	SourceURL    string       `json:"sourceUrl,omitempty"`
}

// Equal reports whether both details describe the same recipe. Only the
// identifiers are compared.
func (d RecipeDetail) Equal(other RecipeDetail) bool {
	return d.ID == other.ID
}

// HasInstructions reports whether the recipe carries any instruction text.
func (d RecipeDetail) HasInstructions() bool {
	return strings.TrimSpace(d.Instructions) != ""
}

// envelope mirrors the {"meals": ...} wrapper shared by both endpoints.
type envelope struct {
	Meals json.RawMessage `json:"meals"`
}

// wireSummary mirrors one /filter.php entry.
type wireSummary struct {
	ID    *string `json:"idMeal"`
	Name  *string `json:"strMeal"`
	Thumb *string `json:"strMealThumb"`
}

func (w wireSummary) toSummary() (RecipeSummary, error) {
	id, err := required("idMeal", w.ID)
	if err != nil {
		return RecipeSummary{}, err
	}
	name, err := required("strMeal", w.Name)
	if err != nil {
		return RecipeSummary{}, err
	}
	thumb, err := required("strMealThumb", w.Thumb)
	if err != nil {
		return RecipeSummary{}, err
	}
	return RecipeSummary{ID: id, Name: name, ThumbnailURL: thumb}, nil
}

// slot is one positional ingredient/measure pair from the wire record.
type slot struct {
	Ingredient string
	Measure    string
}

// wireMeal mirrors one /lookup.php entry. The numbered ingredient and measure
// fields are collected into slots by UnmarshalJSON.
type wireMeal struct {
	ID           *string `json:"idMeal"`
	Name         *string `json:"strMeal"`
	Category     *string `json:"strCategory"`
	Area         *string `json:"strArea"`
	Instructions *string `json:"strInstructions"`
	Thumb        *string `json:"strMealThumb"`
	Tags         *string `json:"strTags"`
	YouTube      *string `json:"strYoutube"`
	Source       *string `json:"strSource"`

	slots [slotCount]slot
}

// UnmarshalJSON decodes the named fields and reads slots 1..20 by index.
func (m *wireMeal) UnmarshalJSON(data []byte) error {
	type plain wireMeal
	if err := json.Unmarshal(data, (*plain)(m)); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for i := range m.slots {
		n := i + 1
		ingredient, err := optionalString(fields, fmt.Sprintf("strIngredient%d", n))
		if err != nil {
			return err
		}
		measure, err := optionalString(fields, fmt.Sprintf("strMeasure%d", n))
		if err != nil {
			return err
		}
		m.slots[i] = slot{Ingredient: ingredient, Measure: measure}
	}
	return nil
}

func (m wireMeal) toDetail() (RecipeDetail, error) {
	id, err := required("idMeal", m.ID)
	if err != nil {
		return RecipeDetail{}, err
	}
	name, err := required("strMeal", m.Name)
	if err != nil {
		return RecipeDetail{}, err
	}
	return RecipeDetail{
		ID:           id,
		Name:         name,
		Instructions: strings.TrimSpace(deref(m.Instructions)),
		Ingredients:  collapseSlots(m.slots[:]),
		Category:     strings.TrimSpace(deref(m.Category)),
		Area:         strings.TrimSpace(deref(m.Area)),
		ThumbnailURL: strings.TrimSpace(deref(m.Thumb)),
		Tags:         splitTags(deref(m.Tags)),
		YouTubeURL:   strings.TrimSpace(deref(m.YouTube)),
		SourceURL:    strings.TrimSpace(deref(m.Source)),
	}, nil
}

func required(field string, value *string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("missing required field %q", field)
	}
	return *value, nil
}

func optionalString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return "", nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("field %q: want string, got %s", key, raw)
	}
	return value, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
