// Package mealdb provides an HTTP client for the TheMealDB recipe API.
//
// # Overview
//
// The package fetches recipe listings and recipe detail records and maps the
// wire payloads into small immutable values the UI can render directly.
//
// The package is split into four files:
//
//   - client.go: HTTP client, endpoint methods and request handling
//   - types.go: Wire structs and the normalized RecipeSummary/RecipeDetail values
//   - normalize.go: Slot collapsing and tag splitting
//   - errors.go: NetworkError, DecodeError and classification helpers
//
// # Client Usage
//
//	client, err := mealdb.NewClient("", mealdb.WithTimeout(5*time.Second))
//	if err != nil {
//		return err
//	}
//
//	summaries, err := client.FetchByCategory(ctx, "Dessert")
//	if err != nil {
//		return err
//	}
//
//	detail, found, err := client.FetchByID(ctx, summaries[0].ID)
//	switch {
//	case err != nil:
//		// network or decode failure
//	case !found:
//		// recipe is unavailable
//	default:
//		render(detail)
//	}
//
// # API Endpoints
//
//   - GET /filter.php?c={category}: Summaries for one category
//   - GET /lookup.php?i={id}: Zero or one full record
//
// Both wrap their records in {"meals": [...]}. The API answers "no match"
// with {"meals": null}; the client treats that, and an empty array, as a
// successful empty result. A body without a "meals" key is a DecodeError.
//
// # Ingredient Slots
//
// Lookup records carry strIngredient1..20 and strMeasure1..20 as parallel
// scalar fields. They are decoded by index into a fixed slot array and then
// collapsed in ascending slot order, dropping slots whose trimmed ingredient
// name is empty or null. The resulting order is the order the API author
// entered the ingredients; it is never derived from a name-keyed map.
//
// # Error Handling
//
//   - *NetworkError: connection failure, timeout, cancellation or non-2xx status
//   - *DecodeError: malformed JSON or a record missing idMeal/strMeal
//
// Use IsNetwork, IsDecode and StatusCode to classify errors. Absent recipes
// are not errors.
//
// # Design Rationale
//
// The client is intentionally minimal: no caching, no retries, no pagination.
// Each call is one independent request/response cycle and retains no state.
package mealdb
