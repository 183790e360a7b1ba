package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/crumb/internal/mealdb"
)

// ErrUnavailable is returned by Show when the recipe does not exist.
var ErrUnavailable = errors.New("recipe is unavailable")

// List prints the recipes of category as a table, or as a JSON array.
func List(ctx context.Context, src mealdb.ListingClient, category string, w io.Writer, asJSON bool) error {
	recipes, err := src.FetchByCategory(ctx, category)
	if err != nil {
		return fmt.Errorf("list %s: %w", category, err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recipes)
	}

	if len(recipes) == 0 {
		_, err := fmt.Fprintf(w, "No recipes in %s.\n", category)
		return err
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME")
	for _, r := range recipes {
		tbl.Row(r.ID, r.Name)
	}
	_, err = fmt.Fprintln(w, tbl.Render())
	return err
}

// Show prints one normalized recipe. It returns ErrUnavailable, wrapped with
// the id, when the API has no such recipe.
func Show(ctx context.Context, src mealdb.DetailClient, id string, w io.Writer, asJSON bool) error {
	detail, found, err := src.FetchByID(ctx, id)
	if err != nil {
		return fmt.Errorf("show %s: %w", id, err)
	}
	if !found {
		return fmt.Errorf("recipe %s: %w", id, ErrUnavailable)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	}
	_, err = io.WriteString(w, formatRecipe(detail))
	return err
}

func formatRecipe(d mealdb.RecipeDetail) string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteString("\n")
	meta := make([]string, 0, 3)
	for _, v := range []string{d.Category, d.Area, strings.Join(d.Tags, ", ")} {
		if v != "" {
			meta = append(meta, v)
		}
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " · "))
		b.WriteString("\n")
	}

	b.WriteString("\nIngredients\n")
	for _, ing := range d.Ingredients {
		if ing.Measure == "" {
			fmt.Fprintf(&b, "- %s\n", ing.Name)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", ing.Name, ing.Measure)
	}

	if d.HasInstructions() {
		b.WriteString("\nInstructions\n")
		b.WriteString(strings.TrimSpace(d.Instructions))
		b.WriteString("\n")
	}
	if d.SourceURL != "" {
		fmt.Fprintf(&b, "\nSource: %s\n", d.SourceURL)
	}
	if d.YouTubeURL != "" {
		fmt.Fprintf(&b, "Video: %s\n", d.YouTubeURL)
	}
	return b.String()
}

// ExportStats summarizes an Export run.
type ExportStats struct {
	Listed   int
	Exported int
	Skipped  int
}

// Export fetches every recipe in category with at most workers lookups in
// flight and writes one JSON document per line, in listing order. The first
// failed lookup cancels the rest. Recipes that have vanished since the
// listing are skipped.
func Export(ctx context.Context, src mealdb.RecipeSource, category string, workers int, w io.Writer, log logrus.FieldLogger) (ExportStats, error) {
	if workers <= 0 {
		workers = 1
	}

	recipes, err := src.FetchByCategory(ctx, category)
	if err != nil {
		return ExportStats{}, fmt.Errorf("list %s: %w", category, err)
	}
	stats := ExportStats{Listed: len(recipes)}

	details := make([]*mealdb.RecipeDetail, len(recipes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, summary := range recipes {
		i, summary := i, summary
		g.Go(func() error {
			detail, found, err := src.FetchByID(gctx, summary.ID)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", summary.ID, err)
			}
			if !found {
				log.WithFields(logrus.Fields{"id": summary.ID, "name": summary.Name}).
					Warn("recipe listed but unavailable, skipping")
				return nil
			}
			details[i] = &detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	enc := json.NewEncoder(w)
	for _, d := range details {
		if d == nil {
			stats.Skipped++
			continue
		}
		if err := enc.Encode(d); err != nil {
			return stats, fmt.Errorf("write export: %w", err)
		}
		stats.Exported++
	}
	log.WithFields(logrus.Fields{
		"category": category,
		"listed":   stats.Listed,
		"exported": stats.Exported,
		"skipped":  stats.Skipped,
	}).Info("export finished")
	return stats, nil
}
