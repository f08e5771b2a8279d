package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"ap-dojo/internal/quiz"
)

func runCategories(ctx context.Context, out io.Writer, service *quiz.Service) error {
	listing, err := categoryListing(ctx, service)
	if err != nil {
		return err
	}

	number := 1
	for _, field := range quiz.Fields() {
		fmt.Fprintf(out, "%s\n", field.DisplayName())
		for _, summary := range listing {
			if summary.Field != field {
				continue
			}
			fmt.Fprintf(out, "  %2d. %s (%d)\n", number, summary.Name, summary.Count)
			number++
		}
	}
	return nil
}

// categoryListing is the order the categories view numbers entries in.
func categoryListing(ctx context.Context, service *quiz.Service) ([]quiz.CategorySummary, error) {
	summaries, err := service.Categories(ctx)
	if err != nil {
		return nil, err
	}

	listing := make([]quiz.CategorySummary, 0, len(summaries))
	for _, field := range quiz.Fields() {
		listing = append(listing, quiz.CategoriesByField(summaries, field)...)
	}
	return listing, nil
}

func runHistory(ctx context.Context, out io.Writer, service *quiz.Service) error {
	stats, err := service.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		fmt.Fprintln(out, "No answers yet.")
		return nil
	}

	fmt.Fprintf(out, "Answered: %d  Correct: %d  Rate: %d%%\n\n", stats.Total, stats.Correct, stats.Rate)

	fmt.Fprintln(out, "By field:")
	for _, field := range quiz.Fields() {
		tally, ok := stats.ByField[field]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-10s %3d%% (%d/%d)\n", field.DisplayName(), quiz.Accuracy(tally.Correct, tally.Total), tally.Correct, tally.Total)
	}

	fmt.Fprintln(out, "\nBy category (weakest first):")
	for _, rank := range quiz.RankCategories(stats) {
		fmt.Fprintf(out, "  %-24s %3d%% (%d/%d) %s\n", rank.Name, rank.Accuracy, rank.Correct, rank.Total, rank.Tier)
	}
	return nil
}

func runClear(ctx context.Context, reader *bufio.Reader, out io.Writer, service *quiz.Service) error {
	confirmed, err := promptYesNo(reader, out, "Delete all of your answer history? (yes/no): ")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	if err := service.ClearHistory(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "History cleared.")
	return nil
}
