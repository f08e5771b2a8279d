package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ap-dojo/internal/quiz"
)

// promptLine returns the trimmed line, or fallback when it is empty.
func promptLine(reader *bufio.Reader, out io.Writer, prompt, fallback string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	for {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

// resolveChoice accepts a choice key or its 1-based position.
func resolveChoice(keys []string, answer string) string {
	for _, key := range keys {
		if key == answer {
			return key
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(keys) {
		return keys[n-1]
	}
	return answer
}

func resolveCategory(ctx context.Context, service *quiz.Service, arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return arg, nil
	}

	listing, err := categoryListing(ctx, service)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(listing) {
		return "", fmt.Errorf("%w: no category number %d", quiz.ErrUnknownCategory, n)
	}
	return listing[n-1].Name, nil
}

func parseCount(arg string) (int, error) {
	if strings.EqualFold(arg, "all") {
		return 0, nil
	}
	count, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New("count must be a number or 'all'")
	}
	return count, nil
}

func formatCount(count int) string {
	if count == 0 {
		return "all"
	}
	return strconv.Itoa(count)
}

func maskToken(token string) string {
	if token == "" {
		return "not set"
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
