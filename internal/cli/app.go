package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ap-dojo/internal/quiz"
)

// Run drives the terminal views until the user exits or input ends.
func Run(ctx context.Context, in io.Reader, out io.Writer, service *quiz.Service) error {
	reader := bufio.NewReader(in)

	configured, err := service.IsConfigured(ctx)
	if err != nil {
		return err
	}
	if !configured {
		if err := runSetup(ctx, reader, out, service); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
	}

	user, err := service.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ap-dojo\nuser=%s\nquestions per quiz=%s\n\n", user, formatCount(service.QuestionCount()))
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		var cmdErr error
		switch command {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "count":
			cmdErr = runCount(out, service, args)
		case "random":
			cmdErr = runQuiz(ctx, reader, out, service, "")
		case "categories":
			cmdErr = runCategories(ctx, out, service)
		case "category":
			if len(args) < 2 {
				fmt.Fprintln(out, "usage: category <name|number>")
				continue
			}
			category, resolveErr := resolveCategory(ctx, service, strings.Join(args[1:], " "))
			if resolveErr != nil {
				cmdErr = resolveErr
				break
			}
			cmdErr = runQuiz(ctx, reader, out, service, category)
		case "history":
			cmdErr = runHistory(ctx, out, service)
		case "settings":
			cmdErr = runSettings(ctx, reader, out, service)
		case "clear":
			cmdErr = runClear(ctx, reader, out, service)
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}

		if cmdErr != nil {
			if errors.Is(cmdErr, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", cmdErr)
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  count [5|10|25|50|all]")
	fmt.Fprintln(out, "  random")
	fmt.Fprintln(out, "  categories")
	fmt.Fprintln(out, "  category <name|number>")
	fmt.Fprintln(out, "  history")
	fmt.Fprintln(out, "  settings")
	fmt.Fprintln(out, "  clear")
	fmt.Fprintln(out, "  exit")
}

func runCount(out io.Writer, service *quiz.Service, args []string) error {
	if len(args) < 2 {
		fmt.Fprintf(out, "questions per quiz: %s\n", formatCount(service.QuestionCount()))
		return nil
	}

	count, err := parseCount(args[1])
	if err != nil {
		return err
	}
	if err := service.SetQuestionCount(count); err != nil {
		return err
	}
	fmt.Fprintf(out, "questions per quiz: %s\n", formatCount(count))
	return nil
}
