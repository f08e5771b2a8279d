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

func runQuiz(ctx context.Context, reader *bufio.Reader, out io.Writer, service *quiz.Service, category string) error {
	var (
		session *quiz.Session
		err     error
	)
	if category == "" {
		session, err = service.StartRandom(ctx)
	} else {
		session, err = service.StartCategory(ctx, category)
	}
	if err != nil {
		return err
	}

	for session.State() != quiz.StateComplete {
		question, idx := session.Current()
		printQuestion(out, idx+1, session.Len(), question)

		if err := askQuestion(reader, out, session, question); err != nil {
			service.Abandon()
			if errors.Is(err, errQuit) {
				fmt.Fprintln(out, "Quiz abandoned.")
				return nil
			}
			return err
		}

		record, err := session.Submit()
		if err != nil {
			service.Abandon()
			return err
		}
		printFeedback(out, question, record)

		prompt := "Press Enter for the next question."
		if session.IsLast() {
			prompt = "Press Enter to see your result."
		}
		if _, err := promptLine(reader, out, prompt, ""); err != nil {
			service.Abandon()
			return err
		}
		if err := session.Advance(); err != nil {
			service.Abandon()
			return err
		}
	}

	report, err := service.Finish(ctx)
	if err != nil {
		return err
	}
	printResult(out, report)
	return nil
}

var errQuit = errors.New("quit")

// askQuestion reads until a valid choice has been selected.
func askQuestion(reader *bufio.Reader, out io.Writer, session *quiz.Session, question quiz.Question) error {
	keys := question.ChoiceKeys()
	for {
		answer, err := promptLine(reader, out, fmt.Sprintf("Your answer (%s or 1-%d, 'quit' to stop): ", strings.Join(keys, "/"), len(keys)), "")
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "quit") {
			return errQuit
		}

		if err := session.Select(resolveChoice(keys, answer)); err != nil {
			fmt.Fprintln(out, "Invalid choice.")
			continue
		}
		return nil
	}
}

func printQuestion(out io.Writer, number, total int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d/%d [%s / %s]", number, total, question.Field.DisplayName(), question.Category)
	if question.ExamName != "" {
		fmt.Fprintf(out, " %s #%d", question.ExamName, question.QuestionNumber)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n", question.QuestionText)
	if question.ImagePath != "" {
		fmt.Fprintf(out, "(figure: %s)\n", question.ImagePath)
	}
	fmt.Fprintln(out)
	for idx, key := range question.ChoiceKeys() {
		fmt.Fprintf(out, "%d. %s %s\n", idx+1, key, question.Choices[key])
	}
	fmt.Fprintln(out)
}

func printFeedback(out io.Writer, question quiz.Question, record quiz.AnswerRecord) {
	fmt.Fprintln(out)
	if record.IsCorrect {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintf(out, "Wrong. Correct answer was %s\n", choiceDisplay(question, record.CorrectAnswer))
	}
	if question.Explanation != "" {
		fmt.Fprintf(out, "\n%s\n", question.Explanation)
	}
}

func printResult(out io.Writer, report quiz.FinishReport) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score: %d/%d (%d%%)\n\n", report.Score.Correct, report.Score.Total, report.Score.Rate)
	for idx, answer := range report.Answers {
		mark := "NG"
		if answer.IsCorrect {
			mark = "OK"
		}
		fmt.Fprintf(out, "%2d. %s %-12s %s yours=%s correct=%s\n",
			idx+1,
			mark,
			answer.QuestionID,
			answer.Category,
			answer.UserAnswer,
			answer.CorrectAnswer,
		)
	}
	fmt.Fprintln(out)

	if report.Synced {
		fmt.Fprintf(out, "Sync: %s\n", report.SyncMessage)
		if report.Receipt.HTMLURL != "" {
			fmt.Fprintf(out, "  %s\n", report.Receipt.HTMLURL)
		}
		return
	}
	fmt.Fprintf(out, "Sync warning: %s (answers are saved locally)\n", report.SyncMessage)
}

func choiceDisplay(question quiz.Question, key string) string {
	text, ok := question.Choices[key]
	if !ok || strings.TrimSpace(text) == "" {
		return key
	}
	return fmt.Sprintf("%s. %s", key, text)
}
