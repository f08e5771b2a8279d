package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"ap-dojo/internal/quiz"
)

func runSetup(ctx context.Context, reader *bufio.Reader, out io.Writer, service *quiz.Service) error {
	fmt.Fprintln(out, "First run: enter your name and the GitHub settings used to save answers.")

	for {
		user, err := promptLine(reader, out, "User name: ", "")
		if err != nil {
			return err
		}
		token, err := promptLine(reader, out, "GitHub token: ", "")
		if err != nil {
			return err
		}
		owner, err := promptLine(reader, out, "Repository owner: ", "")
		if err != nil {
			return err
		}
		repo, err := promptLine(reader, out, "Repository name: ", "")
		if err != nil {
			return err
		}

		err = service.Setup(ctx, user, quiz.RemoteConfig{Token: token, Owner: owner, Repo: repo})
		var validationErr *quiz.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(out, "%v\n\n", validationErr)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Settings saved.")
		fmt.Fprintln(out)
		return nil
	}
}

func runSettings(ctx context.Context, reader *bufio.Reader, out io.Writer, service *quiz.Service) error {
	user, err := service.CurrentUser(ctx)
	if err != nil {
		return err
	}
	cfg, err := service.RemoteConfig(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Press Enter to keep a value. Enter '-' to clear the token.")
	newUser, err := promptLine(reader, out, fmt.Sprintf("User name [%s]: ", user), user)
	if err != nil {
		return err
	}
	token, err := promptLine(reader, out, fmt.Sprintf("GitHub token [%s]: ", maskToken(cfg.Token)), cfg.Token)
	if err != nil {
		return err
	}
	if token == "-" {
		token = ""
	}
	owner, err := promptLine(reader, out, fmt.Sprintf("Repository owner [%s]: ", cfg.Owner), cfg.Owner)
	if err != nil {
		return err
	}
	repo, err := promptLine(reader, out, fmt.Sprintf("Repository name [%s]: ", cfg.Repo), cfg.Repo)
	if err != nil {
		return err
	}

	if err := service.UpdateSettings(ctx, newUser, quiz.RemoteConfig{Token: token, Owner: owner, Repo: repo}); err != nil {
		return err
	}
	fmt.Fprintln(out, "Settings saved.")
	return nil
}
