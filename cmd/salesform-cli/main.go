package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/G-Node/salesform/salesform/form"
	"github.com/G-Node/salesform/salesform/prompt"
)

func main() {
	formPath := flag.String("form", "", "YAML form definition (default: built-in client information form)")
	flag.Parse()

	clientForm := form.ClientInfo()
	if *formPath != "" {
		var err error
		if clientForm, err = form.Load(*formPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	ctrl, err := form.NewController(clientForm)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := prompt.Fill(ctx, ctrl, prompt.NewSurveyDriver())
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Aborted")
		os.Exit(130)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !result.Valid {
		os.Exit(2)
	}
}
