// Package prompt fills a form on the terminal, one section at a time.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/G-Node/salesform/salesform/form"
)

// noneOption is offered for optional choices and maps to the empty value.
const noneOption = "(none)"

// Fill asks for the value of every visible element of the controller's form
// and submits it.  Dependent fields are only asked for while their group is
// shown.  When the submission is invalid the messages are printed and the user
// may go through the form again, with the values given so far as defaults.
// The returned Result is the outcome of the last submission.
func Fill(ctx context.Context, ctrl *form.Controller, d Driver) (form.Result, error) {
	f := ctrl.Form()
	if f.Name != "" {
		if err := d.Info(ctx, f.Name); err != nil {
			return form.Result{}, err
		}
	}
	for {
		for idx := range f.Sections {
			if err := fillSection(ctx, ctrl, d, idx); err != nil {
				return form.Result{}, err
			}
		}

		result, err := ctrl.Submit()
		if err != nil {
			return form.Result{}, err
		}
		if result.Valid {
			if err := printResult(ctx, d, result); err != nil {
				return result, err
			}
			return result, nil
		}

		for _, msg := range result.Messages {
			if err := d.Info(ctx, msg); err != nil {
				return result, err
			}
		}
		again, err := d.Confirm(ctx, ConfirmConfig{Message: "Correct the form?", Default: true})
		if err != nil {
			return result, err
		}
		if !again {
			return result, nil
		}
	}
}

// fillSection expands the section and prompts for its visible elements.
func fillSection(ctx context.Context, ctrl *form.Controller, d Driver, idx int) error {
	if !ctrl.Expanded(idx) {
		if err := ctrl.Toggle(idx); err != nil {
			return err
		}
	}
	section := ctrl.Form().Sections[idx]
	if err := d.Info(ctx, fmt.Sprintf("%s %s", ctrl.Indicator(idx), section.Title)); err != nil {
		return err
	}
	for _, elem := range section.Elements {
		if !ctrl.ElementVisible(elem.Name) {
			continue
		}
		value, err := ask(ctx, d, elem, ctrl.Value(elem.Name))
		if err != nil {
			return err
		}
		if err := ctrl.Change(elem.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func ask(ctx context.Context, d Driver, elem form.Element, current string) (string, error) {
	message := elem.Label
	if message == "" {
		message = elem.Name
	}
	if elem.Required {
		message += " *"
	}

	switch {
	case elem.Type == form.HiddenInput:
		return current, nil
	case elem.Type.HasOptions():
		options := elem.ValueList
		if !elem.Required {
			options = append([]string{noneOption}, options...)
		}
		defidx := -1
		for i, opt := range options {
			if opt == current || (opt == noneOption && current == "") {
				defidx = i
			}
		}
		idx, err := d.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defidx, Help: elem.Description})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) || options[idx] == noneOption {
			return "", nil
		}
		return options[idx], nil
	case elem.Type == form.CheckboxInput:
		checked, err := d.Confirm(ctx, ConfirmConfig{Message: message, Default: current != "", Help: elem.Description})
		if err != nil || !checked {
			return "", err
		}
		return "on", nil
	case elem.Type == form.TextArea:
		return d.TextArea(ctx, InputConfig{Message: message, Default: current, Help: elem.Description})
	default:
		return d.Input(ctx, InputConfig{Message: message, Default: current, Help: elem.Description})
	}
}

func printResult(ctx context.Context, d Driver, result form.Result) error {
	if err := d.Info(ctx, result.Notice); err != nil {
		return err
	}
	width := 0
	for _, entry := range result.Submitted {
		if len(entry.Label) > width {
			width = len(entry.Label)
		}
	}
	for _, entry := range result.Submitted {
		line := fmt.Sprintf("  %-*s  %s", width, entry.Label, strings.TrimSpace(entry.Value))
		if err := d.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}
