package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/G-Node/salesform/salesform/form"
	"github.com/google/go-cmp/cmp"
)

// fakeDriver answers prompts from a map keyed by prompt message.  Prompts
// without an answer keep their default.
type fakeDriver struct {
	answers  map[string]string
	asked    []string
	info     []string
	confirms []bool
}

func (d *fakeDriver) answer(message, def string) string {
	d.asked = append(d.asked, message)
	if a, ok := d.answers[message]; ok {
		return a
	}
	return def
}

func (d *fakeDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return d.answer(cfg.Message, cfg.Default), nil
}

func (d *fakeDriver) TextArea(ctx context.Context, cfg InputConfig) (string, error) {
	return d.answer(cfg.Message, cfg.Default), nil
}

func (d *fakeDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	def := ""
	if cfg.DefaultIndex >= 0 {
		def = cfg.Options[cfg.DefaultIndex]
	}
	a := d.answer(cfg.Message, def)
	for idx, opt := range cfg.Options {
		if opt == a {
			return idx, nil
		}
	}
	return -1, nil
}

func (d *fakeDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.confirms) == 0 {
		return false, nil
	}
	c := d.confirms[0]
	d.confirms = d.confirms[1:]
	return c, nil
}

func (d *fakeDriver) Info(ctx context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func (d *fakeDriver) wasAsked(message string) bool {
	for _, m := range d.asked {
		if m == message {
			return true
		}
	}
	return false
}

func requiredAnswers() map[string]string {
	return map[string]string{
		"Client name *":               "Acme Ltd",
		"Phone number *":              "+254 700 000000",
		"Email *":                     "info@acme.example",
		"Job title *":                 "Procurement",
		"Meeting date *":              "2024-03-01",
		"Meeting location *":          "Nairobi",
		"Meeting status *":            "completed",
		"Building name *":             "Acme Towers",
		"Office name *":               "Head office",
		"Industry *":                  "Finance",
		"Connected to the internet *": "no",
		"Product *":                   "fibre",
		"Deal status *":               "closed",
	}
}

func newController(t *testing.T) *form.Controller {
	t.Helper()
	ctrl, err := form.NewController(form.ClientInfo())
	if err != nil {
		t.Fatalf("Failed to create controller: %v", err)
	}
	return ctrl
}

func TestFillValid(t *testing.T) {
	ctrl := newController(t)
	d := &fakeDriver{answers: requiredAnswers()}

	res, err := Fill(context.Background(), ctrl, d)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if !res.Valid || res.Notice != form.SubmitNotice {
		t.Fatalf("Unexpected result: %+v", res)
	}
	if len(res.Submitted) != len(d.answers) {
		t.Fatalf("Submitted %d values, expected %d", len(res.Submitted), len(d.answers))
	}
	if d.wasAsked("Internet service provider") {
		t.Fatal("Asked for provider without a connection")
	}
	if d.wasAsked("Other industry") {
		t.Fatal("Asked for other industry without selecting Other")
	}
	if d.info[0] != "Client information" {
		t.Fatalf("Form name not printed first: %q", d.info[0])
	}
	if !contains(d.info, form.SubmitNotice) {
		t.Fatalf("Notice not printed: %v", d.info)
	}
	// the controller is reset after submission
	if ctrl.Value("client_name") != "" {
		t.Fatal("Controller not reset after submission")
	}
}

func TestFillDependents(t *testing.T) {
	ctrl := newController(t)
	answers := requiredAnswers()
	answers["Connected to the internet *"] = "yes"
	answers["Internet service provider"] = "other"
	answers["Other provider"] = "Starlink"
	answers["Connection type"] = "shared"
	d := &fakeDriver{answers: answers}

	res, err := Fill(context.Background(), ctrl, d)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	got := make(map[string]string)
	for _, entry := range res.Submitted {
		got[entry.Name] = entry.Value
	}
	for name, value := range map[string]string{"provider": "other", "other_provider": "Starlink", "connection_type": "shared"} {
		if got[name] != value {
			t.Errorf("%s = %q, expected %q", name, got[name], value)
		}
	}
	if !d.wasAsked("Monthly price") {
		t.Error("Dependent field of a revealed group not asked")
	}
}

func TestFillCorrection(t *testing.T) {
	ctrl := newController(t)
	answers := requiredAnswers()
	delete(answers, "Client name *")
	delete(answers, "Product *")
	d := &fakeDriver{answers: answers, confirms: []bool{false}}

	res, err := Fill(context.Background(), ctrl, d)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if res.Valid {
		t.Fatal("Incomplete form submitted")
	}
	expected := []string{"Client name is required.", "Product is required."}
	if diff := cmp.Diff(expected, res.Messages); diff != "" {
		t.Fatalf("Unexpected messages (-want +got):\n%s", diff)
	}
	for _, msg := range expected {
		if !contains(d.info, msg) {
			t.Errorf("Message %q not printed", msg)
		}
	}
	// values are kept for the next attempt
	if ctrl.Value("client_email") != "info@acme.example" {
		t.Fatal("Values lost after invalid submission")
	}

	// second attempt with the missing values
	d.answers["Client name *"] = "Acme Ltd"
	d.answers["Product *"] = "other"
	d.answers["Other product"] = "Backup link"
	d.confirms = []bool{true}
	d.asked = nil
	res, err = Fill(context.Background(), ctrl, d)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if !res.Valid {
		t.Fatalf("Completed form invalid: %v", res.Messages)
	}
	if len(res.Submitted) != len(requiredAnswers())+1 {
		t.Fatalf("Submitted %d values, expected %d", len(res.Submitted), len(requiredAnswers())+1)
	}
}

func TestFillRetry(t *testing.T) {
	ctrl := newController(t)
	answers := requiredAnswers()
	delete(answers, "Job title *")
	d := &retryDriver{fakeDriver: fakeDriver{answers: answers, confirms: []bool{true}}}

	res, err := Fill(context.Background(), ctrl, d)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if !res.Valid {
		t.Fatalf("Form invalid after correction: %v", res.Messages)
	}
	if !contains(d.info, "Job title is required.") {
		t.Fatal("Message of the first attempt not printed")
	}
}

// retryDriver supplies the job title once the user agrees to correct the
// form.
type retryDriver struct {
	fakeDriver
}

func (d *retryDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	again, err := d.fakeDriver.Confirm(ctx, cfg)
	if again {
		d.answers["Job title *"] = "Procurement"
	}
	return again, err
}

func TestFillCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewSurveyDriver()
	if _, err := Fill(ctx, newController(t), d); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func contains(lines []string, s string) bool {
	for _, line := range lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
