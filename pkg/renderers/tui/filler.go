// Package tui fills an engine.Form from the terminal. Each resolved field is
// prompted according to its widget; grouped multiselects offer a select-all
// toggle per group before the individual options.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/fields"
	"github.com/goliatone/go-formengine/pkg/mode"
)

// Filler drives an engine.Form through a PromptDriver.
type Filler struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	logger       *slog.Logger
}

// New constructs a Filler with defaults (survey driver, JSON output).
func New(options ...Option) *Filler {
	f := &Filler{
		outputFormat: OutputFormatJSON,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// ContentType reports the serialization format used by Encode.
func (f *Filler) ContentType() string {
	switch f.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Fill switches the form to Edit, prompts every resolved field, then asks
// for confirmation and submits. Fields rejected by validation are prompted
// again until the submission passes. Declining to submit cancels the edits
// and returns ErrDiscarded. Save failures are reported and returned.
func (f *Filler) Fill(ctx context.Context, form *engine.Form) error {
	if form == nil {
		return ErrNilForm
	}
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if form.Mode() != mode.Edit {
		if _, err := form.Dispatch(ctx, mode.ActionEdit); err != nil {
			return err
		}
	}

	view := form.View()
	if view.Title != "" {
		f.info(ctx, view.Title)
	}
	for _, unresolved := range view.Unresolved {
		f.logger.Warn("field skipped", "field", unresolved.Key, "type", unresolved.Type)
		f.info(ctx, fmt.Sprintf("Skipping %s: unsupported type %q", unresolved.Key, unresolved.Type))
	}

	pending := allFields(view)
	for {
		for _, field := range pending {
			if err := f.promptField(ctx, form, field); err != nil {
				return err
			}
		}

		ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
		if err != nil {
			return err
		}
		if !ok {
			if _, err := form.Dispatch(ctx, mode.ActionCancel); err != nil {
				return err
			}
			return ErrDiscarded
		}

		err = form.Submit(ctx)
		var verr *engine.ValidationError
		if !errors.As(err, &verr) {
			if err != nil {
				for _, msg := range form.FormErrors() {
					f.failure(ctx, msg)
				}
			}
			return err
		}

		pending = pending[:0]
		for _, field := range allFields(form.View()) {
			if len(field.Errors) == 0 {
				continue
			}
			for _, msg := range field.Errors {
				f.failure(ctx, msg)
			}
			pending = append(pending, field)
		}
	}
}

func (f *Filler) promptField(ctx context.Context, form *engine.Form, field engine.FieldView) error {
	switch field.Widget {
	case fields.WidgetPasswordInput:
		return f.promptText(ctx, form, field, true)
	case fields.WidgetNumberInput:
		return f.promptNumber(ctx, form, field)
	case fields.WidgetRadioGroup, fields.WidgetSelect:
		return f.promptChoice(ctx, form, field)
	case fields.WidgetCheckboxGroup:
		return f.promptMulti(ctx, form, field)
	default:
		return f.promptText(ctx, form, field, false)
	}
}

func (f *Filler) promptText(ctx context.Context, form *engine.Form, field engine.FieldView, secret bool) error {
	cfg := InputConfig{
		Message:     label(field),
		Default:     field.Text,
		Help:        field.HelpText,
		Placeholder: field.Placeholder,
		Validator:   requiredText(field),
	}
	var (
		response string
		err      error
	)
	if secret {
		cfg.Default = ""
		if field.Text != "" {
			cfg.Validator = nil
			cfg.Help = firstNonEmpty(field.HelpText, "Leave empty to keep the current value")
		}
		response, err = f.driver.Password(ctx, cfg)
		if err == nil && response == "" && field.Text != "" {
			return nil
		}
	} else {
		response, err = f.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}
	return form.SetField(field.Key, response)
}

func (f *Filler) promptNumber(ctx context.Context, form *engine.Form, field engine.FieldView) error {
	required := requiredText(field)
	for {
		input, err := f.driver.Input(ctx, InputConfig{
			Message:     label(field),
			Default:     field.Text,
			Help:        field.HelpText,
			Placeholder: field.Placeholder,
			Validator:   required,
		})
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			return form.SetField(field.Key, nil)
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			f.failure(ctx, fmt.Sprintf("Invalid %s: not a number", field.Key))
			continue
		}
		return form.SetField(field.Key, trimmed)
	}
}

func (f *Filler) promptChoice(ctx context.Context, form *engine.Form, field engine.FieldView) error {
	if len(field.Options) == 0 {
		return nil
	}
	labels := make([]string, len(field.Options))
	current := 0
	for i, opt := range field.Options {
		labels[i] = optionLabel(opt)
		if opt.Selected {
			current = i
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      labels,
		DefaultIndex: current,
		Help:         field.HelpText,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return fmt.Errorf("tui: invalid selection for %q", field.Key)
	}
	return form.SetField(field.Key, field.Options[idx].Value)
}

func (f *Filler) promptMulti(ctx context.Context, form *engine.Form, field engine.FieldView) error {
	for _, group := range field.Groups {
		next := "Select"
		if group.All {
			next = "Clear"
		}
		toggle, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s all %s (%s)?", next, group.Name, aggregateLabel(group)),
		})
		if err != nil {
			return err
		}
		if toggle {
			if err := form.ToggleGroup(field.Key, group.Name); err != nil {
				return err
			}
		}
	}

	options := field.Options
	if len(field.Groups) > 0 {
		options = currentOptions(form.View(), field.Key)
	}
	if len(options) == 0 {
		return nil
	}

	labels := make([]string, len(options))
	var defaults []int
	for i, opt := range options {
		labels[i] = optionLabel(opt)
		if opt.Selected {
			defaults = append(defaults, i)
		}
	}
	picked, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  label(field),
		Options:  labels,
		Defaults: defaults,
		Help:     field.HelpText,
	})
	if err != nil {
		return err
	}

	chosen := make(map[int]bool, len(picked))
	for _, idx := range picked {
		chosen[idx] = true
	}
	for i, opt := range options {
		if chosen[i] == opt.Selected {
			continue
		}
		if err := form.ToggleOption(field.Key, opt.Value, chosen[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) info(ctx context.Context, msg string) {
	_ = f.driver.Info(ctx, f.theme.InfoPrefix+msg)
}

func (f *Filler) failure(ctx context.Context, msg string) {
	_ = f.driver.Info(ctx, f.theme.ErrorPrefix+msg)
}

func allFields(view engine.View) []engine.FieldView {
	var out []engine.FieldView
	for _, tab := range view.Tabs {
		for _, section := range tab.Sections {
			out = append(out, section.Fields...)
		}
	}
	return out
}

func currentOptions(view engine.View, key string) []engine.OptionView {
	for _, field := range allFields(view) {
		if field.Key == key {
			return field.Options
		}
	}
	return nil
}

func requiredText(field engine.FieldView) func(string) error {
	if !field.Required {
		return nil
	}
	return func(value string) error {
		if value == "" {
			return fmt.Errorf("%s is required", label(field))
		}
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func label(field engine.FieldView) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Key
}

func optionLabel(opt engine.OptionView) string {
	if opt.Label != "" {
		return opt.Label
	}
	return fields.AsString(opt.Value)
}

func aggregateLabel(group engine.GroupView) string {
	switch {
	case group.All:
		return "all selected"
	case group.Indeterminate:
		return "some selected"
	default:
		return "none selected"
	}
}
