package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/mode"
	"github.com/goliatone/go-formengine/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	passPos      int
	multiConfigs []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiConfigs = append(s.multiConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type capture struct {
	saved []map[string]any
}

func (c *capture) save(_ context.Context, values map[string]any) error {
	c.saved = append(c.saved, values)
	return nil
}

func openForm(t *testing.T, id string, initial map[string]any, save engine.SaveFunc) *engine.Form {
	t.Helper()
	store, err := schema.LoadFS(schema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	s, ok := store.Form(id)
	if !ok {
		t.Fatalf("form %q missing", id)
	}
	form, err := engine.Open(s, initial, engine.WithSaveFunc(save))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return form
}

func TestFill_RoleWithPermissionGroups(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"Admin", "3"},
		confirm:  []bool{true, false, true},
		multiIdx: [][]int{{0, 1, 3}},
	}
	sink := &capture{}
	form := openForm(t, "role", nil, sink.save)

	if err := New(WithPromptDriver(driver)).Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if form.Mode() != mode.Edit {
		t.Fatalf("expected edit mode after fill, got %q", form.Mode())
	}
	if len(sink.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(sink.saved))
	}

	want := map[string]any{
		"name":        "Admin",
		"priority":    float64(3),
		"permissions": []any{float64(1), float64(2), float64(10)},
	}
	if diff := cmp.Diff(want, sink.saved[0]); diff != "" {
		t.Fatalf("saved values mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{0, 1, 2}, driver.multiConfigs[0].Defaults); diff != "" {
		t.Fatalf("group toggle should preselect Users (-want +got):\n%s", diff)
	}
}

func TestFill_RepromptsInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "ada@example.com", "", "ada"},
		passwords: []string{"secret"},
		selectIdx: []int{0, 1},
		multiIdx:  [][]int{{}},
		confirm:   []bool{true, true},
	}
	sink := &capture{}
	form := openForm(t, "user", nil, sink.save)

	filler := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err := filler.Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(sink.saved))
	}
	if got := sink.saved[0]["username"]; got != "ada" {
		t.Fatalf("username not re-prompted: %v", got)
	}
	if !containsPrefix(driver.infoMessages, "! Username is required") {
		t.Fatalf("expected validation message, got %v", driver.infoMessages)
	}
}

func TestFill_DeclineDiscardsEdits(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"Renamed", ""},
		confirm:  []bool{false, false, false},
		multiIdx: [][]int{{0}},
	}
	sink := &capture{}
	form := openForm(t, "role", map[string]any{"name": "Admin", "permissions": []any{1}}, sink.save)

	err := New(WithPromptDriver(driver)).Fill(context.Background(), form)
	if !errors.Is(err, ErrDiscarded) {
		t.Fatalf("expected ErrDiscarded, got %v", err)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("nothing should be saved")
	}
	if got, _ := form.Value("name"); got != "Admin" {
		t.Fatalf("edits should be discarded, got %v", got)
	}
	if form.Mode() != mode.View {
		t.Fatalf("expected view mode, got %q", form.Mode())
	}
}

func TestFill_RejectsNonNumericInput(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"Admin", "high", "7"},
		confirm:  []bool{false, false, true},
		multiIdx: [][]int{{4}},
	}
	sink := &capture{}
	form := openForm(t, "role", nil, sink.save)

	if err := New(WithPromptDriver(driver)).Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := sink.saved[0]["priority"]; got != float64(7) {
		t.Fatalf("expected priority 7, got %#v", got)
	}
	if !containsPrefix(driver.infoMessages, "Invalid priority") {
		t.Fatalf("expected number error, got %v", driver.infoMessages)
	}
}

func TestFill_NilForm(t *testing.T) {
	if err := New(WithPromptDriver(&stubDriver{})).Fill(context.Background(), nil); !errors.Is(err, ErrNilForm) {
		t.Fatalf("expected ErrNilForm, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	values := map[string]any{"name": "Admin", "permissions": []any{float64(1), float64(10)}}

	pretty, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatPrettyText)).Encode(values)
	if err != nil {
		t.Fatalf("encode pretty: %v", err)
	}
	if diff := cmp.Diff("name: Admin\npermissions: [1, 10]\n", string(pretty)); diff != "" {
		t.Fatalf("pretty mismatch (-want +got):\n%s", diff)
	}

	filler := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatFormURLEncoded))
	form, err := filler.Encode(values)
	if err != nil {
		t.Fatalf("encode form: %v", err)
	}
	if string(form) != "name=Admin&permissions%5B%5D=1&permissions%5B%5D=10" {
		t.Fatalf("unexpected form encoding %q", form)
	}
	if filler.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", filler.ContentType())
	}
}

func containsPrefix(messages []string, prefix string) bool {
	for _, msg := range messages {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
