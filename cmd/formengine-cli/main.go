package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/mode"
	pkgopenapi "github.com/goliatone/go-formengine/pkg/openapi"
	"github.com/goliatone/go-formengine/pkg/orchestrator"
	"github.com/goliatone/go-formengine/pkg/renderers/tui"
	"github.com/goliatone/go-formengine/pkg/schema"
)

func main() {
	formID := flag.String("form", "", "form id to open from the schema directory")
	schemaDir := flag.String("schema", "", "directory of form documents (embedded forms if empty)")
	openapiPath := flag.String("openapi", "", "OpenAPI document path")
	opID := flag.String("operation", "", "operation ID to turn into a form")
	renderer := flag.String("renderer", "html", "renderer to use: html, json or tui")
	valuesPath := flag.String("values", "", "JSON file with the record to load")
	modeFlag := flag.String("mode", "view", "initial mode: view or edit")
	format := flag.String("format", "json", "tui output format: json, form or pretty")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("v", false, "log diagnostics to stderr")
	flag.Parse()

	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := []orchestrator.Option{orchestrator.WithLogger(logger)}
	if *schemaDir != "" {
		store, err := schema.LoadFS(os.DirFS(*schemaDir))
		if err != nil {
			log.Fatalf("Failed to load forms: %v", err)
		}
		opts = append(opts, orchestrator.WithStore(store))
	}
	gen := orchestrator.New(opts...)

	values, err := readValues(*valuesPath)
	if err != nil {
		log.Fatalf("Failed to read values: %v", err)
	}

	req := orchestrator.Request{
		FormID:      *formID,
		OperationID: *opID,
		Values:      values,
		Mode:        mode.Mode(strings.ToLower(*modeFlag)),
		Renderer:    *renderer,
	}
	if *openapiPath != "" {
		req.Source = pkgopenapi.SourceFromFile(*openapiPath)
	}

	if *renderer == "tui" {
		if err := fill(ctx, gen, req, tui.OutputFormat(*format), logger); err != nil {
			log.Fatalf("Failed to fill form: %v", err)
		}
		return
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}

func fill(ctx context.Context, gen *orchestrator.Orchestrator, req orchestrator.Request, format tui.OutputFormat, logger *slog.Logger) error {
	filler := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(os.Stdout)),
		tui.WithOutputFormat(format),
		tui.WithLogger(logger),
	)
	save := func(_ context.Context, values map[string]any) error {
		data, err := filler.Encode(values)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	form, err := gen.Open(ctx, req, engine.WithSaveFunc(save))
	if err != nil {
		return err
	}
	err = filler.Fill(ctx, form)
	if errors.Is(err, tui.ErrDiscarded) || errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Changes discarded")
		return nil
	}
	return err
}

func readValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return values, nil
}
