package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/structurizr-site/generatr/internal/config"
	"github.com/structurizr-site/generatr/internal/logger"
	"github.com/structurizr-site/generatr/internal/output"
	"github.com/structurizr-site/generatr/internal/plantuml"
	"github.com/structurizr-site/generatr/internal/result"
	"github.com/structurizr-site/generatr/internal/site"
	"github.com/structurizr-site/generatr/internal/workspace"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body      string            `json:"body"` // workspace (raw or base64 if isBase64)
	IsBase64  bool              `json:"isBase64,omitempty"`
	Format    string            `json:"format,omitempty"` // "json" (default) or "hcl"
	SiteTitle string            `json:"siteTitle,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
}

// LambdaResponse is returned to the client (API Gateway).
type LambdaResponse struct {
	StatusCode int               `json:"statusCode"`
	Success    bool              `json:"success"`
	Summary    string            `json:"summary,omitempty"`
	Skipped    []string          `json:"skipped,omitempty"`
	Errors     []result.Error    `json:"errors,omitempty"`
	Warnings   []result.Warning  `json:"warnings,omitempty"`
	Files      map[string]string `json:"files,omitempty"` // site path -> content (base64)
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration (body = JSON string).
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: http.StatusOK}

	cfg, err := config.Load("", nil)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return fail(out, http.StatusInternalServerError, "config_error", err.Error()), nil
	}

	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return fail(out, http.StatusBadRequest, "invalid_input", "invalid base64 body: "+err.Error()), nil
		}
		body = string(dec)
	}

	var format workspace.Format
	switch {
	case event.Format == "" || strings.EqualFold(event.Format, string(workspace.FormatJSON)):
		format = workspace.FormatJSON
	case strings.EqualFold(event.Format, string(workspace.FormatHCL)):
		format = workspace.FormatHCL
	default:
		return fail(out, http.StatusBadRequest, "invalid_input", "unsupported workspace format "+strconv.Quote(event.Format)), nil
	}
	ws, err := workspace.Decode([]byte(body), format, workspace.DecodeOptions{Variables: event.Variables})
	if err != nil {
		return fail(out, http.StatusBadRequest, "invalid_workspace", err.Error()), nil
	}

	renderer := plantuml.NewRenderer(ws, plantuml.Options{
		ServerURL: cfg.PlantUML.Server,
		Timeout:   time.Duration(cfg.PlantUML.TimeoutSeconds) * time.Second,
	})
	gctx := site.NewGeneratorContext(ws, renderer, site.Options{
		SiteTitle:   event.SiteTitle,
		Parallelism: cfg.Generate.Parallelism,
	})
	gctx.Logger = logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	files := output.NewMemWriter()
	res, err := site.Generate(ctx, gctx, files)
	if res == nil {
		return fail(out, http.StatusInternalServerError, "generation_error", err.Error()), nil
	}

	out.Success = res.Success
	out.Summary = res.Summary()
	out.Skipped = res.Skipped
	out.Errors = res.Errors
	out.Warnings = res.Warnings
	if !res.Success {
		out.StatusCode = http.StatusUnprocessableEntity
		return wrap(out), nil
	}
	out.Files = make(map[string]string)
	for name, content := range files.Files() {
		out.Files[name] = base64.StdEncoding.EncodeToString(content)
	}
	return wrap(out), nil
}

func fail(out LambdaResponse, status int, kind, msg string) APIGatewayResponse {
	out.StatusCode = status
	out.Success = false
	out.Errors = []result.Error{{Type: kind, Severity: "error", Message: msg}}
	return wrap(out)
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	lambda.Start(handler)
}
