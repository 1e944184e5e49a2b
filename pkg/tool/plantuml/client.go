package plantuml

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrianliechti/plantuml/pkg/renderer"
	"github.com/adrianliechti/plantuml/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

const (
	ToolGenerate = "plantuml-generate"
	ToolFormats  = "plantuml-formats"
	ToolHealth   = "plantuml-health"
)

// FormatLister is implemented by renderers that can report the formats
// of their backend.
type FormatLister interface {
	Formats(ctx context.Context) ([]string, error)
}

// HealthChecker is implemented by renderers that depend on a reachable
// backend.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type Client struct {
	renderer renderer.Provider

	url  string
	save bool
}

func New(renderer renderer.Provider, options ...Option) (*Client, error) {
	c := &Client{
		renderer: renderer,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name:        ToolGenerate,
			Description: "Generate PlantUML diagrams from code. Returns Base64 encoded image data, or saves to file if save_path/savePath is provided (Base64 data omitted when saving to reduce bandwidth).\n\nParameters:\n- code (required): PlantUML source code including @startuml/@enduml tags\n- format (optional): Output format - png|svg|pdf|eps (default: png)\n- save_path or savePath (optional): Local file path to save diagram",

			Parameters: map[string]any{
				"type": "object",

				"properties": map[string]any{
					"code": map[string]any{
						"type":        "string",
						"minLength":   1,
						"description": "PlantUML diagram code. Required. Example: '@startuml\\nAlice -> Bob: Hello\\n@enduml'",
					},

					"format": map[string]any{
						"type":        "string",
						"enum":        renderer.FormatNames(),
						"default":     string(renderer.FormatPNG),
						"description": "Output format for the diagram. Optional, defaults to 'png'. Use 'svg' for scalable graphics, 'pdf' for documents.",
					},

					"save_path": map[string]any{
						"type":        "string",
						"description": "Local file path to save the diagram to.",
					},

					"savePath": map[string]any{
						"type":        "string",
						"description": "Alias of save_path.",
					},
				},

				"required":             []string{"code"},
				"additionalProperties": false,
			},
		},
		{
			Name:        ToolFormats,
			Description: "Get list of supported diagram output formats from the PlantUML server.\n\nParameters: None required\n\nReturns: Array of supported formats with recommendations for each format.",

			Parameters: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"additionalProperties": false,
			},
		},
		{
			Name:        ToolHealth,
			Description: "Check PlantUML server health and connectivity status.\n\nParameters: None required\n\nReturns: Server status, health information, and connection details. Call this first to verify server accessibility.",

			Parameters: map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"additionalProperties": false,
			},
		},
	}, nil
}

func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	switch name {
	case ToolGenerate:
		return c.generate(ctx, parameters)

	case ToolFormats:
		return c.formats(ctx)

	case ToolHealth:
		return c.health(ctx)

	default:
		return nil, tool.ErrInvalidTool
	}
}

func (c *Client) generate(ctx context.Context, parameters map[string]any) (*GenerateResult, error) {
	code, ok := parameters["code"].(string)

	if !ok || code == "" {
		return nil, &tool.InvalidParamsError{Message: "code must be a non-empty string"}
	}

	format := renderer.FormatPNG

	if val, ok := parameters["format"]; ok && val != nil {
		s, ok := val.(string)

		if !ok || !slices.Contains(renderer.FormatNames(), s) {
			return nil, &tool.InvalidParamsError{Message: fmt.Sprintf("format must be one of %v", renderer.FormatNames())}
		}

		format = renderer.Format(s)
	}

	savePath, _ := parameters["save_path"].(string)

	if savePath == "" {
		savePath, _ = parameters["savePath"].(string)
	}

	result, err := c.renderer.Render(ctx, code, format, nil)

	if err != nil {
		return &GenerateResult{
			Success: false,

			Error:      err.Error(),
			Suggestion: "Check your PlantUML syntax. Common issues: missing @startuml/@enduml tags, invalid element names, or syntax errors.",
		}, nil
	}

	response := &GenerateResult{
		Success: true,

		Format:  string(format),
		Message: fmt.Sprintf("Diagram generated successfully in %s format", format),
		Size:    fmt.Sprintf("%d bytes", len(result.Content)),
	}

	includeData := true

	if savePath != "" {
		message, err := c.saveFile(savePath, result.Content)

		if err != nil {
			response.FileSave = "Warning: Failed to save file - " + err.Error()
		} else {
			includeData = false

			response.FileSave = message
			response.Note = "Base64 data not included because file was saved locally. Omit save_path if you need the Base64 response."
		}
	}

	if includeData {
		response.Data = base64.StdEncoding.EncodeToString(result.Content)
	}

	return response, nil
}

func (c *Client) saveFile(path string, data []byte) (string, error) {
	if !c.save {
		return "", fmt.Errorf("file saving is disabled")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	info, err := os.Stat(path)

	if err != nil {
		return "", err
	}

	return fmt.Sprintf("File saved successfully to %s (%d bytes)", path, info.Size()), nil
}

func (c *Client) formats(ctx context.Context) (*FormatsResult, error) {
	formats := renderer.FormatNames()

	if l, ok := c.renderer.(FormatLister); ok {
		if val, err := l.Formats(ctx); err == nil && len(val) > 0 {
			formats = val
		}
	}

	return &FormatsResult{
		Formats: formats,
		Default: string(renderer.FormatPNG),

		Recommendations: map[string]string{
			"png": "Best for web display and sharing",
			"svg": "Best for scalable graphics and printing",
			"pdf": "Best for documents and reports",
			"eps": "Best for publications and LaTeX",
		},
	}, nil
}

func (c *Client) health(ctx context.Context) (*HealthResult, error) {
	result := &HealthResult{
		Healthy: true,
		Message: "PlantUML server is running",

		ServerURL: c.url,
		Status:    "Server is ready for diagram generation",
	}

	if h, ok := c.renderer.(HealthChecker); ok {
		if err := h.Health(ctx); err != nil {
			result.Healthy = false
			result.Message = "Health check failed: " + err.Error()
			result.Status = "Server is unavailable"
		}
	}

	return result, nil
}
