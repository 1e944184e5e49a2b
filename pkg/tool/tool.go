package tool

import (
	"context"
	"errors"
)

type Tool struct {
	Name        string
	Description string

	Parameters map[string]any
}

var (
	ErrInvalidTool = errors.New("invalid tool")
)

// InvalidParamsError reports arguments that do not match a tool's schema.
type InvalidParamsError struct {
	Message string
}

func (e *InvalidParamsError) Error() string {
	return "Invalid parameters: " + e.Message + ". Please check the required fields and data types in your request."
}

type Provider interface {
	Tools(ctx context.Context) ([]Tool, error)
	Execute(ctx context.Context, name string, parameters map[string]any) (any, error)
}

func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	if schema["type"] == nil {
		schema["type"] = "object"
	}

	if schema["type"] == "object" && schema["properties"] == nil {
		schema["properties"] = map[string]any{}
	}

	return schema
}
