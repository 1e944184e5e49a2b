package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/adrianliechti/plantuml/pkg/tool"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	impl *mcp.Implementation
	opts *mcp.ServerOptions

	tools []tool.Provider
}

func New(name, version string, tools ...tool.Provider) (*Server, error) {
	s := &Server{
		impl: &mcp.Implementation{
			Name:    name,
			Version: version,
		},

		opts: &mcp.ServerOptions{
			Instructions: "PlantUML diagram generation. Call plantuml-health first, then plantuml-generate with PlantUML source including @startuml/@enduml tags.",

			KeepAlive: time.Second * 30,
		},

		tools: tools,
	}

	return s, nil
}

func (s *Server) Server(ctx context.Context) (*mcp.Server, error) {
	server := mcp.NewServer(s.impl, s.opts)

	for _, p := range s.tools {
		tools, err := p.Tools(ctx)

		if err != nil {
			return nil, err
		}

		for _, t := range tools {
			data, _ := json.Marshal(tool.NormalizeSchema(t.Parameters))

			schema := new(jsonschema.Schema)

			if err := schema.UnmarshalJSON(data); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				var args map[string]any

				if r := req.Params.Arguments; len(r) > 0 {
					if err := json.Unmarshal(r, &args); err != nil {
						return nil, &tool.InvalidParamsError{Message: err.Error()}
					}
				}

				result, err := p.Execute(ctx, t.Name, args)

				if err != nil {
					return nil, err
				}

				return convertResult(result), nil
			}

			server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, handler)
		}
	}

	return server, nil
}

// Handler serves the tools over stateless streamable HTTP.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	server, err := s.Server(ctx)

	if err != nil {
		return nil, err
	}

	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	}), nil
}

// RunStdio serves the tools on stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	server, err := s.Server(ctx)

	if err != nil {
		return err
	}

	return server.Run(ctx, &mcp.StdioTransport{})
}

func convertResult(result any) *mcp.CallToolResult {
	switch v := result.(type) {
	case *mcp.CallToolResult:
		return v

	case string:
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: v,
				},
			},
		}

	default:
		data, _ := json.MarshalIndent(v, "", "  ")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: string(data),
				},
			},
		}
	}
}
