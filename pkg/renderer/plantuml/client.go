package plantuml

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/adrianliechti/plantuml/pkg/renderer"
)

var _ renderer.Provider = (*Client)(nil)

// Client renders diagrams by piping the source through a local PlantUML
// installation, either a launcher on PATH or java with a jar.
type Client struct {
	command string
	args    []string

	java string
	jar  string

	dot     string
	fonts   string
	charset string
	include string

	env     []string
	timeout time.Duration
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		command: "plantuml",

		java:    "java",
		charset: "UTF-8",
	}

	for _, option := range options {
		option(c)
	}

	if c.jar == "" && c.command == "" {
		return nil, errors.New("invalid command")
	}

	return c, nil
}

func (c *Client) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	if options == nil {
		options = new(renderer.RenderOptions)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	name, args := c.commandLine(format)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = c.environ()
	cmd.Stdin = strings.NewReader(code)

	var stdout bytes.Buffer
	var stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil && !isDiagramError(err, stdout.Len()) {
		return nil, convertError(err, stderr.String())
	}

	return &renderer.Rendering{
		Format: format,

		Content:     stdout.Bytes(),
		ContentType: format.ContentType(),
	}, nil
}

func (c *Client) commandLine(format renderer.Format) (string, []string) {
	name := c.command
	args := append([]string{}, c.args...)

	if c.jar != "" {
		name = c.java
		args = []string{"-Djava.awt.headless=true"}

		if c.fonts != "" {
			args = append(args, "-Djava.awt.fonts="+c.fonts)
		}

		if c.include != "" {
			args = append(args, "-Dplantuml.include.path="+c.include)
		}

		args = append(args, "-jar", c.jar)
	}

	args = append(args, "-pipe", "-t"+string(format))

	if c.charset != "" {
		args = append(args, "-charset", c.charset)
	}

	if c.dot != "" {
		args = append(args, "-graphvizdot", c.dot)
	}

	return name, args
}

func (c *Client) environ() []string {
	env := os.Environ()

	if c.dot != "" {
		env = append(env, "GRAPHVIZ_DOT="+c.dot)
	}

	if c.jar == "" {
		var props []string

		if c.fonts != "" {
			props = append(props, "-Djava.awt.fonts="+c.fonts)
		}

		if c.include != "" {
			props = append(props, "-Dplantuml.include.path="+c.include)
		}

		if len(props) > 0 {
			env = append(env, "JAVA_TOOL_OPTIONS="+strings.Join(props, " "))
		}
	}

	return append(env, c.env...)
}

// the engine exits with 200 on an invalid diagram but still writes the
// error image to stdout
const exitDiagramError = 200

func isDiagramError(err error, size int) bool {
	var exitErr *exec.ExitError

	if !errors.As(err, &exitErr) {
		return false
	}

	return exitErr.ExitCode() == exitDiagramError && size > 0
}

func convertError(err error, stderr string) error {
	message := strings.TrimSpace(stderr)

	if message == "" {
		message = err.Error()
	}

	return &renderer.RenderError{
		Message: message,
		Err:     err,
	}
}
