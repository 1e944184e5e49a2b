package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/plantuml/pkg/client"
	"github.com/adrianliechti/plantuml/pkg/renderer"
	"github.com/adrianliechti/plantuml/pkg/text"

	"github.com/google/uuid"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:9090", "server url")
	tokenFlag := flag.String("token", "", "server token")
	formatFlag := flag.String("format", "png", "output format (png, svg, pdf, eps)")
	outputFlag := flag.String("output", "", "output file, or directory for markdown input")
	markdownFlag := flag.Bool("markdown", false, "render every PlantUML block of a markdown file")

	flag.Parse()

	ctx := context.Background()

	format, err := renderer.ParseFormat(*formatFlag)

	if err != nil {
		fatal(err)
	}

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	path := flag.Arg(0)

	if path == "" {
		repl(ctx, c, format)
		return
	}

	data, err := readInput(path)

	if err != nil {
		fatal(err)
	}

	if *markdownFlag || isMarkdownFile(path) {
		if err := renderMarkdown(ctx, c, format, string(data), *outputFlag); err != nil {
			fatal(err)
		}

		return
	}

	name := *outputFlag

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + format.Extension()

		if path == "-" {
			name = uuid.New().String() + format.Extension()
		}
	}

	if err := renderFile(ctx, c, format, string(data), name); err != nil {
		fatal(err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}

	return false
}

func renderMarkdown(ctx context.Context, c *client.Client, format renderer.Format, markdown, dir string) error {
	blocks := text.ExtractDiagrams(markdown)

	if len(blocks) == 0 {
		return fmt.Errorf("no PlantUML blocks found")
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	for i, block := range blocks {
		name := filepath.Join(dir, fmt.Sprintf("diagram-%d%s", i+1, format.Extension()))

		if err := renderFile(ctx, c, format, block.Code, name); err != nil {
			return fmt.Errorf("block at line %d: %w", block.Line, err)
		}
	}

	return nil
}

func renderFile(ctx context.Context, c *client.Client, format renderer.Format, code, name string) error {
	image, err := c.Diagrams.Image(ctx, string(format), code)

	if err != nil {
		return err
	}

	if err := os.WriteFile(name, image.Content, 0644); err != nil {
		return err
	}

	fmt.Println("Saved: " + name)

	return nil
}

// repl reads diagrams from stdin, each terminated by an @end line.
func repl(ctx context.Context, c *client.Client, format renderer.Format) {
	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

	var code strings.Builder

	output.WriteString(">>> ")

	for {
		line, err := reader.ReadString('\n')

		if err != nil {
			if err == io.EOF {
				return
			}

			fatal(err)
		}

		code.WriteString(line)

		if !strings.HasPrefix(strings.TrimSpace(line), "@end") {
			continue
		}

		name := uuid.New().String() + format.Extension()

		if err := renderFile(ctx, c, format, code.String(), name); err != nil {
			output.WriteString(err.Error() + "\n")
		}

		code.Reset()

		output.WriteString("\n")
		output.WriteString(">>> ")
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
