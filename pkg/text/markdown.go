package text

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is a fenced PlantUML code block found in a Markdown document.
type Block struct {
	Language string

	// Line is the 1-based line of the first line of code.
	Line int

	Code string
}

var diagramLanguages = []string{
	"plantuml",
	"puml",
	"uml",
}

// ExtractDiagrams returns the PlantUML blocks of a Markdown document in
// document order. Fences without a language count when their content
// starts with an @start tag.
func ExtractDiagrams(markdown string) []Block {
	source := []byte(markdown)
	reader := text.NewReader(source)
	doc := goldmark.DefaultParser().Parse(reader)

	var blocks []Block

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := n.(*ast.FencedCodeBlock)

		if !ok {
			return ast.WalkContinue, nil
		}

		lines := fence.Lines()

		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		var code strings.Builder

		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			code.Write(segment.Value(source))
		}

		language := strings.ToLower(string(fence.Language(source)))

		if !isDiagram(language, code.String()) {
			return ast.WalkSkipChildren, nil
		}

		start := lines.At(0).Start

		blocks = append(blocks, Block{
			Language: language,

			Line: bytes.Count(source[:start], []byte("\n")) + 1,

			Code: code.String(),
		})

		return ast.WalkSkipChildren, nil
	})

	return blocks
}

func isDiagram(language, code string) bool {
	for _, l := range diagramLanguages {
		if language == l {
			return true
		}
	}

	if language != "" {
		return false
	}

	return strings.HasPrefix(strings.TrimSpace(code), "@start")
}
