package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractDiagrams(t *testing.T) {
	markdown := "# Design\n" +
		"\n" +
		"```plantuml\n" +
		"@startuml\n" +
		"A -> B\n" +
		"@enduml\n" +
		"```\n" +
		"\n" +
		"```go\n" +
		"package main\n" +
		"```\n" +
		"\n" +
		"```PUML\n" +
		"@startuml\n" +
		"B -> C\n" +
		"@enduml\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"@startmindmap\n" +
		"* root\n" +
		"@endmindmap\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"plain text\n" +
		"```\n"

	blocks := ExtractDiagrams(markdown)

	require.Len(t, blocks, 3)

	require.Equal(t, "plantuml", blocks[0].Language)
	require.Equal(t, 4, blocks[0].Line)
	require.Equal(t, "@startuml\nA -> B\n@enduml\n", blocks[0].Code)

	require.Equal(t, "puml", blocks[1].Language)
	require.Equal(t, "@startuml\nB -> C\n@enduml\n", blocks[1].Code)

	require.Equal(t, "", blocks[2].Language)
	require.Equal(t, "@startmindmap\n* root\n@endmindmap\n", blocks[2].Code)
}

func TestExtractDiagramsNone(t *testing.T) {
	require.Empty(t, ExtractDiagrams(""))
	require.Empty(t, ExtractDiagrams("just text\n\n```\n```\n"))
}
