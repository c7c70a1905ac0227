package loader

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

//go:embed standards/*.yaml
var standardsFS embed.FS

var (
	standardsOnce sync.Once
	standardDocs  []*Document
)

// builtinStandards decodes the embedded standard elements once. Each call
// returns fresh Document values sharing the decoded elements, which are
// never mutated.
func builtinStandards() []*Document {
	standardsOnce.Do(func() {
		entries, err := standardsFS.ReadDir("standards")
		if err != nil {
			panic(fmt.Sprintf("loader: reading embedded standards: %v", err))
		}
		for _, entry := range entries {
			content, err := standardsFS.ReadFile(path.Join("standards", entry.Name()))
			if err != nil {
				panic(fmt.Sprintf("loader: reading %s: %v", entry.Name(), err))
			}
			name := strings.TrimSuffix(entry.Name(), DocumentExt)
			el, err := ParseDocument(core.KindStandard, name, content)
			if err != nil {
				panic(fmt.Sprintf("loader: embedded standard %s: %v", name, err))
			}
			standardDocs = append(standardDocs, &Document{Element: el, Hash: Hash(content), Builtin: true})
		}
	})

	out := make([]*Document, len(standardDocs))
	for i, d := range standardDocs {
		doc := *d
		out[i] = &doc
	}
	return out
}

// Standards returns the built-in standard elements.
func Standards() []*core.Element {
	docs := builtinStandards()
	out := make([]*core.Element, len(docs))
	for i, d := range docs {
		out[i] = d.Element
	}
	return out
}
