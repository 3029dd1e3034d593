package document

import (
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Schema is a compiled, deliberately lenient JSON schema.
type Schema struct {
	Name   string
	schema *gojsonschema.Schema
}

// Shapes checked against model output and caller-supplied resume JSON.
var (
	ResumeShape      = mustSchema("resume")
	PortfolioShape   = mustSchema("portfolio")
	ATSShape         = mustSchema("ats")
	CoverLetterShape = mustSchema("cover_letter")
)

func mustSchema(name string) Schema {
	raw, err := schemaFiles.ReadFile(path.Join("schemas", name+".json"))
	if err != nil {
		panic(fmt.Sprintf("document: read schema %s: %v", name, err))
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("document: compile schema %s: %v", name, err))
	}
	return Schema{Name: name, schema: compiled}
}

// Check returns one message per shape violation, sorted. An empty slice means
// the document fits.
func (s Schema) Check(doc Document) ([]string, error) {
	if doc == nil {
		doc = Document{}
	}
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(map[string]any(doc)))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", s.Name, err)
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, field+": "+desc.Description())
	}
	sort.Strings(problems)
	return problems, nil
}
