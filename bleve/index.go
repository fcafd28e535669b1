// Package bleve indexes the functions of an ABI for free text search.
package bleve

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"

	"github.com/tranvictor/calldata/codec"
)

const DefaultLimit = 10

// FunctionDoc is the indexed form of one function. Documents are keyed by
// signature.
type FunctionDoc struct {
	Signature  string `json:"signature"`
	Words      string `json:"words"`
	Params     string `json:"params"`
	Mutability string `json:"mutability"`
}

type Hit struct {
	Signature string
	Score     float64
}

type FunctionIndex struct {
	index bleve.Index
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = en.AnalyzerName

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	defaultMapping := bleve.NewDocumentMapping()
	defaultMapping.AddFieldMappingsAt("words", textFieldMapping)
	defaultMapping.AddFieldMappingsAt("params", textFieldMapping)
	defaultMapping.AddFieldMappingsAt("signature", keywordFieldMapping)
	defaultMapping.AddFieldMappingsAt("mutability", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", defaultMapping)
	indexMapping.DefaultAnalyzer = en.AnalyzerName
	return indexMapping
}

// NewFunctionIndex builds an in-memory index over the functions of a.
func NewFunctionIndex(a codec.ABI) (*FunctionIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	batch := index.NewBatch()
	for _, fn := range a {
		if err := batch.Index(fn.Signature(), document(fn)); err != nil {
			return nil, err
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, err
	}
	return &FunctionIndex{index: index}, nil
}

func document(fn codec.Function) FunctionDoc {
	params := make([]string, 0, 2*len(fn.Inputs))
	for _, in := range fn.Inputs {
		params = append(params, SplitWords(in.Name), in.Type)
	}
	return FunctionDoc{
		Signature:  fn.Signature(),
		Words:      SplitWords(fn.Name),
		Params:     strings.Join(params, " "),
		Mutability: fn.StateMutability,
	}
}

// SplitWords breaks camelCase, snake_case and digit runs into space
// separated lower case words: "safeTransferFrom" -> "safe transfer from".
func SplitWords(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '$' {
			b.WriteByte(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Search returns the signatures best matching input, at most limit of them.
func (fi *FunctionIndex) Search(input string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	words := bleve.NewMatchQuery(input)
	words.SetField("words")
	words.Fuzziness = 1
	words.SetBoost(2)
	phrase := bleve.NewMatchPhraseQuery(SplitWords(input))
	phrase.SetField("words")
	phrase.SetBoost(3)
	params := bleve.NewMatchQuery(input)
	params.SetField("params")
	params.Fuzziness = 1

	request := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(words, phrase, params), limit, 0, false)
	result, err := fi.index.Search(request)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, Hit{Signature: h.ID, Score: h.Score})
	}
	return hits, nil
}

func (fi *FunctionIndex) Close() error {
	return fi.index.Close()
}
