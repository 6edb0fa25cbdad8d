package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractStructured scans the document for <script type="application/ld+json">
// blocks and returns a candidate built from the first Recipe-typed node.
// A nil candidate means no usable block was found; that is not an error,
// the heuristic extractor takes over. Malformed blocks are skipped so a
// single broken script never aborts the scan.
func extractStructured(doc *goquery.Document) *Candidate {
	var candidate *Candidate

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var root any
		if err := json.Unmarshal([]byte(sel.Text()), &root); err != nil {
			return true // skip malformed block, keep scanning
		}
		for _, node := range flattenLDNodes(root) {
			if isRecipeNode(node) {
				candidate = candidateFromLD(node)
				return false
			}
		}
		return true
	})

	return candidate
}

// flattenLDNodes unwraps the shapes JSON-LD appears in on real sites: a
// single object, a top-level array, or an object wrapping a @graph list.
func flattenLDNodes(root any) []map[string]any {
	var nodes []map[string]any
	switch v := root.(type) {
	case map[string]any:
		nodes = append(nodes, v)
		if graph, ok := v["@graph"].([]any); ok {
			for _, g := range graph {
				if m, ok := g.(map[string]any); ok {
					nodes = append(nodes, m)
				}
			}
		}
	case []any:
		for _, item := range v {
			nodes = append(nodes, flattenLDNodes(item)...)
		}
	}
	return nodes
}

// isRecipeNode checks whether @type equals or includes "Recipe".
func isRecipeNode(node map[string]any) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func candidateFromLD(node map[string]any) *Candidate {
	c := &Candidate{
		Title:        ldString(node["name"]),
		Description:  ldString(node["description"]),
		Ingredients:  strings.Join(ldStringSlice(node["recipeIngredient"]), "\n"),
		Instructions: joinNumbered(ldInstructions(node["recipeInstructions"])),
		CookMinutes:  parseDurationMinutes(ldString(node["cookTime"])),
		PrepMinutes:  parseDurationMinutes(ldString(node["prepTime"])),
		Servings:     parseFirstInt(ldString(node["recipeYield"])),
		Difficulty:   ldString(node["difficulty"]),
		ImageURL:     ldImageURL(node["image"]),
	}
	return c
}

// ldString coerces a JSON-LD value to a string; numbers are formatted,
// arrays yield their first string element.
func ldString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatNumber(t)
	case []any:
		for _, item := range t {
			if s := ldString(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func ldStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok && s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range arr {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ldInstructions handles the two common recipeInstructions encodings:
// plain strings and HowToStep objects carrying text (or name) fields.
// HowToSection wrappers are flattened into their steps.
func ldInstructions(v any) []string {
	var steps []string
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			steps = append(steps, s)
		}
	case []any:
		for _, item := range t {
			switch step := item.(type) {
			case string:
				if s := strings.TrimSpace(step); s != "" {
					steps = append(steps, s)
				}
			case map[string]any:
				if inner, ok := step["itemListElement"]; ok {
					steps = append(steps, ldInstructions(inner)...)
					continue
				}
				text := ldString(step["text"])
				if text == "" {
					text = ldString(step["name"])
				}
				if text = strings.TrimSpace(text); text != "" {
					steps = append(steps, text)
				}
			}
		}
	}
	return steps
}

// joinNumbered joins steps with 1-based numbering, one per line.
func joinNumbered(steps []string) string {
	var b strings.Builder
	n := 0
	for _, step := range steps {
		if step == "" {
			continue
		}
		n++
		if n > 1 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", n, step)
	}
	return b.String()
}

// ldImageURL accepts the three shapes image takes in the wild: a URL
// string, an array of either, or an ImageObject with a url field.
func ldImageURL(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s := ldImageURL(item); s != "" {
				return s
			}
		}
	case map[string]any:
		return ldString(t["url"])
	}
	return ""
}
