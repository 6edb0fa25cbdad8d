package importer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

// Selector priority lists for the heuristic extractor. Recipe-aware
// markup conventions come first, generic page structure last.
var (
	titleSelectors = []string{
		".recipe-title", ".recipe-name", "h1[itemprop='name']", ".wprm-recipe-name",
		"h1.entry-title", ".entry-title", ".post-title",
		"h1",
	}
	descriptionSelectors = []string{
		".recipe-description", ".recipe-summary", "[itemprop='description']",
		"meta[name='description']",
	}
	ingredientSelectors = []string{
		"[itemprop='recipeIngredient']", "[itemprop='ingredients']",
		".wprm-recipe-ingredient", ".recipe-ingredients li", ".recipe-ingredient",
		".ingredients li", "ul.ingredients li", ".ingredient",
	}
	instructionListSelectors = []string{
		"[itemprop='recipeInstructions'] li", ".wprm-recipe-instruction",
		".recipe-instructions li", ".recipe-directions li",
		".instructions li", ".directions li", ".recipe-method li", ".steps li",
	}
	instructionTextSelectors = []string{
		"[itemprop='recipeInstructions']", ".recipe-instructions", ".instructions", ".directions",
	}
	cookTimeSelectors = []string{
		"[itemprop='cookTime']", ".wprm-recipe-cook_time", ".cook-time", ".cooking-time",
	}
	prepTimeSelectors = []string{
		"[itemprop='prepTime']", ".wprm-recipe-prep_time", ".prep-time",
	}
	servingsSelectors = []string{
		"[itemprop='recipeYield']", ".wprm-recipe-servings", ".recipe-yield", ".servings", ".yield",
	}
	difficultySelectors = []string{
		"[itemprop='difficulty']", ".recipe-difficulty", ".difficulty",
	}
	imageSelectors = []string{
		".recipe-image img", "[itemprop='image']", ".post-image img", "article img",
	}
)

// extractHeuristic recovers recipe fields from ad-hoc markup. It never
// fails: a page with no recognizable structure yields an empty candidate
// and the normalizer rejects it.
func extractHeuristic(doc *goquery.Document, rawHTML string) *Candidate {
	og := opengraph.NewOpenGraph()
	_ = og.ProcessHTML(strings.NewReader(rawHTML))

	c := &Candidate{
		Title:       heuristicTitle(doc, og),
		Description: firstText(doc, descriptionSelectors),
		Difficulty:  firstText(doc, difficultySelectors),
	}
	if c.Description == "" {
		c.Description = og.Description
	}

	if items := collectTexts(doc, ingredientSelectors); len(items) > 0 {
		c.Ingredients = strings.Join(items, "\n")
	}

	// Steps rebuilt from list markup get 1-based numbering; a plain
	// prose block is kept as-is.
	if steps := collectTexts(doc, instructionListSelectors); len(steps) > 0 {
		c.Instructions = joinNumbered(steps)
	} else {
		c.Instructions = firstText(doc, instructionTextSelectors)
	}

	c.CookMinutes = parseDurationMinutes(firstTimeText(doc, cookTimeSelectors))
	c.PrepMinutes = parseDurationMinutes(firstTimeText(doc, prepTimeSelectors))
	c.Servings = parseFirstInt(firstText(doc, servingsSelectors))

	if len(og.Images) > 0 && og.Images[0].URL != "" {
		c.ImageURL = og.Images[0].URL
	} else {
		c.ImageURL = firstImageSrc(doc, imageSelectors)
	}

	return c
}

// heuristicTitle resolves the title in priority order: recipe markup,
// entry/heading markup, the <title> tag stripped of " | Site Name"
// suffixes, and finally the og:title social metadata.
func heuristicTitle(doc *goquery.Document, og *opengraph.OpenGraph) string {
	if t := firstText(doc, titleSelectors); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return stripSiteSuffix(t)
	}
	return og.Title
}

// stripSiteSuffix removes trailing "| Site" / "- Site" page title tails.
func stripSiteSuffix(title string) string {
	for _, sep := range []string{" | ", " - ", " – " /* en dash */} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}

// firstText returns the text (or content attribute, for meta tags) of
// the first element matched by the first selector that matches anything.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if strings.HasPrefix(selector, "meta") {
			if content, ok := sel.Attr("content"); ok && strings.TrimSpace(content) != "" {
				return strings.TrimSpace(content)
			}
			continue
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstTimeText prefers a machine-readable datetime attribute over the
// visible text, since <time datetime="PT30M"> markup is common.
func firstTimeText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if dt, ok := sel.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
			return strings.TrimSpace(dt)
		}
		if dt, ok := sel.Attr("content"); ok && strings.TrimSpace(dt) != "" {
			return strings.TrimSpace(dt)
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// collectTexts gathers all matches for the first selector that yields
// any, in document order, with exact-duplicate lines removed.
func collectTexts(doc *goquery.Document, selectors []string) []string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		seen := make(map[string]bool, sel.Length())
		var out []string
		sel.Each(func(_ int, s *goquery.Selection) {
			text := cleanLine(s.Text())
			if text == "" || seen[text] {
				return
			}
			seen[text] = true
			out = append(out, text)
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func firstImageSrc(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		for _, attr := range []string{"src", "data-src", "href"} {
			if src, ok := sel.Attr(attr); ok && strings.TrimSpace(src) != "" {
				return strings.TrimSpace(src)
			}
		}
	}
	return ""
}
