package importer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Candidate is the not-yet-validated shape of a recipe as produced by
// either extractor. Every field is optional; the normalizer decides
// whether the whole is usable.
type Candidate struct {
	Title        string
	Description  string
	Ingredients  string // newline-delimited
	Instructions string // newline-delimited, numbered when built from a list
	CookMinutes  *int
	PrepMinutes  *int
	Servings     *int
	Difficulty   string // free text, mapped to the enum later
	ImageURL     string
}

// Difficulty levels for the normalized recipe.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ImportedRecipe is the final, validated output of the pipeline.
type ImportedRecipe struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	CookMinutes  *int   `json:"cook_minutes,omitempty"`
	PrepMinutes  *int   `json:"prep_minutes,omitempty"`
	Servings     *int   `json:"servings,omitempty"`
	Difficulty   string `json:"difficulty"`
	SourceURL    string `json:"source_url"`
	ImageURL     string `json:"image_url,omitempty"`
}

var (
	spaceRun    = regexp.MustCompile(`[ \t\r\f]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	isoDuration = regexp.MustCompile(`(?i)^P(?:[\d.]+D)?T?(?:(\d+)H)?(?:(\d+)M)?`)
	textTime    = regexp.MustCompile(`(?i)(\d+)\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)
	firstDigits = regexp.MustCompile(`\d+`)
)

// normalize validates and cleans a candidate, attaching the source URL.
// The only hard requirement is a usable title: anything shorter than
// two characters after cleaning fails the whole import.
func normalize(c *Candidate, sourceURL string) (*ImportedRecipe, error) {
	title := cleanLine(c.Title)
	if len([]rune(title)) < 2 {
		return nil, extractionFailedError()
	}

	return &ImportedRecipe{
		Title:        title,
		Description:  cleanBlock(c.Description),
		Ingredients:  cleanBlock(c.Ingredients),
		Instructions: cleanBlock(c.Instructions),
		CookMinutes:  nonNegative(c.CookMinutes),
		PrepMinutes:  nonNegative(c.PrepMinutes),
		Servings:     positive(c.Servings),
		Difficulty:   mapDifficulty(c.Difficulty),
		SourceURL:    sourceURL,
		ImageURL:     resolveImageURL(c.ImageURL, sourceURL),
	}, nil
}

// cleanLine collapses all whitespace in a single-line value.
func cleanLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// cleanBlock collapses whitespace per line and squeezes runs of blank
// lines down to one, preserving the newline structure of the block.
func cleanBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	out := strings.Join(lines, "\n")
	out = blankLines.ReplaceAllString(out, "\n\n")
	return strings.Trim(out, "\n")
}

// parseDurationMinutes converts an ISO-8601 duration ("PT1H30M") or a
// free-text time expression ("1 hour 15 min") into total minutes. When
// no unit pattern matches, the first bare integer is taken as minutes.
// Returns nil when the input contains no digits at all.
func parseDurationMinutes(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := isoDuration.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		total := 0
		if m[1] != "" {
			h, _ := strconv.Atoi(m[1])
			total += h * 60
		}
		if m[2] != "" {
			mins, _ := strconv.Atoi(m[2])
			total += mins
		}
		return &total
	}

	if matches := textTime.FindAllStringSubmatch(s, -1); len(matches) > 0 {
		total := 0
		for _, m := range matches {
			n, _ := strconv.Atoi(m[1])
			switch strings.ToLower(m[2])[0] {
			case 'h':
				total += n * 60
			default:
				total += n
			}
		}
		return &total
	}

	return parseFirstInt(s)
}

// parseFirstInt extracts the first integer substring, e.g. "Serves 4"
// or "4-6 servings" yield 4. Returns nil when no digits are present.
func parseFirstInt(s string) *int {
	digits := firstDigits.FindString(s)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// mapDifficulty folds free-text difficulty wording into the closed
// easy/medium/hard set. Unknown or empty input is medium.
func mapDifficulty(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "easy"), strings.Contains(lower, "beginner"), strings.Contains(lower, "simple"):
		return DifficultyEasy
	case strings.Contains(lower, "hard"), strings.Contains(lower, "difficult"),
		strings.Contains(lower, "expert"), strings.Contains(lower, "advanced"):
		return DifficultyHard
	}
	return DifficultyMedium
}

// resolveImageURL makes a relative image URL absolute against the page
// it was scraped from. Unresolvable values are passed through as-is.
func resolveImageURL(imageURL, sourceURL string) string {
	if imageURL == "" || strings.HasPrefix(imageURL, "http://") || strings.HasPrefix(imageURL, "https://") {
		return imageURL
	}
	base, err := url.Parse(sourceURL)
	if err != nil {
		return imageURL
	}
	rel, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	return base.ResolveReference(rel).String()
}

func nonNegative(n *int) *int {
	if n == nil || *n < 0 {
		return nil
	}
	return n
}

func positive(n *int) *int {
	if n == nil || *n <= 0 {
		return nil
	}
	return n
}
