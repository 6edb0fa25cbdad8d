package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicRecipeMarkup(t *testing.T) {
	html := `<html><head><title>Best Lasagna | Nonna's Kitchen</title></head><body>
		<h1 class="recipe-title">Classic Lasagna</h1>
		<div class="recipe-description">Layers of pasta and ragù.</div>
		<ul class="recipe-ingredients">
			<li>500g pasta sheets</li>
			<li>1kg ragù</li>
			<li>500g pasta sheets</li>
			<li>béchamel</li>
		</ul>
		<ol class="recipe-instructions">
			<li>Layer everything</li>
			<li>Bake for an hour</li>
		</ol>
		<span class="cook-time">1 hour 15 min</span>
		<span class="prep-time">PT30M</span>
		<span class="servings">Serves 6</span>
		<div class="recipe-image"><img src="/img/lasagna.jpg"></div>
	</body></html>`

	c := extractHeuristic(parseHTML(t, html), html)
	assert.Equal(t, "Classic Lasagna", c.Title)
	assert.Equal(t, "Layers of pasta and ragù.", c.Description)
	// duplicate ingredient line removed, order preserved
	assert.Equal(t, "500g pasta sheets\n1kg ragù\nbéchamel", c.Ingredients)
	assert.Equal(t, "1. Layer everything\n2. Bake for an hour", c.Instructions)
	require.NotNil(t, c.CookMinutes)
	assert.Equal(t, 75, *c.CookMinutes)
	require.NotNil(t, c.PrepMinutes)
	assert.Equal(t, 30, *c.PrepMinutes)
	require.NotNil(t, c.Servings)
	assert.Equal(t, 6, *c.Servings)
	assert.Equal(t, "/img/lasagna.jpg", c.ImageURL)
}

func TestHeuristicTitleFallbacks(t *testing.T) {
	t.Run("entry title before h1", func(t *testing.T) {
		html := `<html><body><h1 class="entry-title">Post Title</h1><h1>Other</h1></body></html>`
		c := extractHeuristic(parseHTML(t, html), html)
		assert.Equal(t, "Post Title", c.Title)
	})

	t.Run("first heading", func(t *testing.T) {
		html := `<html><body><h1>Grandma's Stew</h1></body></html>`
		c := extractHeuristic(parseHTML(t, html), html)
		assert.Equal(t, "Grandma's Stew", c.Title)
	})

	t.Run("page title with site suffix stripped", func(t *testing.T) {
		html := `<html><head><title>Quick Curry | SpiceWorld</title></head><body></body></html>`
		c := extractHeuristic(parseHTML(t, html), html)
		assert.Equal(t, "Quick Curry", c.Title)
	})

	t.Run("og title as last resort", func(t *testing.T) {
		html := `<html><head><meta property="og:title" content="Shared Curry"/></head><body></body></html>`
		c := extractHeuristic(parseHTML(t, html), html)
		assert.Equal(t, "Shared Curry", c.Title)
	})
}

func TestHeuristicProseInstructionsNotNumbered(t *testing.T) {
	html := `<html><body>
		<h1>Omelette</h1>
		<div class="instructions">Whisk the eggs, then cook gently in butter.</div>
	</body></html>`
	c := extractHeuristic(parseHTML(t, html), html)
	assert.Equal(t, "Whisk the eggs, then cook gently in butter.", c.Instructions)
}

func TestHeuristicOpenGraphImage(t *testing.T) {
	html := `<html><head>
		<meta property="og:image" content="https://cdn.example.com/og.jpg"/>
	</head><body><h1>Tart</h1><img class="post-image" src="/other.jpg"></body></html>`
	c := extractHeuristic(parseHTML(t, html), html)
	assert.Equal(t, "https://cdn.example.com/og.jpg", c.ImageURL)
}

func TestHeuristicEmptyPage(t *testing.T) {
	html := `<html><body><p>nothing to see</p></body></html>`
	c := extractHeuristic(parseHTML(t, html), html)
	require.NotNil(t, c)
	assert.Empty(t, c.Title)
	assert.Empty(t, c.Ingredients)
	assert.Nil(t, c.Servings)
}
