package importer

// Source describes a site the importer is known to handle well. The
// list is informational for UI hints only; the fetcher accepts any
// http/https URL regardless.
type Source struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

var supportedSources = []Source{
	{Domain: "allrecipes.com", Name: "Allrecipes"},
	{Domain: "bbcgoodfood.com", Name: "BBC Good Food"},
	{Domain: "seriouseats.com", Name: "Serious Eats"},
	{Domain: "simplyrecipes.com", Name: "Simply Recipes"},
	{Domain: "food.com", Name: "Food.com"},
	{Domain: "epicurious.com", Name: "Epicurious"},
	{Domain: "delish.com", Name: "Delish"},
	{Domain: "bonappetit.com", Name: "Bon Appétit"},
}

// SupportedSources returns example domains that import reliably.
func SupportedSources() []Source {
	out := make([]Source, len(supportedSources))
	copy(out, supportedSources)
	return out
}
