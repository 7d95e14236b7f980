// Package skills holds the static technology dictionary and the skill-profile
// builder. The dictionary is constructed once at startup and passed by
// reference wherever it is needed; it is never mutated afterwards.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

// MatchMode controls how a dictionary keyword is matched against text.
//
// Short or ambiguous keywords ("go", "r", "aws") are matched only against
// whole tokens and topics, so "go" never fires inside "mongo". Longer
// framework names are additionally substring-matched against free text, so
// "django" is found inside "my-django-blog".
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchSubstring
)

type entry struct {
	tag  string
	mode MatchMode
}

// Dictionary maps keywords to canonical technology tags and languages to
// curated contributor-friendly repositories.
type Dictionary struct {
	keywords  map[string]entry    // keyword → canonical tag
	languages map[string]struct{} // canonical language names
	curated   map[string][]string // language → "owner/repo" list

	// substring-mode keywords, longest first, for free-text scanning
	substrings []string
}

var tokenPattern = regexp.MustCompile(`[a-z0-9#+]+(?:[.\-][a-z0-9#+]+)*`)

// NewDictionary builds the static dictionary. The tables mirror the curated
// keyword sets the matcher has always shipped with; adding an entry is a
// code change, not runtime state.
func NewDictionary() *Dictionary {
	d := &Dictionary{
		keywords:  make(map[string]entry),
		languages: make(map[string]struct{}),
		curated:   curatedRepos,
	}

	for _, lang := range programmingLanguages {
		d.languages[lang] = struct{}{}
		d.add(lang, lang, MatchExact)
	}
	for _, kw := range frameworks {
		d.add(kw, kw, MatchSubstring)
	}
	for _, kw := range databases {
		d.add(kw, kw, MatchSubstring)
	}
	for _, kw := range cloudAndTools {
		// Cloud and tool names are short and collision-prone, so they only
		// match whole tokens and topics.
		d.add(kw, kw, MatchExact)
	}
	for alias, tag := range aliases {
		d.add(alias, tag, MatchExact)
	}

	// Very short substring keywords would false-positive constantly.
	for kw, e := range d.keywords {
		if e.mode == MatchSubstring && len(kw) >= 4 {
			d.substrings = append(d.substrings, kw)
		}
	}
	sort.Slice(d.substrings, func(i, j int) bool {
		if len(d.substrings[i]) != len(d.substrings[j]) {
			return len(d.substrings[i]) > len(d.substrings[j])
		}
		return d.substrings[i] < d.substrings[j]
	})

	return d
}

func (d *Dictionary) add(keyword, tag string, mode MatchMode) {
	d.keywords[keyword] = entry{tag: tag, mode: mode}
}

// CanonicalTag resolves a single keyword or topic to its canonical tag.
// Lookup is exact (case-insensitive) and covers aliases such as "k8s".
func (d *Dictionary) CanonicalTag(keyword string) (string, bool) {
	e, ok := d.keywords[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return "", false
	}
	return e.tag, true
}

// IsLanguage reports whether tag is a canonical programming-language name.
func (d *Dictionary) IsLanguage(tag string) bool {
	_, ok := d.languages[strings.ToLower(tag)]
	return ok
}

// SubstringMatchable reports whether tag may be matched as a substring of
// free text. Exact-mode entries (languages, short tool names) only ever
// match whole tokens, so "java" never fires inside "javascript". Tags the
// dictionary doesn't know keep the length guard the substring list uses.
func (d *Dictionary) SubstringMatchable(tag string) bool {
	lowered := strings.ToLower(tag)
	if e, ok := d.keywords[lowered]; ok {
		return e.mode == MatchSubstring && len(lowered) >= 4
	}
	return len(lowered) >= 4
}

// ExtractTags scans free text (a repo name, description or bio) and returns
// the canonical tags found, deduplicated and sorted.
func (d *Dictionary) ExtractTags(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	found := make(map[string]struct{})

	// Whole tokens match any entry, including exact-mode ones.
	for _, tok := range tokenPattern.FindAllString(lower, -1) {
		if e, ok := d.keywords[tok]; ok {
			found[e.tag] = struct{}{}
		}
	}

	// Longer keywords additionally match as substrings.
	for _, kw := range d.substrings {
		if strings.Contains(lower, kw) {
			found[d.keywords[kw].tag] = struct{}{}
		}
	}

	if len(found) == 0 {
		return nil
	}
	tags := make([]string, 0, len(found))
	for t := range found {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// CuratedRepos returns the curated high-quality repositories for a language,
// or nil when the language has no curated entries.
func (d *Dictionary) CuratedRepos(language string) []string {
	return d.curated[strings.ToLower(language)]
}

var programmingLanguages = []string{
	"python", "javascript", "typescript", "java", "go", "rust", "c", "c++",
	"c#", "ruby", "php", "swift", "kotlin", "scala", "dart", "r", "perl",
	"lua", "haskell", "clojure", "elixir", "erlang", "bash", "shell", "sql",
}

var frameworks = []string{
	"react", "angular", "vue", "svelte", "django", "flask", "fastapi",
	"express", "spring", "laravel", "rails", "gatsby", "electron",
	"flutter", "tensorflow", "pytorch", "keras", "scikit-learn", "pandas",
	"numpy", "opencv", "matplotlib", "bootstrap", "tailwind", "jquery",
	"redux", "rxjs", "next.js", "nuxt.js", "node.js", "vue.js",
	"react-native", "asp.net",
}

var databases = []string{
	"mysql", "postgresql", "sqlite", "mongodb", "redis", "elasticsearch",
	"cassandra", "neo4j", "dynamodb", "firebase", "supabase", "prisma",
	"sqlalchemy", "mongoose", "hibernate",
}

var cloudAndTools = []string{
	"aws", "azure", "gcp", "heroku", "netlify", "vercel", "kubernetes",
	"docker", "jenkins", "terraform", "ansible", "grafana", "prometheus",
	"git", "graphql", "grpc", "rest", "webpack", "vite", "babel", "eslint",
	"jest", "cypress", "selenium", "swagger", "serverless", "microservices",
	"blockchain", "solidity", "ethereum", "github-actions", "gitlab-ci",
}

// aliases map common abbreviations onto their canonical tag.
var aliases = map[string]string{
	"js":           "javascript",
	"ts":           "typescript",
	"py":           "python",
	"golang":       "go",
	"cpp":          "c++",
	"csharp":       "c#",
	"pg":           "postgresql",
	"postgres":     "postgresql",
	"mongo":        "mongodb",
	"k8s":          "kubernetes",
	"tf":           "tensorflow",
	"google-cloud": "gcp",
	"ml":           "machine-learning",
	"ai":           "artificial-intelligence",
	"nlp":          "natural-language-processing",
}

// curatedRepos lists well-maintained repositories per language that are known
// to carry contributor-friendly labels.
var curatedRepos = map[string][]string{
	"python": {
		"python/cpython", "pallets/flask", "django/django",
		"fastapi/fastapi", "psf/black", "pandas-dev/pandas",
		"scikit-learn/scikit-learn", "numpy/numpy",
	},
	"javascript": {
		"microsoft/vscode", "facebook/react", "vuejs/vue",
		"nodejs/node", "expressjs/express", "webpack/webpack",
		"prettier/prettier", "eslint/eslint",
	},
	"typescript": {
		"microsoft/TypeScript", "nestjs/nest", "typeorm/typeorm",
		"angular/angular", "grafana/grafana", "apollographql/apollo-server",
	},
	"java": {
		"spring-projects/spring-boot", "elastic/elasticsearch",
		"apache/kafka", "google/guava", "junit-team/junit5",
		"mockito/mockito",
	},
	"go": {
		"kubernetes/kubernetes", "golang/go", "prometheus/prometheus",
		"helm/helm", "hashicorp/terraform", "gin-gonic/gin",
	},
	"rust": {
		"rust-lang/rust", "tokio-rs/tokio", "serde-rs/serde",
		"clap-rs/clap", "hyperium/hyper", "rustls/rustls",
	},
	"swift": {
		"apple/swift", "vapor/vapor", "Alamofire/Alamofire",
		"apple/swift-package-manager",
	},
	"kotlin": {
		"JetBrains/kotlin", "square/okhttp", "detekt/detekt",
		"mockk/mockk", "kotest/kotest",
	},
	"ruby": {
		"rails/rails", "jekyll/jekyll", "rubocop/rubocop",
		"rspec/rspec", "sinatra/sinatra",
	},
	"php": {
		"laravel/laravel", "symfony/symfony", "composer/composer",
		"guzzle/guzzle", "phpstan/phpstan",
	},
	"c++": {
		"opencv/opencv", "google/googletest", "nlohmann/json", "fmtlib/fmt",
	},
	"c#": {
		"dotnet/core", "NUnit/nunit", "AutoMapper/AutoMapper",
		"serilog/serilog",
	},
}
