package service

import (
	"path"
	"strings"

	"gitscribe/internal/domain"
)

// extensionLanguages maps file extensions to language names. Order matters
// only for readability; frequency counting decides the winner.
var extensionLanguages = map[string]string{
	".go":    "Go",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".py":    "Python",
	".rb":    "Ruby",
	".java":  "Java",
	".kt":    "Kotlin",
	".rs":    "Rust",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".scala": "Scala",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".dart":  "Dart",
	".vue":   "Vue",
	".sh":    "Shell",
}

// detectLanguage returns the most frequent language across file extensions.
// Ties break toward the language encountered first in the counting pass.
func detectLanguage(files []string) string {
	counts := map[string]int{}
	best := ""
	bestCount := 0

	for _, f := range files {
		lang, ok := extensionLanguages[strings.ToLower(path.Ext(f))]
		if !ok {
			continue
		}
		counts[lang]++
		if counts[lang] > bestCount {
			best = lang
			bestCount = counts[lang]
		}
	}
	return best
}

// indicator is one detection rule: a label plus the manifest dependency
// keys and file-path substrings that select it.
type indicator struct {
	Label string
	Deps  []string
	Files []string
}

// matches reports whether any dependency key or file substring hits.
func (in indicator) matches(deps map[string]bool, files []string) bool {
	for _, d := range in.Deps {
		if deps[d] {
			return true
		}
	}
	for _, sub := range in.Files {
		for _, f := range files {
			if strings.Contains(f, sub) {
				return true
			}
		}
	}
	return false
}

// Detection rules are ordered lists evaluated first-match-wins. Keeping
// them as data keeps each rule independently testable.
var frameworkIndicators = []indicator{
	{Label: "Next.js", Deps: []string{"next"}},
	{Label: "Nuxt", Deps: []string{"nuxt"}},
	{Label: "React", Deps: []string{"react"}},
	{Label: "Vue", Deps: []string{"vue"}},
	{Label: "Angular", Deps: []string{"@angular/core"}},
	{Label: "Svelte", Deps: []string{"svelte"}},
	{Label: "NestJS", Deps: []string{"@nestjs/core"}},
	{Label: "Express", Deps: []string{"express"}},
	{Label: "Fastify", Deps: []string{"fastify"}},
	{Label: "Django", Files: []string{"manage.py"}},
	{Label: "Flask", Files: []string{"app.py", "wsgi.py"}},
	{Label: "Rails", Files: []string{"Gemfile"}},
	{Label: "Spring", Files: []string{"pom.xml", "build.gradle"}},
	{Label: "Laravel", Files: []string{"artisan"}},
	{Label: "Flutter", Files: []string{"pubspec.yaml"}},
	{Label: "Go", Files: []string{"go.mod"}},
	{Label: "Rust", Files: []string{"Cargo.toml"}},
}

var projectTypeIndicators = []indicator{
	{Label: "web-application", Deps: []string{"react", "vue", "next", "nuxt", "@angular/core", "svelte"}, Files: []string{"index.html"}},
	{Label: "api-service", Deps: []string{"express", "fastify", "@nestjs/core", "koa"}, Files: []string{"cmd/server", "cmd/api"}},
	{Label: "cli-tool", Deps: []string{"commander", "yargs", "cobra"}, Files: []string{"cmd/main.go", "bin/"}},
	{Label: "mobile-app", Deps: []string{"react-native"}, Files: []string{"pubspec.yaml", "Podfile"}},
	{Label: "library", Files: []string{"setup.py", "lib/index"}},
}

var architectureIndicators = []indicator{
	{Label: "monorepo", Deps: []string{"lerna", "turbo"}, Files: []string{"lerna.json", "pnpm-workspace.yaml", "packages/"}},
	{Label: "microservices", Files: []string{"docker-compose"}},
	{Label: "mvc", Files: []string{"controllers/", "models/"}},
	{Label: "component-based", Deps: []string{"react", "vue", "svelte"}},
	{Label: "layered", Files: []string{"internal/", "src/services/"}},
}

// detect runs an indicator list first-match-wins; the empty string means
// no rule hit.
func detect(indicators []indicator, manifest *domain.Manifest, files []string) string {
	deps := map[string]bool{}
	for _, k := range manifest.DependencyKeys() {
		deps[k] = true
	}
	for _, in := range indicators {
		if in.matches(deps, files) {
			return in.Label
		}
	}
	return ""
}
