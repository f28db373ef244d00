package service

import (
	"fmt"
	"sort"
	"strings"

	"gitscribe/internal/domain"
)

const (
	readmeExcerptLimit = 800
	fileListMinimal    = 8
	fileListExtended   = 50
	manifestDepsLimit  = 10
)

// promptSuffix enumerates the required documentation sections.
const promptSuffix = `Write complete Markdown documentation for this repository with the following sections:
1. Overview
2. Features
3. Installation
4. Usage
5. Project Structure
6. Configuration
7. Contributing

Use heading levels consistently and fenced code blocks for commands. Respond with the Markdown document only.`

// PromptOptions tunes prompt construction.
type PromptOptions struct {
	// Extended includes the full README and a longer file listing.
	Extended bool
	// Style is folded verbatim into the instruction text.
	Style string
}

// BuildPrompt renders analyzer output into a single instruction string.
// Deterministic for identical inputs; missing README or manifest simply
// omit their sections.
func BuildPrompt(a *domain.RepoAnalysis, opts PromptOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Repository: %s/%s (branch %s)\n", a.RepoOwner, a.RepoName, a.Branch)
	if a.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", a.Description)
	}
	fmt.Fprintf(&b, "Language: %s | Framework: %s | Files: %d\n", orUnknown(a.Language), orUnknown(a.Framework), a.FileCount)
	if a.ProjectType != "" {
		fmt.Fprintf(&b, "Project type: %s | Architecture: %s\n", a.ProjectType, orUnknown(a.Architecture))
	}

	if a.Readme != "" {
		excerpt := a.Readme
		if !opts.Extended && len(excerpt) > readmeExcerptLimit {
			excerpt = excerpt[:readmeExcerptLimit]
		}
		fmt.Fprintf(&b, "\nExisting README excerpt:\n%s\n", excerpt)
	}

	if a.Manifest != nil {
		b.WriteString("\nManifest:\n")
		if a.Manifest.Name != "" {
			fmt.Fprintf(&b, "  name: %s\n", a.Manifest.Name)
		}
		if a.Manifest.Description != "" {
			fmt.Fprintf(&b, "  description: %s\n", a.Manifest.Description)
		}
		if len(a.Manifest.Scripts) > 0 {
			fmt.Fprintf(&b, "  scripts: %s\n", strings.Join(sortedKeys(a.Manifest.Scripts), ", "))
		}
		if len(a.Manifest.Dependencies) > 0 {
			deps := sortedKeys(a.Manifest.Dependencies)
			if len(deps) > manifestDepsLimit {
				deps = deps[:manifestDepsLimit]
			}
			fmt.Fprintf(&b, "  dependencies: %s\n", strings.Join(deps, ", "))
		}
	}

	if len(a.Files) > 0 {
		limit := fileListMinimal
		if opts.Extended {
			limit = fileListExtended
		}
		files := a.Files
		if len(files) > limit {
			files = files[:limit]
		}
		fmt.Fprintf(&b, "\nFiles (%d of %d):\n", len(files), len(a.Files))
		for _, f := range files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	b.WriteString("\n")
	if opts.Style != "" {
		fmt.Fprintf(&b, "Writing style: %s\n", opts.Style)
	}
	b.WriteString(promptSuffix)

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
