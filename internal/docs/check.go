// Package docs verifies the documentation artifacts of the repository:
// the README, the image assets it references, and the setup command it
// documents.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CheckResult is the outcome of one documentation check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Report collects the results of all checks.
type Report struct {
	Results []CheckResult `json:"results"`
}

// Passed reports whether every check succeeded.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed checks.
func (r Report) Failures() []CheckResult {
	var out []CheckResult
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

var (
	imageRefPattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)\)`)
	fencePattern    = regexp.MustCompile("(?m)^```")
	// Inline setup commands the README documents, e.g. `go build ./...`.
	setupCmdPattern = regexp.MustCompile("`((?:go|uv|make) [^`]+)`")
)

// Verify runs the documentation-integrity checks against a repository
// directory.
func Verify(dir string) Report {
	var report Report

	readmePath := filepath.Join(dir, "README.md")
	content, err := os.ReadFile(readmePath)
	if err != nil {
		report.Results = append(report.Results, CheckResult{
			Name:   "readme-exists",
			Detail: fmt.Sprintf("cannot read %s: %v", readmePath, err),
		})
		return report
	}
	report.Results = append(report.Results, CheckResult{Name: "readme-exists", Passed: true})

	report.Results = append(report.Results, checkMarkdown(string(content)))
	report.Results = append(report.Results, checkImageRefs(dir, string(content))...)
	report.Results = append(report.Results, checkSetupCommands(string(content))...)
	return report
}

// checkMarkdown runs structural sanity checks: a top-level heading and
// balanced code fences.
func checkMarkdown(content string) CheckResult {
	res := CheckResult{Name: "readme-valid-markdown"}

	hasHeading := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			hasHeading = true
			break
		}
	}
	if !hasHeading {
		res.Detail = "README has no top-level heading"
		return res
	}
	if len(fencePattern.FindAllString(content, -1))%2 != 0 {
		res.Detail = "README has an unclosed code fence"
		return res
	}
	res.Passed = true
	return res
}

// checkImageRefs resolves every relative image reference against the
// repository directory.
func checkImageRefs(dir, content string) []CheckResult {
	matches := imageRefPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []CheckResult{{
			Name:   "image-refs-resolve",
			Passed: true,
			Detail: "no image references found",
		}}
	}

	var out []CheckResult
	for _, m := range matches {
		ref := m[1]
		res := CheckResult{Name: "image-refs-resolve", Detail: ref}
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			// Remote images are outside this repository's control.
			res.Passed = true
			out = append(out, res)
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(ref, "./")))
		if _, err := os.Stat(target); err != nil {
			res.Detail = fmt.Sprintf("%s: %v", ref, err)
			out = append(out, res)
			continue
		}
		res.Passed = true
		out = append(out, res)
	}
	return out
}

// checkSetupCommands validates that every documented setup command is a
// plain tool invocation: a command word plus arguments, free of shell
// metacharacters.
func checkSetupCommands(content string) []CheckResult {
	matches := setupCmdPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []CheckResult{{
			Name:   "setup-command-valid",
			Detail: "README documents no setup command",
		}}
	}

	var out []CheckResult
	for _, m := range matches {
		cmd := m[1]
		res := CheckResult{Name: "setup-command-valid", Detail: cmd}
		if strings.ContainsAny(cmd, "|&;<>$`\\") {
			res.Detail = fmt.Sprintf("%s: contains shell metacharacters", cmd)
			out = append(out, res)
			continue
		}
		fields := strings.Fields(cmd)
		if len(fields) < 2 {
			res.Detail = fmt.Sprintf("%s: not a command invocation", cmd)
			out = append(out, res)
			continue
		}
		res.Passed = true
		out = append(out, res)
	}
	return out
}
