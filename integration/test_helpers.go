package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaobinwen/netplan/pkg/netplanconfig"
)

// bundleToText returns the text of every package, each preceded by a file
// marker when the bundle holds more than one.
func bundleToText(bundle *netplanconfig.Bundle) string {
	if len(bundle.Packages) == 1 {
		return string(bundle.Packages[0].Content)
	}
	var b strings.Builder
	for i, pkg := range bundle.Packages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# file: %s\n", pkg.Name)
		b.Write(pkg.Content)
	}
	return b.String()
}

// readFixture loads testdata/networkmanager/<name>.
func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", "networkmanager", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// normalizeConfig unifies line endings and trims surrounding whitespace.
func normalizeConfig(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text
}

// compareConfigs compares documents ignoring surrounding whitespace.
func compareConfigs(got, want string) bool {
	return normalizeConfig(got) == normalizeConfig(want)
}

// formatConfigDiff describes where two documents differ line by line.
func formatConfigDiff(got, want string) string {
	gotNorm := normalizeConfig(got)
	wantNorm := normalizeConfig(want)

	if gotNorm == wantNorm {
		return "configs match (after normalization)"
	}

	gotLines := strings.Split(gotNorm, "\n")
	wantLines := strings.Split(wantNorm, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "config mismatch (got %d lines, want %d lines)\n", len(gotLines), len(wantLines))
	fmt.Fprintf(&b, "--- got (normalized) ---\n%s\n", gotNorm)
	fmt.Fprintf(&b, "--- want (normalized) ---\n%s\n", wantNorm)

	maxLines := len(gotLines)
	if len(wantLines) > maxLines {
		maxLines = len(wantLines)
	}

	fmt.Fprintf(&b, "--- line-by-line diff ---\n")
	for i := 0; i < maxLines; i++ {
		var gotLine, wantLine string
		if i < len(gotLines) {
			gotLine = gotLines[i]
		}
		if i < len(wantLines) {
			wantLine = wantLines[i]
		}

		if gotLine != wantLine {
			fmt.Fprintf(&b, "Line %d differs:\n", i+1)
			fmt.Fprintf(&b, "  got:  %q\n", gotLine)
			fmt.Fprintf(&b, "  want: %q\n", wantLine)
		}
	}

	return b.String()
}
