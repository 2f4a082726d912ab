package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noogen-projects/md-cli-test/internal/domain"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name      string
		documents []string
		pattern   string
		expected  int // Expected number of matches
	}{
		{
			name:      "empty pattern returns all",
			documents: []string{"README.md", "GUIDE.md", "CHANGELOG.md"},
			pattern:   "",
			expected:  3,
		},
		{
			name:      "wildcard pattern matches suffix",
			documents: []string{"README.md", "GUIDE.md", "CHANGELOG.md"},
			pattern:   "*GUIDE.md",
			expected:  1,
		},
		{
			name:      "wildcard pattern matches substring",
			documents: []string{"install.md", "install-linux.md", "usage.md"},
			pattern:   "*install*",
			expected:  2,
		},
		{
			name:      "simple contains match",
			documents: []string{"README.md", "GUIDE.md"},
			pattern:   "GUIDE",
			expected:  1,
		},
		{
			name:      "no matches",
			documents: []string{"README.md", "GUIDE.md"},
			pattern:   "*NonExistent*",
			expected:  0,
		},
		{
			name:      "full path with wildcard",
			documents: []string{"/path/to/README.md", "/path/to/GUIDE.md"},
			pattern:   "*README.md",
			expected:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.documents, tt.pattern)
			assert.Len(t, result, tt.expected)
		})
	}
}

func TestFilter_FilterSections(t *testing.T) {
	filter := NewFilter()
	sections := []domain.Section{{Title: "Installation"}, {Title: "Usage"}, {Title: "Usage on Windows"}, {Title: ""}}

	titles := func(sections []domain.Section) []string {
		var out []string
		for _, s := range sections {
			out = append(out, s.Title)
		}
		return out
	}

	assert.Len(t, filter.FilterSections(sections, ""), 4)
	assert.Equal(t, []string{"Installation"}, titles(filter.FilterSections(sections, "inst")))
	assert.Equal(t, []string{"Usage", "Usage on Windows"}, titles(filter.FilterSections(sections, "usage")))
	assert.Equal(t, []string{"Usage on Windows"}, titles(filter.FilterSections(sections, "*Windows")))
	assert.Empty(t, filter.FilterSections(sections, "deploy"))
}
