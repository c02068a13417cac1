package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMatcher_Empty(t *testing.T) {
	m := New(nil)
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.MatchFile("a.ts"))
	assert.False(t, m.MatchDir("sub"))

	var nilMatcher *Matcher
	assert.False(t, nilMatcher.MatchFile("a.ts"))
}

func TestMatcher_CommentsAndBlankLines(t *testing.T) {
	m := New(zaptest.NewLogger(t))
	m.AddLines("", "   ", "# comment", "!")
	assert.Equal(t, 0, m.Len())
}

func TestMatcher_Patterns(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		path    string
		isDir   bool
		matched bool
	}{
		{"wildcard at root", []string{"*.gen.ts"}, "a.gen.ts", false, true},
		{"wildcard in subdirectory", []string{"*.gen.ts"}, "sub/a.gen.ts", false, true},
		{"wildcard miss", []string{"*.gen.ts"}, "a.ts", false, false},
		{"star stays in segment", []string{"sub*.ts"}, "sub/a.ts", false, false},
		{"question mark", []string{"a?.ts"}, "ab.ts", false, true},
		{"question mark is one char", []string{"a?.ts"}, "abc.ts", false, false},
		{"dots are literal", []string{"a.ts"}, "abts", false, false},
		{"dir pattern matches dir", []string{"vendor/"}, "vendor", true, true},
		{"dir pattern matches nested dir", []string{"vendor/"}, "sub/vendor", true, true},
		{"dir pattern skips same-named file", []string{"vendor/"}, "vendor", false, false},
		{"dir pattern covers children", []string{"vendor/"}, "vendor/x.ts", false, true},
		{"name matches dir too", []string{"build"}, "build", true, true},
		{"name covers children", []string{"build"}, "build/out.ts", false, true},
		{"leading slash anchors", []string{"/root.ts"}, "root.ts", false, true},
		{"leading slash not nested", []string{"/root.ts"}, "sub/root.ts", false, false},
		{"middle slash anchors", []string{"sub/*.ts"}, "sub/a.ts", false, true},
		{"middle slash not nested", []string{"sub/*.ts"}, "x/sub/a.ts", false, false},
		{"leading double star", []string{"**/fixtures"}, "a/fixtures", true, true},
		{"leading double star at root", []string{"**/fixtures"}, "fixtures", true, true},
		{"middle double star", []string{"a/**/z.ts"}, "a/b/c/z.ts", false, true},
		{"middle double star zero dirs", []string{"a/**/z.ts"}, "a/z.ts", false, true},
		{"trailing double star", []string{"gen/**"}, "gen/x/y.ts", false, true},
		{"negation re-includes", []string{"*.ts", "!keep.ts"}, "keep.ts", false, false},
		{"negation leaves others", []string{"*.ts", "!keep.ts"}, "drop.ts", false, true},
		{"last match wins", []string{"!keep.ts", "*.ts"}, "keep.ts", false, true},
		{"escaped hash", []string{`\#weird.ts`}, "#weird.ts", false, true},
		{"regexp chars are literal", []string{"a+(b).ts"}, "a+(b).ts", false, true},
		{"bracket class", []string{"*.[jt]s"}, "app.js", false, true},
		{"bracket class second member", []string{"*.[jt]s"}, "sub/app.ts", false, true},
		{"bracket class miss", []string{"*.[jt]s"}, "app.cs", false, false},
		{"bracket range", []string{"file[0-9].ts"}, "file7.ts", false, true},
		{"bracket range miss", []string{"file[0-9].ts"}, "filex.ts", false, false},
		{"negated bracket", []string{"[!a]*.ts"}, "b.ts", false, true},
		{"negated bracket miss", []string{"[!a]*.ts"}, "a.ts", false, false},
		{"caret negates too", []string{"[^a]*.ts"}, "a.ts", false, false},
		{"class with wildcard chars", []string{"x[*?].ts"}, "x?.ts", false, true},
		{"class with wildcard chars miss", []string{"x[*?].ts"}, "xy.ts", false, false},
		{"leading bracket in class", []string{"[]a].ts"}, "].ts", false, true},
		{"unclosed bracket is literal", []string{"a[b.ts"}, "a[b.ts", false, true},
		{"class never matches slash", []string{"a[!b]c"}, "a/c", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(zaptest.NewLogger(t))
			m.AddLines(tt.lines...)
			matched, pattern := m.MatchWithPattern(filepath.FromSlash(tt.path), tt.isDir)
			assert.Equal(t, tt.matched, matched, "lines %q path %q", tt.lines, tt.path)
			if matched {
				require.NotNil(t, pattern)
				assert.False(t, pattern.Negate)
			}
		})
	}
}

func TestMatcher_PatternMetadata(t *testing.T) {
	m := New(nil)
	m.AddLines("# header", "*.log", "!keep.log")

	matched, pattern := m.MatchWithPattern("keep.log", false)
	assert.False(t, matched)
	require.NotNil(t, pattern)
	assert.True(t, pattern.Negate)
	assert.Equal(t, "!keep.log", pattern.Line)
	assert.Equal(t, 3, pattern.LineNo)
}

func TestMatcher_AddFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".srcignore")
	require.NoError(t, os.WriteFile(path, []byte("# generated\n*.gen.ts\r\n\ndist/\n"), 0o644))

	m := New(zaptest.NewLogger(t))
	require.NoError(t, m.AddFile(path))
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.MatchFile("x.gen.ts"))
	assert.True(t, m.MatchDir("dist"))
	assert.False(t, m.MatchFile("x.ts"))
}

func TestMatcher_AddFileMissing(t *testing.T) {
	m := New(nil)
	err := m.AddFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
