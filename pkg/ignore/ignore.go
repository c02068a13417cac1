// Package ignore matches relative paths against gitignore-style exclusion patterns.
package ignore

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Precompiled expressions used when translating a pattern line into a regexp.
var (
	doubleStarMiddle   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\*\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\*\*/`)
)

// Pattern is one compiled exclusion line.
type Pattern struct {
	Regexp  *regexp.Regexp // Compiled form of the line.
	Negate  bool           // Line started with '!'.
	DirOnly bool           // Line ended with '/'.
	Line    string         // Original line.
	LineNo  int            // Line number in its source (1-based).
}

// Matcher holds an ordered list of patterns. The last matching pattern wins.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher. A nil logger disables logging.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len reports how many patterns are loaded.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// AddLines compiles pattern lines and appends them. Blank lines, comments and lines
// that fail to compile are skipped.
func (m *Matcher) AddLines(lines ...string) {
	for i, line := range lines {
		p := parseLine(line)
		if p == nil {
			continue
		}
		p.LineNo = i + 1
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore pattern", zap.String("line", line), zap.String("regexp", p.Regexp.String()))
	}
}

// AddFile reads an ignore file and appends its patterns.
func (m *Matcher) AddFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		m.logger.Error("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return fmt.Errorf("failed to read ignore file %s: %w", filePath, err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan ignore file %s: %w", filePath, err)
	}

	before := len(m.patterns)
	m.AddLines(lines...)
	m.logger.Debug("Loaded ignore file",
		zap.String("filePath", filePath),
		zap.Int("lineCount", len(lines)),
		zap.Int("patternCount", len(m.patterns)-before))
	return nil
}

// MatchFile reports whether a file at relPath is excluded.
func (m *Matcher) MatchFile(relPath string) bool {
	matched, _ := m.match(relPath, false)
	return matched
}

// MatchDir reports whether a directory at relPath is excluded.
func (m *Matcher) MatchDir(relPath string) bool {
	matched, _ := m.match(relPath, true)
	return matched
}

// MatchWithPattern is MatchFile/MatchDir that also returns the deciding pattern, if any.
func (m *Matcher) MatchWithPattern(relPath string, isDir bool) (bool, *Pattern) {
	return m.match(relPath, isDir)
}

func (m *Matcher) match(relPath string, isDir bool) (bool, *Pattern) {
	if m == nil || len(m.patterns) == 0 {
		return false, nil
	}
	p := filepath.ToSlash(relPath)

	var decided *Pattern
	matched := false
	for _, pattern := range m.patterns {
		candidate := p
		if pattern.DirOnly && !isDir {
			// A directory pattern reaches files only through their parent directory.
			candidate = path.Dir(p)
		}
		if !pattern.Regexp.MatchString(candidate) {
			continue
		}
		decided = pattern
		matched = !pattern.Negate
	}
	return matched, decided
}

// parseLine turns one pattern line into a Pattern, or nil if the line carries none.
func parseLine(line string) *Pattern {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	p := &Pattern{Line: line}
	if strings.HasPrefix(trimmed, "!") {
		p.Negate = true
		trimmed = trimmed[1:]
	}
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	if strings.HasSuffix(trimmed, "/") {
		p.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}
	anchored := strings.HasPrefix(trimmed, "/") || (strings.Contains(trimmed, "/") && !strings.HasPrefix(trimmed, "**/"))
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return nil
	}

	expr := escapeSpecialChars(trimmed)
	expr = handleDoubleStar(expr)
	expr = wildcardToRegex(expr)
	expr = anchor(expr, anchored)

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	p.Regexp = re
	return p
}

// escapeSpecialChars quotes regexp metacharacters, leaving '*' and '?' for
// wildcardToRegex. Bracket expressions such as [jt] or [!a-z] become character
// classes that never match '/'; an unclosed '[' is literal.
func escapeSpecialChars(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '[' {
			if class, n, ok := bracketClass(pattern[i:]); ok {
				b.WriteString(class)
				i += n - 1
				continue
			}
		}
		if c == '*' || c == '?' {
			b.WriteByte(c)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(c)))
	}
	return b.String()
}

// bracketClass translates the bracket expression at the start of s and returns it
// with the number of bytes consumed. Characters that are special to the later
// passes are written as hex escapes.
func bracketClass(s string) (string, int, bool) {
	j := 1
	negate := false
	if j < len(s) && (s[j] == '!' || s[j] == '^') {
		negate = true
		j++
	}
	start := j
	if j < len(s) && s[j] == ']' {
		j++
	}
	for j < len(s) && s[j] != ']' {
		j++
	}
	if j >= len(s) {
		return "", 0, false
	}

	var b strings.Builder
	b.WriteByte('[')
	if negate {
		b.WriteString("^/")
	}
	for _, c := range []byte(s[start:j]) {
		switch c {
		case '/':
			// A class never spans directories.
		case '*', '?', '\\', '[', ']', '^':
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(']')
	return b.String(), j + 1, true
}

// Placeholders for regexp text produced by handleDoubleStar, restored by
// wildcardToRegex once the single-segment wildcards are converted.
const (
	anyRun   = "\x00"
	optional = "\x01"
)

// handleDoubleStar rewrites '**' segments.
func handleDoubleStar(pattern string) string {
	pattern = doubleStarMiddle.ReplaceAllString(pattern, "(/|/"+anyRun+"/)")
	pattern = doubleStarTrailing.ReplaceAllString(pattern, "(/"+anyRun+")"+optional)
	pattern = doubleStarLeading.ReplaceAllString(pattern, "("+anyRun+"/)"+optional)
	return pattern
}

// wildcardToRegex converts '*' and '?' to segment-local regexp equivalents.
func wildcardToRegex(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "*", `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)
	pattern = strings.ReplaceAll(pattern, anyRun, ".*")
	return strings.ReplaceAll(pattern, optional, "?")
}

// anchor pins the expression to the whole relative path. Unanchored patterns may
// match at any directory level; either kind also matches everything below a match.
func anchor(expr string, anchored bool) string {
	if anchored {
		return "^" + expr + "(/.*)?$"
	}
	return "^(|.*/)" + expr + "(/.*)?$"
}
