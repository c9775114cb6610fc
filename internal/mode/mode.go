// Package mode maps filenames to editing-language tags.
//
// Resolution is a pure lookup over the filename's extension. The tag set is
// closed: new languages are added by extending the table, not by branching
// logic elsewhere in the system.
package mode

// Tag identifies the syntax-aware treatment that applies to a document.
type Tag string

const (
	// Markup is the tag for HTML documents. Markup documents are the only
	// ones eligible for live preview composition.
	Markup Tag = "markup"
	// Style is the tag for CSS documents.
	Style Tag = "style"
	// Script is the tag for JavaScript documents.
	Script Tag = "script"
	// Python is the tag for Python source.
	Python Tag = "python"
	// Java is the tag for Java source.
	Java Tag = "java"
	// C is the tag for C source.
	C Tag = "c"
	// CPP is the tag for C++ source.
	CPP Tag = "cpp"
	// PHP is the tag for PHP source.
	PHP Tag = "php"
	// Swift is the tag for Swift source.
	Swift Tag = "swift"
	// Go is the tag for Go source.
	Go Tag = "go"
	// PlainText is the fallback for unknown or missing extensions.
	PlainText Tag = "plain-text"
)

// byExtension is the closed resolution table. Keys are extensions without
// the leading dot.
var byExtension = map[string]Tag{
	"html":  Markup,
	"css":   Style,
	"js":    Script,
	"py":    Python,
	"java":  Java,
	"c":     C,
	"cpp":   CPP,
	"php":   PHP,
	"swift": Swift,
	"go":    Go,
}

// Resolve returns the editing-language tag for filename.
// It is total: a filename with no extension, a trailing dot, or an unknown
// extension resolves to PlainText.
func Resolve(filename string) Tag {
	ext := ""
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			ext = filename[i+1:]
			break
		}
		if filename[i] == '/' || filename[i] == '\\' {
			break
		}
	}

	if tag, ok := byExtension[ext]; ok {
		return tag
	}
	return PlainText
}

// IsMarkup reports whether the tag selects HTML treatment.
func (t Tag) IsMarkup() bool { return t == Markup }

// IsStyle reports whether the tag selects CSS treatment.
func (t Tag) IsStyle() bool { return t == Style }

// IsScript reports whether the tag selects JavaScript treatment.
func (t Tag) IsScript() bool { return t == Script }

// String returns the tag as a string.
func (t Tag) String() string { return string(t) }
