package materialize

import (
	"os"
	"regexp"
)

// placeholderPattern matches %VAR% style environment placeholders embedded in
// config paths, e.g. %APPDATA%\Claude\claude_desktop_config.json.
var placeholderPattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// ExpandPath replaces every %VAR% placeholder in a config path with the
// current value of the corresponding environment variable. Expansion happens
// at materialization time, not when the path was saved. Unset variables
// expand to the empty string; this is documented lossy behavior, not an
// error.
func ExpandPath(path string) string {
	return placeholderPattern.ReplaceAllStringFunc(path, func(token string) string {
		name := token[1 : len(token)-1]
		return os.Getenv(name)
	})
}
