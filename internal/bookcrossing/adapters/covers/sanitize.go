package covers

import (
	"path"
	"strings"
)

// maxFilenameLength ограничивает длину очищенного имени файла.
const maxFilenameLength = 100

// allowedExtensions - разрешенные расширения обложек в нижнем регистре.
var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// SanitizeFilename оставляет от имени файла только базовое имя из символов [A-Za-z0-9._-].
// Пробелы заменяются на подчеркивание, ведущие точки отбрасываются.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		}
	}

	clean := strings.TrimLeft(b.String(), ".")
	if len(clean) > maxFilenameLength {
		clean = clean[len(clean)-maxFilenameLength:]
		clean = strings.TrimLeft(clean, ".")
	}
	return clean
}

// Extension возвращает расширение имени файла в нижнем регистре без точки.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Allowed сообщает, разрешено ли расширение файла для обложки.
func Allowed(name string) bool {
	_, ok := allowedExtensions[Extension(name)]
	return ok
}
