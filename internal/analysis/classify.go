package analysis

import (
	"slices"
	"strings"

	"codenote-backend/internal/learning"
)

var (
	markdownExtensions     = []string{"md", "markdown", "txt"}
	optimizationExtensions = []string{"ts", "js", "tsx", "jsx"}
)

// FileExtension returns the lower-cased text after the last dot, or "" when there is none.
func FileExtension(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(fileName[i+1:])
}

// Classify picks the prompt family for a file.
func Classify(fileName string) learning.FileType {
	if slices.Contains(markdownExtensions, FileExtension(fileName)) {
		return learning.FileTypeMarkdown
	}
	return learning.FileTypeCode
}

// WantsOptimizations reports whether the code-optimization section is requested.
func WantsOptimizations(fileName string) bool {
	return Classify(fileName) == learning.FileTypeCode &&
		slices.Contains(optimizationExtensions, FileExtension(fileName))
}
