package themefile

import (
	"regexp"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

var (
	multipleBlankLines        = regexp.MustCompile(`\n{3,}`)
	blankLineAfterOpenBrace   = regexp.MustCompile(`\{\n\s*\n`)
	blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)
)

// Format returns theme source formatted according to HCL canonical style
// rules, with runs of blank lines collapsed and blank lines inside block
// boundaries removed. It tolerates partial and invalid input, so formatting
// works while the user is still typing.
func Format(src string) string {
	formatted := string(hclwrite.Format([]byte(src)))
	formatted = multipleBlankLines.ReplaceAllString(formatted, "\n\n")
	formatted = blankLineAfterOpenBrace.ReplaceAllString(formatted, "{\n")
	return blankLineBeforeCloseBrace.ReplaceAllString(formatted, "\n${1}")
}
