package cnab

import (
	"regexp"
	"strings"
)

// unsafeSequences are SQL, shell and HTML metacharacters never expected in CNAB text
var unsafeSequences = []string{
	"'", "\"", ";", "--", "/*", "*/", "<", ">", "`", "$", "|", "&", "\\", "\x00",
}

var sqlKeywordPattern = regexp.MustCompile(
	`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|UNION|EXEC|EXECUTE|ALTER|CREATE|TRUNCATE|GRANT|REVOKE|SCRIPT)\b`,
)

// IsSafeText reports whether value is free of injection payloads
func IsSafeText(value string) bool {
	for _, seq := range unsafeSequences {
		if strings.Contains(value, seq) {
			return false
		}
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] == 0x7f {
			return false
		}
	}
	return !sqlKeywordPattern.MatchString(value)
}
