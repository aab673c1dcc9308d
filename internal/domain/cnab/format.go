package cnab

import (
	"fmt"
	"strings"
)

// FormatLine renders rec as an 80-byte CNAB line. Text columns are left aligned and space
// padded, numeric columns are zero padded. Values longer than their column are truncated.
func FormatLine(rec Record) string {
	line := []byte(strings.Repeat(" ", LineLength))

	put := func(name, value string) {
		f, _ := FieldByName(name)
		for i := 0; i < f.Length && i < len(value) && f.Position+i < LineLength; i++ {
			line[f.Position+i] = value[i]
		}
	}

	put(FieldType, fmt.Sprintf("%d", rec.TypeCode))
	put(FieldDate, rec.Date.Format(dateLayout))
	put(FieldAmount, fmt.Sprintf("%010d", rec.Amount))
	put(FieldSubjectID, rec.SubjectID)
	put(FieldCardRef, rec.CardRef)
	put(FieldTime, fmt.Sprintf("%02d%02d%02d", rec.Time.Hour, rec.Time.Minute, rec.Time.Second))
	put(FieldOwnerName, rec.OwnerName)
	put(FieldStoreName, rec.StoreName)

	return string(line)
}
