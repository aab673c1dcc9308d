// Package cnab decodes and validates the 80-byte CNAB settlement line format.
package cnab

// LineLength is the exact length of every CNAB line
const LineLength = 80

// FieldKind describes how a field is encoded
type FieldKind string

// FieldKind constants
const (
	KindNumeric FieldKind = "numeric"
	KindDate    FieldKind = "date"
	KindTime    FieldKind = "time"
	KindText    FieldKind = "text"
)

// Field is one fixed-width column of a line
type Field struct {
	Name     string
	Position int // 0-based offset
	Length   int
	Kind     FieldKind
}

// Field names, also used in error messages
const (
	FieldType      = "type"
	FieldDate      = "date"
	FieldAmount    = "amount"
	FieldSubjectID = "subject_id"
	FieldCardRef   = "card"
	FieldTime      = "time"
	FieldOwnerName = "owner_name"
	FieldStoreName = "store_name"
)

// Layout lists the fields of a line in column order
var Layout = []Field{
	{Name: FieldType, Position: 0, Length: 1, Kind: KindNumeric},
	{Name: FieldDate, Position: 1, Length: 8, Kind: KindDate},
	{Name: FieldAmount, Position: 9, Length: 10, Kind: KindNumeric},
	{Name: FieldSubjectID, Position: 19, Length: 11, Kind: KindNumeric},
	{Name: FieldCardRef, Position: 30, Length: 12, Kind: KindText},
	{Name: FieldTime, Position: 42, Length: 6, Kind: KindTime},
	{Name: FieldOwnerName, Position: 48, Length: 14, Kind: KindText},
	{Name: FieldStoreName, Position: 62, Length: 19, Kind: KindText},
}

// layoutByName indexes Layout
var layoutByName = func() map[string]Field {
	index := make(map[string]Field, len(Layout))
	for _, f := range Layout {
		index[f.Name] = f
	}
	return index
}()

// FieldByName returns the layout entry for name
func FieldByName(name string) (Field, bool) {
	f, ok := layoutByName[name]
	return f, ok
}

// Extract returns the raw column of line, clamped to the line end.
// The store name column is declared with 19 bytes but an 80-byte line only holds 18 of them.
func (f Field) Extract(line string) string {
	if f.Position >= len(line) {
		return ""
	}
	end := f.Position + f.Length
	if end > len(line) {
		end = len(line)
	}
	return line[f.Position:end]
}
