package cnab

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

func TestDecodeLine_ValidLine(t *testing.T) {
	decoder := NewDecoder(newTestClock(t))
	line := validParts().String()
	require.Len(t, line, LineLength)

	rec, errs := decoder.DecodeLine(line, 1)

	require.Empty(t, errs)
	assert.Equal(t, 1, rec.LineNumber)
	assert.Equal(t, 4, rec.TypeCode)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, int64(1000), rec.Amount)
	assert.Equal(t, "09620676017", rec.SubjectID)
	assert.Equal(t, "4753****3153", rec.CardRef)
	assert.Equal(t, entity.TimeOfDay{Hour: 10, Minute: 30, Second: 0}, rec.Time)
	assert.Equal(t, "JOAO SILVA", rec.OwnerName)
	assert.Equal(t, "LOJA CENTRO", rec.StoreName)
	assert.Equal(t, entity.StoreKey{Name: "LOJA CENTRO", OwnerName: "JOAO SILVA"}, rec.StoreKey())
}

func TestDecodeLine_InvalidLength(t *testing.T) {
	decoder := NewDecoder(newTestClock(t))
	valid := validParts().String()

	t.Run("79 characters", func(t *testing.T) {
		_, errs := decoder.DecodeLine(valid[:79], 3)

		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "79")
		assert.Contains(t, errs[0], "80")
		assert.True(t, strings.HasPrefix(errs[0], "line 3:"))
	})

	// Any length other than 80 yields exactly one error, whatever the content
	for _, n := range []int{0, 1, 40, 78, 81, 82, 160} {
		content := strings.Repeat("X", n)
		_, errs := decoder.DecodeLine(content, 1)
		assert.Len(t, errs, 1, "length %d", n)
		assert.Contains(t, errs[0], "invalid line length", "length %d", n)
	}
	_, errs := decoder.DecodeLine(valid+" ", 1)
	assert.Len(t, errs, 1)
}

func TestDecodeLine_FieldErrors(t *testing.T) {
	decoder := NewDecoder(newTestClock(t))

	tests := []struct {
		name     string
		mutate   func(p *lineParts)
		contains string
	}{
		{"type zero", func(p *lineParts) { p.typeCode = "0" }, "invalid transaction type 0"},
		{"type letter", func(p *lineParts) { p.typeCode = "A" }, "invalid transaction type \"A\""},
		{"date not numeric", func(p *lineParts) { p.date = "2025AB01" }, "expected YYYYMMDD"},
		{"date not in calendar", func(p *lineParts) { p.date = "20250230" }, "not a calendar date"},
		{"date before 1900", func(p *lineParts) { p.date = "18991231" }, "out of range [1900, 2026]"},
		{"date too far ahead", func(p *lineParts) { p.date = "20270101" }, "out of range"},
		{"amount zero", func(p *lineParts) { p.amount = "0000000000" }, "amount must be greater than zero"},
		{"amount not numeric", func(p *lineParts) { p.amount = "00000010A0" }, "must be numeric"},
		{"amount with spaces", func(p *lineParts) { p.amount = "     10000" }, "must be numeric"},
		{"subject too short", func(p *lineParts) { p.subject = "0962067601 " }, "exactly 11 digits"},
		{"subject letters", func(p *lineParts) { p.subject = "ABCDEFGHIJK" }, "exactly 11 digits"},
		{"card blank", func(p *lineParts) { p.card = pad("", 12) }, "card reference is required"},
		{"card charset", func(p *lineParts) { p.card = "4753-***3153" }, "only letters, digits and '*'"},
		{"hour out of range", func(p *lineParts) { p.time = "246000" }, "out of range"},
		{"minute out of range", func(p *lineParts) { p.time = "106000" }, "out of range"},
		{"time not numeric", func(p *lineParts) { p.time = "10300A" }, "expected HHMMSS"},
		{"owner blank", func(p *lineParts) { p.owner = pad("", 14) }, "owner_name is required"},
		{"store blank", func(p *lineParts) { p.store = pad("", 18) }, "store_name is required"},
		{"owner sql keyword", func(p *lineParts) { p.owner = pad("DROP TABLE", 14) }, "field owner_name contains unsafe content"},
		{"store metacharacters", func(p *lineParts) { p.store = pad("LOJA'; --", 18) }, "field store_name contains unsafe content"},
		{"store html", func(p *lineParts) { p.store = pad("<b>LOJA</b>", 18) }, "field store_name contains unsafe content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := validParts()
			tt.mutate(&parts)
			line := parts.String()
			require.Len(t, line, LineLength)

			rec, errs := decoder.DecodeLine(line, 7)

			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Contains(t, errs[0], tt.contains)
			assert.True(t, strings.HasPrefix(errs[0], "line 7: "))
			assert.Equal(t, Record{}, rec)
		})
	}
}

func TestDecodeLine_AccumulatesErrors(t *testing.T) {
	decoder := NewDecoder(newTestClock(t))
	parts := validParts()
	parts.typeCode = "0"
	parts.amount = "0000000000"
	parts.time = "999999"
	parts.owner = pad("", 14)

	_, errs := decoder.DecodeLine(parts.String(), 2)

	assert.Len(t, errs, 4)
}

func TestDecodeLine_UnsafeReportedInsteadOfFormat(t *testing.T) {
	decoder := NewDecoder(newTestClock(t))
	parts := validParts()
	parts.card = "4753;***3153"

	_, errs := decoder.DecodeLine(parts.String(), 1)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "field card contains unsafe content")
	assert.NotContains(t, errs[0], "only letters")
}

func TestFormatLineDecodes(t *testing.T) {
	decoder := NewDecoder(newTestClock(t))
	rec := Record{
		LineNumber: 1,
		TypeCode:   9,
		Date:       time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		Amount:     15200,
		SubjectID:  "84515254073",
		CardRef:    "1234****7890",
		Time:       entity.TimeOfDay{Hour: 23, Minute: 59, Second: 59},
		OwnerName:  "MARCOS PEREIRA",
		StoreName:  "MERCADO DA AVENIDA",
	}

	line := FormatLine(rec)
	require.Len(t, line, LineLength)

	decoded, errs := decoder.DecodeLine(line, 1)
	require.Empty(t, errs)
	assert.Equal(t, rec, decoded)
}
