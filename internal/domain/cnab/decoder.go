package cnab

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

const dateLayout = "20060102"

// Decoder turns single CNAB lines into records. It keeps no state between lines.
type Decoder struct {
	timeProvider coreport.TimeProvider
}

// NewDecoder creates a decoder; the clock bounds the accepted date range
func NewDecoder(timeProvider coreport.TimeProvider) *Decoder {
	return &Decoder{timeProvider: timeProvider}
}

// lineDecoding accumulates the errors of one line
type lineDecoding struct {
	line       string
	lineNumber int
	errors     []string
}

func (d *lineDecoding) fail(format string, args ...any) {
	d.errors = append(d.errors, lineError(d.lineNumber, fmt.Sprintf(format, args...)))
}

func (d *lineDecoding) failIf(message string) {
	if message != "" {
		d.errors = append(d.errors, lineError(d.lineNumber, message))
	}
}

func (d *lineDecoding) raw(name string) string {
	f, _ := FieldByName(name)
	return f.Extract(d.line)
}

// text returns the trimmed column, or ok=false after recording an unsafe content error
func (d *lineDecoding) text(name string) (string, bool) {
	value := strings.TrimSpace(d.raw(name))
	if msg := checkSafety(name, value); msg != "" {
		d.failIf(msg)
		return value, false
	}
	return value, true
}

// DecodeLine decodes line, reporting every field error found. A wrong line length is
// reported alone. A non-empty error slice means the returned record must not be used.
func (dec *Decoder) DecodeLine(line string, lineNumber int) (Record, []string) {
	if len(line) != LineLength {
		return Record{}, []string{lineError(lineNumber,
			fmt.Sprintf("invalid line length: expected %d characters, got %d", LineLength, len(line)))}
	}

	d := &lineDecoding{line: line, lineNumber: lineNumber}
	rec := Record{LineNumber: lineNumber}

	rec.TypeCode = d.typeCode()
	rec.Date = d.date(dec.timeProvider.Now())
	rec.Amount = d.amount()

	if subject, ok := d.text(FieldSubjectID); ok {
		d.failIf(checkSubjectID(subject))
		rec.SubjectID = subject
	}
	if card, ok := d.text(FieldCardRef); ok {
		d.failIf(checkCardRef(card))
		rec.CardRef = card
	}

	rec.Time = d.timeOfDay()

	if owner, ok := d.text(FieldOwnerName); ok {
		d.failIf(checkName(FieldOwnerName, owner, MaxOwnerNameLength))
		rec.OwnerName = owner
	}
	if store, ok := d.text(FieldStoreName); ok {
		d.failIf(checkName(FieldStoreName, store, MaxStoreNameLength))
		rec.StoreName = store
	}

	if len(d.errors) > 0 {
		return Record{}, d.errors
	}
	return rec, nil
}

func (d *lineDecoding) typeCode() int {
	raw := d.raw(FieldType)
	if !isDigits(raw) {
		d.fail("invalid transaction type %q: must be a digit between 1 and 9", raw)
		return 0
	}
	code := int(raw[0] - '0')
	d.failIf(checkTypeCode(code))
	return code
}

func (d *lineDecoding) date(now time.Time) time.Time {
	raw := d.raw(FieldDate)
	if !isDigits(raw) {
		d.fail("invalid date %q: expected YYYYMMDD", raw)
		return time.Time{}
	}
	date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		d.fail("invalid date %q: not a calendar date", raw)
		return time.Time{}
	}
	if msg := checkDate(date, now); msg != "" {
		d.failIf(msg)
		return time.Time{}
	}
	return date
}

func (d *lineDecoding) amount() int64 {
	raw := d.raw(FieldAmount)
	if !isDigits(raw) {
		d.fail("invalid amount %q: must be numeric", raw)
		return 0
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		d.fail("invalid amount %q: %v", raw, err)
		return 0
	}
	d.failIf(checkAmount(amount))
	return amount
}

func (d *lineDecoding) timeOfDay() entity.TimeOfDay {
	raw := d.raw(FieldTime)
	if !isDigits(raw) {
		d.fail("invalid time %q: expected HHMMSS", raw)
		return entity.TimeOfDay{}
	}
	t := entity.TimeOfDay{
		Hour:   int(raw[0]-'0')*10 + int(raw[1]-'0'),
		Minute: int(raw[2]-'0')*10 + int(raw[3]-'0'),
		Second: int(raw[4]-'0')*10 + int(raw[5]-'0'),
	}
	d.failIf(checkTimeOfDay(t))
	return t
}
