package cnab

import (
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

// Validator re-checks decoded records against the business constraints of the format,
// wherever the records came from. It applies the same rules as Decoder.
type Validator struct {
	timeProvider coreport.TimeProvider
}

// NewValidator creates a new Validator
func NewValidator(timeProvider coreport.TimeProvider) *Validator {
	return &Validator{timeProvider: timeProvider}
}

// Validate returns every violation found in rec; an empty result means the record is valid
func (v *Validator) Validate(rec Record, lineNumber int) []string {
	var errors []string
	add := func(message string) {
		if message != "" {
			errors = append(errors, lineError(lineNumber, message))
		}
	}

	add(checkTypeCode(rec.TypeCode))
	add(checkDate(rec.Date, v.timeProvider.Now()))
	add(checkAmount(rec.Amount))

	if msg := checkSafety(FieldSubjectID, rec.SubjectID); msg != "" {
		add(msg)
	} else {
		add(checkSubjectID(rec.SubjectID))
	}
	if msg := checkSafety(FieldCardRef, rec.CardRef); msg != "" {
		add(msg)
	} else {
		add(checkCardRef(rec.CardRef))
	}

	add(checkTimeOfDay(rec.Time))

	if msg := checkSafety(FieldOwnerName, rec.OwnerName); msg != "" {
		add(msg)
	} else {
		add(checkName(FieldOwnerName, rec.OwnerName, MaxOwnerNameLength))
	}
	if msg := checkSafety(FieldStoreName, rec.StoreName); msg != "" {
		add(msg)
	} else {
		add(checkName(FieldStoreName, rec.StoreName, MaxStoreNameLength))
	}

	return errors
}

// ValidateAll validates records in order and returns the union of their violations
func (v *Validator) ValidateAll(records []Record) []string {
	var errors []string
	for _, rec := range records {
		errors = append(errors, v.Validate(rec, rec.LineNumber)...)
	}
	return errors
}
