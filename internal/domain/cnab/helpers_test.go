package cnab

import (
	"strings"
	"testing"
	"time"

	coremocks "github.com/amirhossein-jamali/cnab-processor/mocks/port/core"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClock(t *testing.T) *coremocks.MockTimeProvider {
	clock := coremocks.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(fixedNow).Maybe()
	return clock
}

// lineParts builds a line column by column so single fields can be overridden
type lineParts struct {
	typeCode, date, amount, subject, card, time, owner, store string
}

func validParts() lineParts {
	return lineParts{
		typeCode: "4",
		date:     "20250103",
		amount:   "0000001000",
		subject:  "09620676017",
		card:     "4753****3153",
		time:     "103000",
		owner:    "JOAO SILVA    ",
		store:    "LOJA CENTRO       ",
	}
}

func (p lineParts) String() string {
	return p.typeCode + p.date + p.amount + p.subject + p.card + p.time + p.owner + p.store
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
