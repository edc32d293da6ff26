package timeline

import (
	"fmt"

	"clash_war_timeline/internal/app"
)

// MalformedAttackError reports a raw attack record that is missing a
// mandatory field. Extraction aborts for the whole war when one is found;
// no partial timeline is ever produced from bad input.
type MalformedAttackError struct {
	Side        app.Side
	MemberTag   string
	AttackIndex int
	Field       string
}

func (e *MalformedAttackError) Error() string {
	return fmt.Sprintf("malformed attack record: side=%s member=%s attack_index=%d missing mandatory field %q",
		e.Side, e.MemberTag, e.AttackIndex, e.Field)
}
