package processing

import (
	"errors"
	"fmt"

	"clash_war_timeline/internal/app"
)

// ErrNoWarData indicates that neither a current nor a previous war is
// available, so there is nothing to reconstruct.
var ErrNoWarData = errors.New("no war data available")

// SelectWar picks a war by position: 0 is the current war, 1..N are previous
// wars, most recent first. When the requested war is missing it falls back to
// the first previous war and reports the adjusted position.
//
// Pure function: No I/O, deterministic output from input.
func SelectWar(current *app.WarData, previous []app.WarData, position int) (*app.WarData, int, error) {
	if position == 0 && current != nil {
		return current, 0, nil
	}

	idx := position - 1
	if idx >= 0 && idx < len(previous) {
		return &previous[idx], position, nil
	}

	if len(previous) > 0 {
		return &previous[0], 1, nil
	}

	return nil, 0, ErrNoWarData
}

// OrientWar swaps the snapshot's clan and opponent in place when the API
// returned the war from the other side's perspective, so "clan" always
// refers to the queried party.
func OrientWar(war *app.WarData, clanTag string) {
	if war.Clan.Tag != clanTag {
		war.Clan, war.Opponent = war.Opponent, war.Clan
	}
}

// WarOptions builds the selectable war list published with the export
// payload, mirroring what the presentation layer offers in its dropdown.
func WarOptions(hasCurrent bool, previousCount int) []app.WarOption {
	var options []app.WarOption
	if hasCurrent {
		options = append(options, app.WarOption{Position: 0, Label: "Current War"})
	}
	for i := 1; i <= previousCount; i++ {
		options = append(options, app.WarOption{Position: i, Label: fmt.Sprintf("Previous War %d", i)})
	}
	return options
}
