package timeline

import (
	"sort"

	"clash_war_timeline/internal/app"
)

// ExtractAttacks flattens both rosters into one attack list ordered by the
// war-wide order field. Clan attacks are enumerated before opponent attacks,
// so a stable sort preserves that relative order on (unexpected) equal orders.
//
// Pure function: Does not modify the war snapshot, returns a new slice.
func ExtractAttacks(war *app.WarData) ([]app.Attack, error) {
	attacks := make([]app.Attack, 0)

	clanAttacks, err := extractRosterAttacks(app.SideClan, &war.Clan)
	if err != nil {
		return nil, err
	}
	attacks = append(attacks, clanAttacks...)

	opponentAttacks, err := extractRosterAttacks(app.SideOpponent, &war.Opponent)
	if err != nil {
		return nil, err
	}
	attacks = append(attacks, opponentAttacks...)

	sort.SliceStable(attacks, func(i, j int) bool {
		return attacks[i].Order < attacks[j].Order
	})

	return attacks, nil
}

// extractRosterAttacks emits one validated Attack per raw attack record of
// every member on the roster. A member with no attacks contributes nothing.
func extractRosterAttacks(side app.Side, roster *app.Roster) ([]app.Attack, error) {
	var attacks []app.Attack

	for _, member := range roster.Members {
		for i, raw := range member.Attacks {
			attack, err := validateAttack(side, member.Tag, i, raw)
			if err != nil {
				return nil, err
			}
			attacks = append(attacks, attack)
		}
	}

	return attacks, nil
}

// validateAttack converts a raw API attack record into a validated Attack.
// All fields except duration are mandatory; duration defaults to 0 when
// absent upstream.
func validateAttack(side app.Side, memberTag string, index int, raw app.RawAttack) (app.Attack, error) {
	missing := ""
	switch {
	case raw.AttackerTag == "":
		missing = "attackerTag"
	case raw.DefenderTag == "":
		missing = "defenderTag"
	case raw.Stars == nil:
		missing = "stars"
	case raw.DestructionPercentage == nil:
		missing = "destructionPercentage"
	case raw.Order == nil:
		missing = "order"
	}
	if missing != "" {
		return app.Attack{}, &MalformedAttackError{
			Side:        side,
			MemberTag:   memberTag,
			AttackIndex: index,
			Field:       missing,
		}
	}

	duration := 0
	if raw.Duration != nil {
		duration = *raw.Duration
	}

	return app.Attack{
		Side:                  side,
		AttackerTag:           raw.AttackerTag,
		DefenderTag:           raw.DefenderTag,
		Stars:                 *raw.Stars,
		DestructionPercentage: *raw.DestructionPercentage,
		Order:                 *raw.Order,
		Duration:              duration,
	}, nil
}
