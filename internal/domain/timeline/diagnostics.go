package timeline

import "clash_war_timeline/internal/app"

// CountUnmatchedTags reports how many attacker/defender references in the
// attack list point at tags absent from the relevant roster. The fold
// tolerates these silently; callers can use the count for a diagnostic log.
//
// Pure function: No I/O, deterministic output from input.
func CountUnmatchedTags(war *app.WarData, attacks []app.Attack) int {
	clanTags := rosterTagSet(war.Clan.Members)
	opponentTags := rosterTagSet(war.Opponent.Members)

	unmatched := 0
	for _, attack := range attacks {
		attackerTags, defenderTags := clanTags, opponentTags
		if attack.Side == app.SideOpponent {
			attackerTags, defenderTags = opponentTags, clanTags
		}
		if !attackerTags[attack.AttackerTag] {
			unmatched++
		}
		if !defenderTags[attack.DefenderTag] {
			unmatched++
		}
	}
	return unmatched
}

func rosterTagSet(members []app.Member) map[string]bool {
	tags := make(map[string]bool, len(members))
	for _, member := range members {
		tags[member.Tag] = true
	}
	return tags
}
