package timeline

import (
	"clash_war_timeline/internal/app"
)

// ComputeTimeline rebuilds a war attack-by-attack: it extracts and orders
// both sides' attacks, then folds them into cumulative snapshots. The result
// always holds one snapshot per attack plus the initial zero-state, so a war
// with no attacks yields exactly one snapshot.
//
// Destruction is normalized per side as sum/(teamSize*100)*100, turning raw
// percentage points scored across the roster into an overall war-destruction
// percentage. TeamSize is taken from the snapshot as-is; validating it is the
// caller's responsibility.
//
// Pure function: No I/O, operates only on the in-memory snapshot. Accumulator
// state is local to one call, so concurrent calls on different wars are safe.
func ComputeTimeline(war *app.WarData) ([]app.TimelineSnapshot, error) {
	attacks, err := ExtractAttacks(war)
	if err != nil {
		return nil, err
	}

	clanStats := initializeMemberStats(war.Clan.Members)
	opponentStats := initializeMemberStats(war.Opponent.Members)

	var (
		clanStars           int
		clanAttacksUsed     int
		opponentStars       int
		opponentAttacksUsed int
		sumClanDestruction  float64
		sumOppDestruction   float64
		clanDestruction     float64
		opponentDestruction float64
	)

	warTimeline := make([]app.TimelineSnapshot, 0, len(attacks)+1)
	warTimeline = append(warTimeline, app.TimelineSnapshot{
		Order:           0,
		ClanMembers:     snapshotMemberStats(war.Clan.Members, clanStats),
		OpponentMembers: snapshotMemberStats(war.Opponent.Members, opponentStats),
		LastAttack:      nil,
	})

	for _, attack := range attacks {
		if attack.Side == app.SideClan {
			clanStars += attack.Stars
			sumClanDestruction += attack.DestructionPercentage
			clanAttacksUsed++

			// Unknown tags are tolerated: side totals still count the
			// attack, per-member counters just skip it.
			if stat, ok := clanStats[attack.AttackerTag]; ok {
				stat.AttacksUsed++
			}
			if stat, ok := opponentStats[attack.DefenderTag]; ok {
				stat.DefensesUsed++
			}
		} else {
			opponentStars += attack.Stars
			sumOppDestruction += attack.DestructionPercentage
			opponentAttacksUsed++

			if stat, ok := opponentStats[attack.AttackerTag]; ok {
				stat.AttacksUsed++
			}
			if stat, ok := clanStats[attack.DefenderTag]; ok {
				stat.DefensesUsed++
			}
		}

		clanDestruction = sumClanDestruction / (float64(war.TeamSize) * 100) * 100
		opponentDestruction = sumOppDestruction / (float64(war.TeamSize) * 100) * 100

		lastAttack := attack
		warTimeline = append(warTimeline, app.TimelineSnapshot{
			Order:               attack.Order,
			ClanStars:           clanStars,
			ClanDestruction:     clanDestruction,
			ClanAttacksUsed:     clanAttacksUsed,
			OpponentStars:       opponentStars,
			OpponentDestruction: opponentDestruction,
			OpponentAttacksUsed: opponentAttacksUsed,
			ClanMembers:         snapshotMemberStats(war.Clan.Members, clanStats),
			OpponentMembers:     snapshotMemberStats(war.Opponent.Members, opponentStats),
			LastAttack:          &lastAttack,
		})
	}

	return warTimeline, nil
}

// initializeMemberStats creates a zeroed accumulator for every member of a
// roster, keyed by member tag. Every member gets one whether or not they
// ever attack.
func initializeMemberStats(members []app.Member) map[string]*app.MemberStat {
	stats := make(map[string]*app.MemberStat, len(members))
	for _, member := range members {
		stats[member.Tag] = &app.MemberStat{Tag: member.Tag}
	}
	return stats
}

// snapshotMemberStats takes a value copy of the accumulators in roster order.
// The copy keeps already-emitted snapshots independent of later fold steps.
func snapshotMemberStats(members []app.Member, stats map[string]*app.MemberStat) []app.MemberStat {
	copied := make([]app.MemberStat, 0, len(members))
	for _, member := range members {
		if stat, ok := stats[member.Tag]; ok {
			copied = append(copied, *stat)
		}
	}
	return copied
}
