package timeline

import (
	"fmt"
	"reflect"
	"testing"

	"clash_war_timeline/internal/app"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// attackSpec is a value-typed stand-in for RawAttack so generators never
// produce nil mandatory fields.
type attackSpec struct {
	Stars       int
	Destruction float64
	Order       int
	Duration    int
}

func genAttackSpec() gopter.Gen {
	return gen.Struct(reflect.TypeOf(attackSpec{}), map[string]gopter.Gen{
		"Stars":       gen.IntRange(0, 3),
		"Destruction": gen.Float64Range(0, 100),
		"Order":       gen.IntRange(1, 500),
		"Duration":    gen.IntRange(0, 180),
	})
}

// genMemberAttacks generates per-member attack lists for one roster.
// Slice sizes are bounded by the test parameters' MaxSize.
func genMemberAttacks() gopter.Gen {
	return gen.SliceOf(gen.SliceOf(genAttackSpec()))
}

// buildWar assembles a war snapshot from generated attack specs. Member tags
// are synthesized per side; every attacker tag is the owning member's tag and
// every defender tag is a member of the opposing roster when one exists.
func buildWar(clanSpecs, opponentSpecs [][]attackSpec, teamSize int) *app.WarData {
	war := &app.WarData{
		TeamSize: teamSize,
		Clan:     app.Roster{Tag: "#CLAN"},
		Opponent: app.Roster{Tag: "#OPP"},
	}

	war.Clan.Members = buildRoster("#C", "#O", clanSpecs, len(opponentSpecs))
	war.Opponent.Members = buildRoster("#O", "#C", opponentSpecs, len(clanSpecs))
	return war
}

func buildRoster(ownPrefix, otherPrefix string, specs [][]attackSpec, otherSize int) []app.Member {
	members := make([]app.Member, 0, len(specs))
	for i, attacks := range specs {
		member := app.Member{Tag: fmt.Sprintf("%s%d", ownPrefix, i+1)}
		for j, spec := range attacks {
			defender := fmt.Sprintf("%s%d", otherPrefix, j%max(otherSize, 1)+1)
			member.Attacks = append(member.Attacks, app.RawAttack{
				AttackerTag:           member.Tag,
				DefenderTag:           defender,
				Stars:                 intPtr(spec.Stars),
				DestructionPercentage: floatPtr(spec.Destruction),
				Order:                 intPtr(spec.Order),
				Duration:              intPtr(spec.Duration),
			})
		}
		members = append(members, member)
	}
	return members
}

func totalAttacks(specs [][]attackSpec) int {
	total := 0
	for _, attacks := range specs {
		total += len(attacks)
	}
	return total
}

func TestTimelineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MaxSize = 5 // keeps generated rosters and attack lists small
	properties := gopter.NewProperties(parameters)

	// Property: snapshot count is always attack count plus one
	properties.Property("snapshot count equals attack count plus one", prop.ForAll(
		func(clanSpecs, opponentSpecs [][]attackSpec, teamSize int) bool {
			war := buildWar(clanSpecs, opponentSpecs, teamSize)
			warTimeline, err := ComputeTimeline(war)
			if err != nil {
				return false
			}
			return len(warTimeline) == totalAttacks(clanSpecs)+totalAttacks(opponentSpecs)+1
		},
		genMemberAttacks(),
		genMemberAttacks(),
		gen.IntRange(1, 50),
	))

	// Property: per-side totals never decrease across the snapshot sequence
	properties.Property("side totals are monotonically non-decreasing", prop.ForAll(
		func(clanSpecs, opponentSpecs [][]attackSpec, teamSize int) bool {
			war := buildWar(clanSpecs, opponentSpecs, teamSize)
			warTimeline, err := ComputeTimeline(war)
			if err != nil {
				return false
			}
			for i := 1; i < len(warTimeline); i++ {
				prev, curr := warTimeline[i-1], warTimeline[i]
				if curr.ClanStars < prev.ClanStars || curr.OpponentStars < prev.OpponentStars {
					return false
				}
				if curr.ClanAttacksUsed < prev.ClanAttacksUsed || curr.OpponentAttacksUsed < prev.OpponentAttacksUsed {
					return false
				}
				if curr.ClanDestruction < prev.ClanDestruction || curr.OpponentDestruction < prev.OpponentDestruction {
					return false
				}
			}
			return true
		},
		genMemberAttacks(),
		genMemberAttacks(),
		gen.IntRange(1, 50),
	))

	// Property: snapshots follow the merged attack list's ascending order
	properties.Property("snapshot order matches merged attack order", prop.ForAll(
		func(clanSpecs, opponentSpecs [][]attackSpec, teamSize int) bool {
			war := buildWar(clanSpecs, opponentSpecs, teamSize)
			attacks, err := ExtractAttacks(war)
			if err != nil {
				return false
			}
			warTimeline, err := ComputeTimeline(war)
			if err != nil {
				return false
			}
			for i, attack := range attacks {
				if warTimeline[i+1].Order != attack.Order {
					return false
				}
				if i > 0 && attacks[i-1].Order > attack.Order {
					return false
				}
			}
			return true
		},
		genMemberAttacks(),
		genMemberAttacks(),
		gen.IntRange(1, 50),
	))

	// Property: with all attacker tags on the roster, per-member counters sum
	// to the side totals
	properties.Property("member attack counters sum to side totals", prop.ForAll(
		func(clanSpecs, opponentSpecs [][]attackSpec, teamSize int) bool {
			war := buildWar(clanSpecs, opponentSpecs, teamSize)
			warTimeline, err := ComputeTimeline(war)
			if err != nil {
				return false
			}
			final := warTimeline[len(warTimeline)-1]

			clanUsed, opponentUsed := 0, 0
			for _, stat := range final.ClanMembers {
				clanUsed += stat.AttacksUsed
			}
			for _, stat := range final.OpponentMembers {
				opponentUsed += stat.AttacksUsed
			}
			return clanUsed == final.ClanAttacksUsed && opponentUsed == final.OpponentAttacksUsed
		},
		genMemberAttacks(),
		genMemberAttacks(),
		gen.IntRange(1, 50),
	))

	// Property: the fold never mutates already-emitted snapshots
	properties.Property("earlier snapshots are unaffected by later attacks", prop.ForAll(
		func(clanSpecs, opponentSpecs [][]attackSpec, teamSize int) bool {
			war := buildWar(clanSpecs, opponentSpecs, teamSize)
			warTimeline, err := ComputeTimeline(war)
			if err != nil {
				return false
			}
			initial := warTimeline[0]
			for _, stat := range initial.ClanMembers {
				if stat.AttacksUsed != 0 || stat.DefensesUsed != 0 {
					return false
				}
			}
			for _, stat := range initial.OpponentMembers {
				if stat.AttacksUsed != 0 || stat.DefensesUsed != 0 {
					return false
				}
			}
			return initial.ClanStars == 0 && initial.OpponentStars == 0
		},
		genMemberAttacks(),
		genMemberAttacks(),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}
