package timeline

import (
	"errors"
	"testing"

	"clash_war_timeline/internal/app"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// rawAttack builds a fully-populated raw attack record for tests
func rawAttack(attackerTag, defenderTag string, stars int, destruction float64, order int) app.RawAttack {
	return app.RawAttack{
		AttackerTag:           attackerTag,
		DefenderTag:           defenderTag,
		Stars:                 intPtr(stars),
		DestructionPercentage: floatPtr(destruction),
		Order:                 intPtr(order),
	}
}

func TestExtractAttacks_MergesAndSortsBothSides(t *testing.T) {
	war := &app.WarData{
		TeamSize: 2,
		Clan: app.Roster{
			Tag: "#CLAN",
			Members: []app.Member{
				{Tag: "#C1", Attacks: []app.RawAttack{rawAttack("#C1", "#O1", 3, 100, 3)}},
				{Tag: "#C2", Attacks: []app.RawAttack{rawAttack("#C2", "#O2", 2, 80, 1)}},
			},
		},
		Opponent: app.Roster{
			Tag: "#OPP",
			Members: []app.Member{
				{Tag: "#O1", Attacks: []app.RawAttack{rawAttack("#O1", "#C1", 1, 50, 2)}},
				{Tag: "#O2"},
			},
		},
	}

	attacks, err := ExtractAttacks(war)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(attacks) != 3 {
		t.Fatalf("Expected 3 attacks, got %d", len(attacks))
	}

	for i, expected := range []struct {
		order int
		side  app.Side
	}{
		{1, app.SideClan},
		{2, app.SideOpponent},
		{3, app.SideClan},
	} {
		if attacks[i].Order != expected.order {
			t.Errorf("Attack %d: expected order %d, got %d", i, expected.order, attacks[i].Order)
		}
		if attacks[i].Side != expected.side {
			t.Errorf("Attack %d: expected side %s, got %s", i, expected.side, attacks[i].Side)
		}
	}
}

func TestExtractAttacks_EqualOrderKeepsClanFirst(t *testing.T) {
	// Ties are not expected upstream, but when they occur the stable sort
	// must keep clan attacks ahead of opponent attacks.
	war := &app.WarData{
		TeamSize: 1,
		Clan: app.Roster{
			Members: []app.Member{
				{Tag: "#C1", Attacks: []app.RawAttack{rawAttack("#C1", "#O1", 1, 10, 5)}},
			},
		},
		Opponent: app.Roster{
			Members: []app.Member{
				{Tag: "#O1", Attacks: []app.RawAttack{rawAttack("#O1", "#C1", 2, 20, 5)}},
			},
		},
	}

	attacks, err := ExtractAttacks(war)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if attacks[0].Side != app.SideClan || attacks[1].Side != app.SideOpponent {
		t.Errorf("Expected clan attack before opponent attack on equal order, got %s then %s",
			attacks[0].Side, attacks[1].Side)
	}
}

func TestExtractAttacks_DurationDefaultsToZero(t *testing.T) {
	attack := rawAttack("#C1", "#O1", 3, 100, 1)
	attack.Duration = nil

	war := &app.WarData{
		TeamSize: 1,
		Clan: app.Roster{
			Members: []app.Member{{Tag: "#C1", Attacks: []app.RawAttack{attack}}},
		},
	}

	attacks, err := ExtractAttacks(war)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if attacks[0].Duration != 0 {
		t.Errorf("Expected duration to default to 0, got %d", attacks[0].Duration)
	}

	withDuration := rawAttack("#C1", "#O1", 3, 100, 1)
	withDuration.Duration = intPtr(45)
	war.Clan.Members[0].Attacks = []app.RawAttack{withDuration}

	attacks, err = ExtractAttacks(war)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if attacks[0].Duration != 45 {
		t.Errorf("Expected duration 45, got %d", attacks[0].Duration)
	}
}

func TestExtractAttacks_MissingMandatoryFields(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*app.RawAttack)
		expected string
	}{
		{"MissingAttackerTag", func(a *app.RawAttack) { a.AttackerTag = "" }, "attackerTag"},
		{"MissingDefenderTag", func(a *app.RawAttack) { a.DefenderTag = "" }, "defenderTag"},
		{"MissingStars", func(a *app.RawAttack) { a.Stars = nil }, "stars"},
		{"MissingDestruction", func(a *app.RawAttack) { a.DestructionPercentage = nil }, "destructionPercentage"},
		{"MissingOrder", func(a *app.RawAttack) { a.Order = nil }, "order"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attack := rawAttack("#O1", "#C1", 2, 75, 4)
			tc.mutate(&attack)

			war := &app.WarData{
				TeamSize: 1,
				Opponent: app.Roster{
					Members: []app.Member{{Tag: "#O1", Attacks: []app.RawAttack{attack}}},
				},
			}

			_, err := ExtractAttacks(war)
			if err == nil {
				t.Fatal("Expected malformed attack error, got nil")
			}

			var malformed *MalformedAttackError
			if !errors.As(err, &malformed) {
				t.Fatalf("Expected MalformedAttackError, got %T: %v", err, err)
			}

			if malformed.Field != tc.expected {
				t.Errorf("Expected missing field %q, got %q", tc.expected, malformed.Field)
			}
			if malformed.Side != app.SideOpponent {
				t.Errorf("Expected side opponent, got %s", malformed.Side)
			}
			if malformed.MemberTag != "#O1" {
				t.Errorf("Expected member tag '#O1', got %q", malformed.MemberTag)
			}
		})
	}
}

func TestExtractAttacks_ZeroStarsAndZeroOrderAreValid(t *testing.T) {
	// Zero values must not be mistaken for missing fields.
	war := &app.WarData{
		TeamSize: 1,
		Clan: app.Roster{
			Members: []app.Member{
				{Tag: "#C1", Attacks: []app.RawAttack{rawAttack("#C1", "#O1", 0, 0, 0)}},
			},
		},
	}

	attacks, err := ExtractAttacks(war)
	if err != nil {
		t.Fatalf("Expected no error for zero-valued fields, got %v", err)
	}

	if attacks[0].Stars != 0 || attacks[0].DestructionPercentage != 0 || attacks[0].Order != 0 {
		t.Errorf("Zero-valued fields not preserved: %+v", attacks[0])
	}
}

func TestExtractAttacks_EmptyWar(t *testing.T) {
	war := &app.WarData{
		TeamSize: 5,
		Clan:     app.Roster{Members: []app.Member{{Tag: "#C1"}, {Tag: "#C2"}}},
		Opponent: app.Roster{Members: []app.Member{{Tag: "#O1"}}},
	}

	attacks, err := ExtractAttacks(war)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(attacks) != 0 {
		t.Errorf("Expected no attacks, got %d", len(attacks))
	}
}
