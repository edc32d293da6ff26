package app

// WarData represents a single war snapshot from the ClashKing API
type WarData struct {
	State            string `json:"state,omitempty"`
	TeamSize         int    `json:"teamSize"`
	AttacksPerMember int    `json:"attacksPerMember,omitempty"`
	Clan             Roster `json:"clan"`
	Opponent         Roster `json:"opponent"`
}

// Roster represents one side's membership in a war
type Roster struct {
	Tag     string   `json:"tag"`
	Name    string   `json:"name,omitempty"`
	Members []Member `json:"members"`
}

// Member represents one member of a roster, with the attacks they performed
type Member struct {
	Tag     string      `json:"tag"`
	Name    string      `json:"name,omitempty"`
	Attacks []RawAttack `json:"attacks,omitempty"`
}

// RawAttack is an attack record exactly as the API returns it.
// Mandatory numeric fields are pointers so a missing field can be told
// apart from a legitimate zero during validation.
type RawAttack struct {
	AttackerTag           string   `json:"attackerTag"`
	DefenderTag           string   `json:"defenderTag"`
	Stars                 *int     `json:"stars"`
	DestructionPercentage *float64 `json:"destructionPercentage"`
	Order                 *int     `json:"order"`
	Duration              *int     `json:"duration"`
}

// Side identifies which roster an attack originated from
type Side string

const (
	SideClan     Side = "clan"
	SideOpponent Side = "opponent"
)

// Attack is a validated attack event tagged with its originating side.
// Order is the war-wide sequence number used as the global sort key.
type Attack struct {
	Side                  Side    `json:"attacker_clan"`
	AttackerTag           string  `json:"attacker_tag"`
	DefenderTag           string  `json:"defender_tag"`
	Stars                 int     `json:"stars"`
	DestructionPercentage float64 `json:"destruction_percentage"`
	Order                 int     `json:"order"`
	Duration              int     `json:"duration"`
}

// MemberStat accumulates per-member counters during a timeline fold
type MemberStat struct {
	Tag          string `json:"tag"`
	AttacksUsed  int    `json:"attacks_used"`
	DefensesUsed int    `json:"defenses_used"`
}

// TimelineSnapshot is the cumulative war state after one attack.
// The member slices are value copies taken at fold time; later attacks
// never modify an already-emitted snapshot. LastAttack is nil only on
// the initial zero-state snapshot.
type TimelineSnapshot struct {
	Order               int          `json:"order"`
	ClanStars           int          `json:"clan_stars"`
	ClanDestruction     float64      `json:"clan_destruction"`
	ClanAttacksUsed     int          `json:"clan_attacks_used"`
	OpponentStars       int          `json:"opponent_stars"`
	OpponentDestruction float64      `json:"opponent_destruction"`
	OpponentAttacksUsed int          `json:"opponent_attacks_used"`
	ClanMembers         []MemberStat `json:"clan_members"`
	OpponentMembers     []MemberStat `json:"opponent_members"`
	LastAttack          *Attack      `json:"last_attack"`
}

// WarOption describes one selectable war for external consumers
type WarOption struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
}

// TimelineExport is the full JSON artifact published for the rendering layer
type TimelineExport struct {
	ClanTag          string             `json:"clan_tag"`
	ClanName         string             `json:"clan_name"`
	OpponentTag      string             `json:"opponent_tag"`
	OpponentName     string             `json:"opponent_name"`
	TeamSize         int                `json:"team_size"`
	AttacksPerMember int                `json:"attacks_per_member"`
	SelectedPosition int                `json:"selected_position"`
	WarsAvailable    []WarOption        `json:"wars_available"`
	WarTimeline      []TimelineSnapshot `json:"war_timeline"`
}

// SheetConfig represents configuration for a war's timeline sheet
type SheetConfig struct {
	TabName       string
	SpreadsheetID string
}
