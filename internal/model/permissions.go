package model

// Permission is a single capability the current player may hold
type Permission uint8

const (
	PermRollDice Permission = 1 << iota
	PermMovePawn
	PermAccuse
	PermEndTurn
)

// String returns the permission's wire name
func (p Permission) String() string {
	switch p {
	case PermRollDice:
		return "rollDice"
	case PermMovePawn:
		return "movePawn"
	case PermAccuse:
		return "accuse"
	case PermEndTurn:
		return "endTurn"
	default:
		return "unknown"
	}
}

// Permissions is a set of capabilities. Only the four defined bits are meaningful.
type Permissions uint8

// DefaultPermissions is the start-of-turn capability set
const DefaultPermissions = Permissions(PermRollDice) | Permissions(PermAccuse)

// Has reports whether the set contains the permission
func (ps Permissions) Has(p Permission) bool {
	return ps&Permissions(p) != 0
}

// With returns the set with the permission added
func (ps Permissions) With(p Permission) Permissions {
	return ps | Permissions(p)
}

// Without returns the set with the permission removed
func (ps Permissions) Without(p Permission) Permissions {
	return ps &^ Permissions(p)
}

// Flags projects the set onto the four booleans the presentation layer reads
func (ps Permissions) Flags() PermissionFlags {
	return PermissionFlags{
		CanRollDice:   ps.Has(PermRollDice),
		CanMovePawn:   ps.Has(PermMovePawn),
		CanAccuse:     ps.Has(PermAccuse),
		ShouldEndTurn: ps.Has(PermEndTurn),
	}
}

// PermissionFlags is the boolean view of a permission set
type PermissionFlags struct {
	CanRollDice   bool `json:"canRollDice"`
	CanMovePawn   bool `json:"canMovePawn"`
	CanAccuse     bool `json:"canAccuse"`
	ShouldEndTurn bool `json:"shouldEndTurn"`
}
