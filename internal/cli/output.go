package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Text output colours. fatih/color turns them off when stdout is not a terminal.
var (
	colorYes  = color.New(color.FgGreen)
	colorNo   = color.New(color.FgRed)
	colorInfo = color.New(color.FgCyan)
)

// characterColors tints each character token name
var characterColors = map[string]*color.Color{
	"scarlet": color.New(color.FgRed),
	"mustard": color.New(color.FgYellow),
	"white":   color.New(color.FgWhite),
	"green":   color.New(color.FgGreen),
	"peacock": color.New(color.FgBlue),
	"plum":    color.New(color.FgMagenta),
}

func characterName(name string) string {
	if c, ok := characterColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

func (o *Output) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(o.w)
	t.SetStyle(table.StyleLight)
	return t
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinResult:
		o.printJoinResult(v)
	case LobbyStatus:
		o.printLobbyStatus(v)
	case GameState:
		o.printGameState(v)
	case PlayersInfo:
		o.printPlayersInfo(v)
	case InitialState:
		o.printInitialState(v)
	case CardsInfo:
		fmt.Fprintf(o.w, "Weapons: %s\n", strings.Join(v.Weapon, ", "))
		fmt.Fprintf(o.w, "Rooms: %s\n", strings.Join(v.Room, ", "))
		fmt.Fprintf(o.w, "Suspects: %s\n", strings.Join(v.Suspect, ", "))
	case DiceRoll:
		fmt.Fprintf(o.w, "Rolled %d + %d = %d\n", v.Dice[0], v.Dice[1], v.Dice[0]+v.Dice[1])
	case PossiblePositions:
		o.printPossiblePositions(v)
	case MoveResult:
		o.printMoveResult(v)
	case AccusationResult:
		o.printAccusationResult(v)
	case LastAccusation:
		if v.AccusationCombination == nil {
			fmt.Fprintln(o.w, "No accusation has been made")
		} else {
			fmt.Fprintf(o.w, "Last accusation: %s\n", *v.AccusationCombination)
		}
	case CharacterPositions:
		o.printCharacterPositions(v)
	case LastRoom:
		if v.Room == nil {
			fmt.Fprintln(o.w, "No room entered yet")
		} else {
			fmt.Fprintf(o.w, "Last room: %s\n", *v.Room)
		}
	case Suspicion:
		o.printSuspicion(v)
	case Disproof:
		o.printDisproof(v)
	case GameOver:
		o.printGameOver(v)
	case History:
		o.printHistory(v)
	case GameSummary:
		o.printHistory(History{Games: []GameSummary{v}})
	case HealthResult:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Position response type (matches API)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Card response type
type Card struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Combination names one card per category
type Combination struct {
	Weapon  string `json:"weapon"`
	Room    string `json:"room"`
	Suspect string `json:"suspect"`
}

func (c Combination) String() string {
	return fmt.Sprintf("%s with the %s in the %s", c.Suspect, c.Weapon, c.Room)
}

// JoinResult response type
type JoinResult struct {
	PlayerID int  `json:"playerId"`
	IsFull   bool `json:"isFull"`
}

// LobbyMember response type
type LobbyMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
}

// LobbyStatus response type
type LobbyStatus struct {
	Members       []LobbyMember `json:"members"`
	MaxPlayers    int           `json:"maxPlayers"`
	IsFull        bool          `json:"isFull"`
	IsGameStarted bool          `json:"isGameStarted"`
}

// GameState response type
type GameState struct {
	CurrentPlayerID int     `json:"currentPlayerId"`
	Action          *string `json:"action"`
	IsGameOver      bool    `json:"isGameOver"`
	IsYourTurn      bool    `json:"isYourTurn"`
}

// PlayerInfo response type
type PlayerInfo struct {
	ID                    int      `json:"id"`
	Name                  string   `json:"name"`
	Character             string   `json:"character"`
	Position              Position `json:"currentPosition"`
	IsStranded            bool     `json:"isStranded"`
	LastSuspicionPosition string   `json:"lastSuspicionPosition,omitempty"`
}

// PlayersInfo response type
type PlayersInfo struct {
	Players             []PlayerInfo `json:"players"`
	CurrentPlayerID     int          `json:"currentPlayerId"`
	StrandedPlayerIDs   []int        `json:"strandedPlayerIds"`
	DiceRollCombination [2]int       `json:"diceRollCombination"`
	IsAccusing          bool         `json:"isAccusing"`
	IsSuspecting        bool         `json:"isSuspecting"`
	CanRollDice         bool         `json:"canRollDice"`
	CanMovePawn         bool         `json:"canMovePawn"`
	CanAccuse           bool         `json:"canAccuse"`
	ShouldEndTurn       bool         `json:"shouldEndTurn"`
}

// CardsInfo response type
type CardsInfo struct {
	Weapon  []string `json:"weapon"`
	Room    []string `json:"room"`
	Suspect []string `json:"suspect"`
}

// InitialState response type
type InitialState struct {
	Players   []PlayerInfo `json:"players"`
	Cards     []Card       `json:"cards"`
	CardsInfo CardsInfo    `json:"cardsInfo"`
}

// DiceRoll response type
type DiceRoll struct {
	Dice [2]int `json:"dice"`
}

// PossiblePositions response type
type PossiblePositions struct {
	Dice      [2]int              `json:"dice"`
	Positions map[string]Position `json:"possiblePositions"`
}

// MoveResult response type
type MoveResult struct {
	IsMoved    bool   `json:"isMoved"`
	CanSuspect bool   `json:"canSuspect"`
	Room       string `json:"room"`
}

// AccusationResult response type
type AccusationResult struct {
	IsWon              bool        `json:"isWon"`
	KillingCombination Combination `json:"killingCombination"`
}

// LastAccusation response type
type LastAccusation struct {
	AccusationCombination *Combination `json:"accusationCombination"`
}

// CharacterPositions maps each character to its tile
type CharacterPositions map[string]Position

// LastRoom response type
type LastRoom struct {
	Room *string `json:"room"`
}

// Suspicion response type
type Suspicion struct {
	Combination     Combination `json:"combination"`
	SuspectorID     int         `json:"suspectorId"`
	InvalidatorID   *int        `json:"invalidatorId"`
	InvalidatedCard string      `json:"invalidatedCard"`
}

// Disproof response type
type Disproof struct {
	InvalidatedBy *int   `json:"invalidatedBy"`
	MatchingCards []Card `json:"matchingCards"`
}

// GameOver response type
type GameOver struct {
	KillingCombination Combination `json:"killingCombination"`
	IsGameWon          bool        `json:"isGameWon"`
}

// GameSummary response type
type GameSummary struct {
	ID                 string      `json:"id"`
	WinnerID           *int        `json:"winnerId"`
	KillingCombination Combination `json:"killingCombination"`
	StrandedPlayerIDs  []int       `json:"strandedPlayerIds"`
	CompletedAt        string      `json:"completedAt"`
}

// History response type
type History struct {
	Games []GameSummary `json:"games"`
}

// HealthResult response type
type HealthResult struct {
	Status        string `json:"status"`
	Players       int    `json:"players"`
	IsGameStarted bool   `json:"isGameStarted"`
}

func (o *Output) printHealth(h HealthResult) {
	if h.Status != "ok" {
		colorNo.Fprintf(o.w, "Status: %s\n", h.Status)
		return
	}
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Players in lobby: %d\n", h.Players)
	if h.IsGameStarted {
		fmt.Fprintln(o.w, "Game in progress")
	}
}

func (o *Output) printJoinResult(r JoinResult) {
	fmt.Fprintf(o.w, "Joined as player %d\n", r.PlayerID)
	if r.IsFull {
		fmt.Fprintln(o.w, "Lobby is full, the game has started")
	}
}

func (o *Output) printLobbyStatus(l LobbyStatus) {
	fmt.Fprintf(o.w, "Players (%d/%d):\n", len(l.Members), l.MaxPlayers)
	for _, m := range l.Members {
		fmt.Fprintf(o.w, "  %d. %s as %s\n", m.ID, m.Name, characterName(m.Character))
	}
	if l.IsGameStarted {
		fmt.Fprintln(o.w, "Game in progress")
	}
}

func (o *Output) printGameState(g GameState) {
	action := "none"
	if g.Action != nil {
		action = *g.Action
	}
	fmt.Fprintf(o.w, "Current player: %d\n", g.CurrentPlayerID)
	fmt.Fprintf(o.w, "Action: %s\n", action)
	if g.IsYourTurn {
		colorYes.Fprintln(o.w, "It is your turn")
	}
	if g.IsGameOver {
		fmt.Fprintln(o.w, "Game over")
	}
}

func (o *Output) printPlayersInfo(p PlayersInfo) {
	t := o.newTable()
	t.AppendHeader(table.Row{"", "ID", "Name", "Character", "Position", "Status"})
	for _, pl := range p.Players {
		marker := ""
		if pl.ID == p.CurrentPlayerID {
			marker = ">"
		}
		status := "playing"
		if pl.IsStranded {
			status = colorNo.Sprint("stranded")
		}
		t.AppendRow(table.Row{
			marker,
			pl.ID,
			pl.Name,
			characterName(pl.Character),
			fmt.Sprintf("%d,%d", pl.Position.X, pl.Position.Y),
			status,
		})
	}
	t.Render()

	var allowed []string
	if p.CanRollDice {
		allowed = append(allowed, "roll")
	}
	if p.CanMovePawn {
		allowed = append(allowed, "move")
	}
	if p.CanAccuse {
		allowed = append(allowed, "accuse")
	}
	if p.ShouldEndTurn {
		allowed = append(allowed, "end-turn")
	}
	if len(allowed) > 0 {
		colorInfo.Fprintf(o.w, "Allowed: %s\n", strings.Join(allowed, ", "))
	}
}

func (o *Output) printInitialState(s InitialState) {
	t := o.newTable()
	t.SetTitle("Your cards")
	t.AppendHeader(table.Row{"Card", "Type"})
	for _, c := range s.Cards {
		t.AppendRow(table.Row{c.Title, c.Type})
	}
	t.Render()
	fmt.Fprintf(o.w, "Players: %d\n", len(s.Players))
}

func (o *Output) printPossiblePositions(p PossiblePositions) {
	if len(p.Positions) == 0 {
		fmt.Fprintln(o.w, "No reachable tiles, end your turn")
		return
	}
	keys := make([]string, 0, len(p.Positions))
	for k := range p.Positions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(o.w, "Reachable with %d: %s\n", p.Dice[0]+p.Dice[1], strings.Join(keys, " "))
}

func (o *Output) printCharacterPositions(p CharacterPositions) {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	t := o.newTable()
	t.AppendHeader(table.Row{"Character", "Position"})
	for _, name := range names {
		t.AppendRow(table.Row{characterName(name), fmt.Sprintf("%d,%d", p[name].X, p[name].Y)})
	}
	t.Render()
}

func (o *Output) printMoveResult(m MoveResult) {
	fmt.Fprintln(o.w, "Pawn moved")
	if m.CanSuspect {
		fmt.Fprintf(o.w, "Entered the %s, you may raise a suspicion\n", m.Room)
	}
}

func (o *Output) printAccusationResult(a AccusationResult) {
	if a.IsWon {
		colorYes.Fprintf(o.w, "Correct! It was %s\n", a.KillingCombination)
		return
	}
	colorNo.Fprintln(o.w, "Wrong accusation, you are stranded")
}

func (o *Output) printSuspicion(s Suspicion) {
	fmt.Fprintf(o.w, "Player %d suspects %s\n", s.SuspectorID, s.Combination)
	if s.InvalidatorID != nil {
		fmt.Fprintf(o.w, "Disproved by player %d", *s.InvalidatorID)
		if s.InvalidatedCard != "" {
			fmt.Fprintf(o.w, " with %s", s.InvalidatedCard)
		}
		fmt.Fprintln(o.w)
	}
}

func (o *Output) printDisproof(d Disproof) {
	if d.InvalidatedBy == nil {
		fmt.Fprintln(o.w, "Nobody can disprove the suspicion")
		return
	}
	fmt.Fprintf(o.w, "Player %d must disprove\n", *d.InvalidatedBy)
	for _, c := range d.MatchingCards {
		fmt.Fprintf(o.w, "  - %s (%s)\n", c.Title, c.Type)
	}
}

func (o *Output) printGameOver(g GameOver) {
	if g.IsGameWon {
		fmt.Fprintln(o.w, "The case was solved")
	} else {
		fmt.Fprintln(o.w, "Nobody solved the case")
	}
	fmt.Fprintf(o.w, "It was %s\n", g.KillingCombination)
}

func (o *Output) printHistory(h History) {
	if len(h.Games) == 0 {
		fmt.Fprintln(o.w, "No finished games")
		return
	}

	t := o.newTable()
	t.AppendHeader(table.Row{"Game", "Completed", "Winner", "Solution"})
	for _, g := range h.Games {
		winner := "nobody"
		if g.WinnerID != nil {
			winner = fmt.Sprintf("player %d", *g.WinnerID)
		}
		t.AppendRow(table.Row{g.ID, g.CompletedAt, winner, g.KillingCombination.String()})
	}
	t.Render()
}
