package game

import (
	"strings"
	"testing"

	"riddle-rush/internal/domain"
)

func TestValidatePlayerName(t *testing.T) {
	existing := []domain.Player{{Name: "Alice"}, {Name: "Bob"}}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "Carol"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "exactly 20 chars", input: strings.Repeat("a", 20)},
		{name: "21 chars", input: strings.Repeat("a", 21), wantErr: true},
		{name: "duplicate", input: "Alice", wantErr: true},
		{name: "duplicate other case", input: "ALICE", wantErr: true},
		{name: "duplicate after trim", input: "  bob  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlayerName(tt.input, existing)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlayerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestRandomLetter(t *testing.T) {
	for i := 0; i < 100; i++ {
		letter := randomLetter()
		if len(letter) != 1 {
			t.Fatalf("randomLetter() = %q, want single character", letter)
		}
		if letter < "a" || letter > "z" {
			t.Fatalf("randomLetter() = %q, want lowercase a-z", letter)
		}
	}
}

func TestCurrentTurnPlayer(t *testing.T) {
	players := []domain.Player{
		{ID: "1", Name: "Alice", HasSubmitted: true},
		{ID: "2", Name: "Bob"},
		{ID: "3", Name: "Carol"},
	}

	got := currentTurnPlayer(players)
	if got == nil || got.ID != "2" {
		t.Errorf("currentTurnPlayer = %+v, want Bob", got)
	}

	players[1].HasSubmitted = true
	players[2].HasSubmitted = true
	if got := currentTurnPlayer(players); got != nil {
		t.Errorf("currentTurnPlayer = %+v, want nil when all submitted", got)
	}

	if got := currentTurnPlayer(nil); got != nil {
		t.Errorf("currentTurnPlayer(nil) = %+v, want nil", got)
	}
}

func TestAllSubmitted(t *testing.T) {
	tests := []struct {
		name    string
		players []domain.Player
		want    bool
	}{
		{name: "empty list", players: nil, want: false},
		{name: "none submitted", players: []domain.Player{{}, {}}, want: false},
		{name: "some submitted", players: []domain.Player{{HasSubmitted: true}, {}}, want: false},
		{name: "all submitted", players: []domain.Player{{HasSubmitted: true}, {HasSubmitted: true}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := allSubmitted(tt.players); got != tt.want {
				t.Errorf("allSubmitted = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankPlayersScoreConservation(t *testing.T) {
	players := []domain.Player{
		{ID: "1", Name: "Alice", TotalScore: 15},
		{ID: "2", Name: "Bob", TotalScore: 20},
		{ID: "3", Name: "Carol", TotalScore: 11},
	}

	board := rankPlayers(players, domain.StatusActive)

	sumPlayers, sumBoard := 0, 0
	for _, p := range players {
		sumPlayers += p.TotalScore
	}
	for _, row := range board {
		sumBoard += row.TotalScore
	}
	if sumPlayers != sumBoard {
		t.Errorf("leaderboard total %d != player total %d", sumBoard, sumPlayers)
	}
	if len(board) != len(players) {
		t.Errorf("leaderboard has %d rows, want %d", len(board), len(players))
	}

	for i := 1; i < len(board); i++ {
		if board[i].TotalScore > board[i-1].TotalScore {
			t.Errorf("leaderboard not descending at %d: %d > %d", i, board[i].TotalScore, board[i-1].TotalScore)
		}
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name      string
		start     int64
		end       int64
		nowMillis int64
		want      int64
	}{
		{name: "finished session", start: 1000, end: 4000, nowMillis: 9000, want: 3000},
		{name: "running session uses now", start: 1000, end: 0, nowMillis: 6000, want: 5000},
		{name: "clock skew clamps to zero", start: 5000, end: 2000, nowMillis: 9000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.start, tt.end, tt.nowMillis); got != tt.want {
				t.Errorf("Duration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{millis: 45000, want: "45s"},
		{millis: 200000, want: "3m 20s"},
		{millis: 0, want: "0s"},
		{millis: 60000, want: "1m 0s"},
		{millis: 59999, want: "59s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.millis); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.millis, got, tt.want)
			}
		})
	}
}
