package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow lobby and game changes as they happen",
		Long: `Connect to the server's event stream and print each change.

Events:
  connected  the stream is open
  lobby      someone joined or left, or the game started or was reset
  game       a turn action changed the game state

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Exit after this many events (0 follows until interrupted)")

	return cmd
}

// StreamEvent is one event as printed with --output json
type StreamEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, limit int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(cfg.ServerURL, "/")+"/api/v1/events", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if cfg.PlayerID != "" {
		req.Header.Set(PlayerIDHeader, cfg.PlayerID)
	}

	// No client timeout; the stream ends on interrupt or when the server closes it
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil {
			statusErr.API = errResp.Error
		}
		return statusErr
	}

	out := NewOutput(cfg.Output, w)
	seen := 0

	scanner := bufio.NewScanner(resp.Body)
	var event string
	var data []string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case line == "":
			if event == "" {
				continue
			}
			out.printEvent(event, strings.Join(data, "\n"))
			event, data = "", nil

			seen++
			if limit > 0 && seen >= limit {
				return nil
			}
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stream: %w", err)
	}
	return nil
}

func (o *Output) printEvent(event, data string) {
	now := time.Now()

	if o.format == "json" {
		raw := json.RawMessage(data)
		if !json.Valid(raw) {
			raw, _ = json.Marshal(data)
		}
		line, _ := json.Marshal(StreamEvent{Time: now, Event: event, Data: raw})
		fmt.Fprintln(o.w, string(line))
		return
	}

	stamp := colorInfo.Sprint(now.Format("15:04:05"))
	switch event {
	case "lobby":
		var status LobbyStatus
		if json.Unmarshal([]byte(data), &status) == nil {
			state := "waiting"
			if status.IsGameStarted {
				state = "game in progress"
			}
			fmt.Fprintf(o.w, "[%s] lobby: %d/%d players, %s\n", stamp, len(status.Members), status.MaxPlayers, state)
			return
		}
	case "game":
		var state GameState
		if json.Unmarshal([]byte(data), &state) == nil {
			action := "none"
			if state.Action != nil {
				action = *state.Action
			}
			fmt.Fprintf(o.w, "[%s] game: player %d, %s", stamp, state.CurrentPlayerID, action)
			if state.IsGameOver {
				fmt.Fprint(o.w, ", game over")
			}
			fmt.Fprintln(o.w)
			return
		}
	}
	fmt.Fprintf(o.w, "[%s] %s\n", stamp, event)
}
