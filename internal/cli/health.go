package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health and lobby occupancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			// An unavailable server still answers with a status body
			if err := client.Get("/api/v1/health", &result); err != nil {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
					return err
				}
				result.Status = "unavailable"
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			if result.Status != "ok" {
				return errors.New("server unavailable")
			}
			return nil
		},
	}
}
