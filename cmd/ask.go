package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/DachengChen/askdb/applog"
	"github.com/DachengChen/askdb/chat"
	"github.com/DachengChen/askdb/tui"
	"github.com/spf13/cobra"
)

var (
	askJSON  bool
	askWidth int
)

var askCmd = &cobra.Command{
	Use:   "ask QUESTION...",
	Short: "Send one question to the agent and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer applog.Close()

		question := strings.Join(args, " ")
		msg, ok := chat.NewSession().Dispatch(cmd.Context(), c, question)
		if !ok {
			return errors.New("question is empty")
		}
		if msg.Payload == nil && msg.Content == chat.ConnectionErrorText {
			return fmt.Errorf("%s (%s)", chat.ConnectionErrorText, c.BaseURL())
		}

		out := cmd.OutOrStdout()
		if askJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(msg.Payload)
		}
		fmt.Fprintln(out, tui.RenderMessage(msg, askWidth))
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw agent payload as JSON")
	askCmd.Flags().IntVar(&askWidth, "width", terminalWidth(), "render width in columns")
}

// terminalWidth reads $COLUMNS, falling back to 80.
func terminalWidth() int {
	var w int
	if _, err := fmt.Sscanf(os.Getenv("COLUMNS"), "%d", &w); err != nil || w <= 0 {
		return 80
	}
	return w
}
