package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darch7/zenko/internal/logutil"
)

// newChatCmd sends one message through the engine and prints the
// reply, useful for smoke tests without the HTTP wrapper.
func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a single message from the console",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			eng, err := engineFromViper(logger)
			if err != nil {
				return err
			}
			userID := viper.GetString("chat.user")
			reply := eng.Handle(cmd.Context(), userID, strings.Join(args, " "))
			fmt.Println(reply)
			return nil
		},
	}

	cmd.Flags().String("user", "console", "User id to chat as.")
	_ = viper.BindPFlag("chat.user", cmd.Flags().Lookup("user"))

	return cmd
}
