// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/da-ros/researchpal/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the research assistant",
	Long: `Chat sends messages to the research assistant. With a message argument it
sends one turn and prints the reply. Without arguments it starts an
interactive conversation read line by line from stdin.

Interactive commands: /history prints the conversation so far, /new starts a
fresh conversation, /quit exits.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	session := chat.NewSession(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) > 0 {
		reply, err := session.Send(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("%w (is the server running at %s?)", err, client.BaseURL())
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
		return nil
	}

	return chatLoop(ctx, session, client.BaseURL(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// chatLoop runs the interactive conversation until EOF, /quit, or ctx ends.
// serverURL is named in the hint printed when a message cannot be sent.
func chatLoop(ctx context.Context, session *chat.Session, serverURL string, in io.Reader, out, errw io.Writer) error {
	fmt.Fprintf(out, "assistant> %s\n", chat.Greeting)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/history":
			for _, m := range session.Transcript() {
				fmt.Fprintf(out, "[%s] %s> %s\n", m.Time.Format("15:04"), m.Sender, m.Content)
			}
			continue
		case "/new":
			session.Reset()
			fmt.Fprintf(out, "assistant> %s\n", chat.Greeting)
			continue
		}

		reply, err := session.Send(ctx, line)
		var sendErr *chat.SendError
		switch {
		case err == nil:
			fmt.Fprintf(out, "assistant> %s\n", reply.Content)
		case errors.As(err, &sendErr):
			fmt.Fprintf(errw, "warning: %v\n", err)
			fmt.Fprintf(errw, "your message was not sent: %s\n", sendErr.Input)
			fmt.Fprintf(errw, "is the server running at %s?\n", serverURL)
		default:
			fmt.Fprintf(errw, "warning: %v\n", err)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
