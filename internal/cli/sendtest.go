package cli

import (
	"fmt"
	"os"

	"github.com/ashcraft-tech/contact-api/internal/mail"
	"github.com/ashcraft-tech/contact-api/internal/version"

	"github.com/spf13/cobra"
)

func newSendTestCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Send a sample submission through the configured mail transport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Close()

			transport, err := mail.NewTransport(cfg.ResolveTransport(), cfg.Mail)
			if err != nil {
				return err
			}

			sender := mail.Sender{
				From:     cfg.Mail.From,
				FromName: cfg.Mail.FromName,
				To:       cfg.Mail.To,
			}
			if to != "" {
				sender.To = to
			}

			host, _ := os.Hostname()
			d := mail.NewDispatcher(transport, sender, cfg.Mail.Timeout)
			err = d.Dispatch(cmd.Context(), mail.Submission{
				Name:    "contact-api",
				Email:   sender.From,
				Subject: "Transport check",
				Message: fmt.Sprintf("Test message from %s (%s) via %s.", host, version.Info(), d.TransportName()),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sent test message to %s via %s\n", sender.To, d.TransportName())
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "override CONTACT_EMAIL for this message")
	return cmd
}
