package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"newsdesk/pkg/logger"
	"newsdesk/pkg/queue"

	"github.com/spf13/cobra"
)

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Post events published by the API",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Print post events from RabbitMQ until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			defer log.Sync()

			client, err := queue.NewRabbitMQClient(c.cfg, log)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = client.ConsumePostEvents(ctx, func(event queue.PostEvent) error {
				return c.print(event)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	})
	return cmd
}
