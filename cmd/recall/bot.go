package main

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/recall-bot/internal/delivery/telegram"
	"github.com/aliskhannn/recall-bot/internal/service"
	"github.com/aliskhannn/recall-bot/internal/storage"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Serve reviews to the owner over Telegram",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.cfg.Telegram.Validate(); err != nil {
			return err
		}

		scheduler, err := a.newScheduler(ctx)
		if err != nil && !errors.Is(err, service.ErrStoreUnavailable) {
			return err
		}

		bot, err := tgbotapi.NewBotAPI(a.cfg.Telegram.APIToken)
		if err != nil {
			return fmt.Errorf("init telegram bot: %w", err)
		}
		bot.Debug = a.cfg.Env == "local"
		a.logger.Info("authorized on account", zap.String("username", bot.Self.UserName))

		handler := telegram.NewHandler(
			bot,
			a.logger,
			scheduler,
			service.NewAnswerChecker(),
			storage.NewCardStorage(),
			storage.NewReminderStorage(),
			a.cfg.Telegram.OwnerID,
		)
		if err := handler.RegisterCommands(); err != nil {
			a.logger.Warn("failed to set bot commands", zap.Error(err))
		}

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return handler.Run(gctx)
		})

		if a.cfg.Reminder.Enabled {
			reminders := service.NewReminderService(scheduler, a.cfg.Reminder.Schedule, a.logger)
			reminders.SetNotifier(handler)

			g.Go(func() error {
				return reminders.Start(gctx)
			})
		}

		err = g.Wait()

		// Progress that could not be saved during the run gets one more try.
		if scheduler.Dirty() {
			if ferr := scheduler.Flush(context.WithoutCancel(ctx)); ferr != nil {
				a.logger.Error("unsaved progress lost on shutdown", zap.Error(ferr))
			}
		}

		a.logger.Info("shutdown complete")
		return err
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
