package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"missioncontrol/internal/core"
	"missioncontrol/internal/discord"
	"missioncontrol/internal/metrics"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and serve Mission Control sessions",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the guild slash commands without connecting to the gateway",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var introChannel string

var introCmd = &cobra.Command{
	Use:   "intro",
	Short: "Post the message carrying the Launch! button",
	Args:  cobra.NoArgs,
	RunE:  runIntro,
}

func init() {
	introCmd.Flags().StringVar(&introChannel, "channel", "", "Channel to post in (defaults to the layout's intro_channel)")
}

func newDiscordSession(cfg *core.Config) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	return dg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, layout, closeLog, err := setup(true)
	if err != nil {
		return err
	}
	defer closeLog()

	dg, err := newDiscordSession(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr)
		go func() {
			logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	bot := discord.NewBot(ctx, dg, cfg, layout, logger)
	dg.AddHandler(bot.OnReady)
	dg.AddHandler(bot.OnInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	logger.Info("Mission Control running", "guild", layout.GuildID, "session_timeout", cfg.SessionTimeout.String())

	<-ctx.Done()
	logger.Info("Shutting down")

	// Cancelling ctx ends every session; wait for them to release their messages.
	bot.Wait()
	return dg.Close()
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg, logger, layout, closeLog, err := setup(true)
	if err != nil {
		return err
	}
	defer closeLog()

	dg, err := newDiscordSession(cfg)
	if err != nil {
		return err
	}

	created, err := discord.RegisterCommands(dg, cfg.AppID, layout)
	if err != nil {
		return err
	}
	for _, c := range created {
		logger.Info("Registered command", "name", c.Name, "id", c.ID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %d commands in guild %s\n", len(created), layout.GuildID)
	return nil
}

func runIntro(cmd *cobra.Command, args []string) error {
	cfg, logger, layout, closeLog, err := setup(true)
	if err != nil {
		return err
	}
	defer closeLog()

	channel := introChannel
	if channel == "" {
		channel = layout.IntroChannel
	}
	if channel == "" {
		return fmt.Errorf("no intro channel: pass --channel or set intro_channel in the layout")
	}

	dg, err := newDiscordSession(cfg)
	if err != nil {
		return err
	}

	msg, err := discord.SendIntro(dg, channel)
	if err != nil {
		return err
	}
	logger.Info("Posted intro message", "channel", channel, "message", msg.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Posted intro message %s in <#%s>\n", msg.ID, channel)
	return nil
}
