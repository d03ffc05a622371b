package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	cfg "pedro.to/valgo/config"
	"pedro.to/valgo/utils"
	"pedro.to/valgo/valorant"
	"pedro.to/valgo/webserver"
)

func main() {
	l := log.With().Str("ctx", "web").Logger()
	l.Info().Msgf("starting web server (v%s)", cfg.Version)
	if !cfg.IsProd {
		l.Warn().Msg("[!] running web server in dev mode")
	}

	client, err := valorant.New(&valorant.Opts{
		Username:      cfg.RiotUsername,
		Password:      cfg.RiotPassword,
		Affinity:      cfg.RegionAffinity,
		ClientVersion: cfg.ClientVersion,
		Timeout:       time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	})
	if err != nil {
		l.Panic().Err(err).Msg("")
	}
	if err := client.Login(context.Background()); err != nil {
		l.Panic().Err(err).Msg("could not authenticate")
	}

	websv := webserver.New(client)
	go func() {
		if err := websv.StartAndListen(cfg.WebserverPort); err != nil {
			l.Panic().Err(err).Msg("")
		}
	}()
	sig := utils.WaitInterrupt()
	l.Info().Msgf("termination signal received [%s]. Attempting to gracefully shutdown...", sig)
	l.Info().Msg("stopping web server")
	if err := websv.Shutdown(); err != nil {
		l.Panic().Err(err).Msg("")
	}
}

func init() {
	cfg.Setup()
}
