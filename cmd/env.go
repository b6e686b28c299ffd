package cmd

import (
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/config"
	"github.com/poliorcetics/seven-families/internal/errmsg"
	"github.com/poliorcetics/seven-families/internal/icons"
	"github.com/poliorcetics/seven-families/internal/logging"
	"github.com/poliorcetics/seven-families/internal/player"
	"github.com/poliorcetics/seven-families/internal/session"
)

// env is what every command needs: settings, catalog and a log.
type env struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	logger  zerolog.Logger
	logFile io.Closer
	notices []string // non-fatal startup problems
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	paths := config.DefaultPaths()
	if extra, _ := cmd.Flags().GetString("config"); extra != "" {
		paths = append(paths, extra)
	}
	cfg, err := config.LoadFrom(paths...)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.CatalogFile = v
	}
	if v, _ := cmd.Flags().GetString("assets"); v != "" {
		cfg.AssetsDir = v
	}

	e := &env{cfg: cfg}
	icons.Init(cfg.Icons)

	e.logger, e.logFile, err = logging.OpenOrDiscard(cfg.GetLogFile())
	if err != nil {
		e.notices = append(e.notices, errmsg.FormatWith(errmsg.OpLogOpen, cfg.GetLogFile(), err))
	}

	e.catalog = catalog.Default()
	if cfg.CatalogFile != "" {
		c, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			e.logFile.Close()
			return nil, errors.New(errmsg.FormatWith(errmsg.OpCatalogLoad, cfg.CatalogFile, err))
		}
		e.catalog = c
	}
	return e, nil
}

func (e *env) Close() error {
	return e.logFile.Close()
}

// timer returns the default delay and the bounds from the config.
func (e *env) timer() (time.Duration, session.Bounds) {
	def, lo, hi := e.cfg.GetTimerConfig().Durations()
	return def, session.Bounds{Min: lo, Max: hi}
}

// openAudio opens the sound output. When audio is disabled, or the output
// cannot be opened, clips are "played" silently for a fixed length.
func (e *env) openAudio(forceSilent bool) player.Interface {
	audio := e.cfg.GetAudioConfig()
	if forceSilent || !*audio.Enabled {
		return player.NewSilent(audio.SilentClip())
	}

	p, err := player.New(e.cfg.AssetsDir, e.logger)
	if err != nil {
		msg := errmsg.Format(errmsg.OpAudioInit, err)
		e.logger.Error().Err(err).Msg(string(errmsg.OpAudioInit))
		e.notices = append(e.notices, msg)
		return player.NewSilent(audio.SilentClip())
	}
	p.SetVolume(*audio.Volume)
	return p
}

func categoryIDs(names []string) []catalog.CategoryID {
	ids := make([]catalog.CategoryID, len(names))
	for i, n := range names {
		ids[i] = catalog.CategoryID(n)
	}
	return ids
}
