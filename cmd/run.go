package cmd

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/poliorcetics/seven-families/internal/app"
	"github.com/poliorcetics/seven-families/internal/errmsg"
	"github.com/poliorcetics/seven-families/internal/mpris"
	"github.com/poliorcetics/seven-families/internal/notify"
	"github.com/poliorcetics/seven-families/internal/stderr"
)

func runApp(cmd *cobra.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	// Audio libraries write to fd 2, which would corrupt the screen.
	if err := stderr.Start(e.logger); err != nil {
		e.logger.Warn().Err(err).Msg("stderr capture")
	}
	defer stderr.Stop()

	audio := e.openAudio(false)
	defer audio.Close()

	opts := app.Options{
		Catalog:  e.catalog,
		Player:   audio,
		Selected: categoryIDs(e.cfg.Families),
		Logger:   &e.logger,
	}
	opts.Duration, opts.Bounds = e.timer()

	if e.cfg.MPRISEnabled() {
		adapter, err := mpris.New(e.cfg.AssetsDir)
		if err != nil {
			msg := errmsg.Format(errmsg.OpMPRISStart, err)
			e.logger.Warn().Err(err).Msg(string(errmsg.OpMPRISStart))
			e.notices = append(e.notices, msg)
		} else {
			defer adapter.Close()
			opts.MediaKeys = adapter
		}
	}

	if e.cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			e.logger.Warn().Err(err).Msg(string(errmsg.OpNotify))
		} else {
			opts.Notifier = n
		}
	}
	opts.Notice = strings.Join(e.notices, "\n")

	m := app.New(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
