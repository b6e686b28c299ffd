package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/errmsg"
	"github.com/poliorcetics/seven-families/internal/player"
	"github.com/poliorcetics/seven-families/internal/pool"
	"github.com/poliorcetics/seven-families/internal/session"
)

type playOptions struct {
	families []string
	mask     uint8
	seconds  int
	silent   bool
}

func newPlayCmd() *cobra.Command {
	var opts playOptions
	c := &cobra.Command{
		Use:   "play",
		Short: "Joue une partie sans interface",
		Long: "Joue une partie complète sans interface et affiche chaque phrase.\n" +
			"Sans --families ni --mask, toutes les familles sont jouées.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			audio := e.openAudio(opts.silent)
			defer audio.Close()
			for _, n := range e.notices {
				fmt.Fprintln(cmd.ErrOrStderr(), n)
			}
			return runPlay(cmd.Context(), cmd.OutOrStdout(), e, audio, opts, nil)
		},
	}

	c.Flags().StringSliceVarP(&opts.families, "families", "f", nil, "Families to play, by id")
	c.Flags().Uint8Var(&opts.mask, "mask", 0, "Families to play, as a bitmask")
	c.Flags().IntVarP(&opts.seconds, "duration", "d", 0, "Seconds between two items")
	c.Flags().BoolVar(&opts.silent, "silent", false, "Do not open the sound output")
	return c
}

// selection resolves the families to play. The mask wins over ids.
func (o playOptions) selection(c *catalog.Catalog) []catalog.CategoryID {
	if o.mask != 0 {
		return c.FromMask(o.mask)
	}
	return c.Normalize(categoryIDs(o.families))
}

// runPlay plays one game to the end, printing every item as it is
// announced. It returns early when ctx is canceled.
func runPlay(ctx context.Context, out io.Writer, e *env, audio player.Interface, opts playOptions, shuffler pool.Shuffler) error {
	def, bounds := e.timer()
	if opts.seconds != 0 {
		def = bounds.ClampSeconds(opts.seconds)
	}

	ids := opts.selection(e.catalog)
	p := pool.FromSelection(e.catalog, ids, shuffler)
	total := p.Len()
	if total == 0 {
		return errors.New(errmsg.Format(errmsg.OpGameStart, fmt.Errorf("no items in %v", ids)))
	}

	relay := session.NewRelay(audio)
	s := session.New(p, session.Options{
		Duration: def,
		Bounds:   bounds,
		Audio:    audio,
		Logger:   &e.logger,
	})
	relay.Attach(s)
	defer relay.Attach(nil)
	defer s.Close()

	sub := s.Subscribe()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(ctx)

	fmt.Fprintf(out, "%d phrases, %s entre deux phrases\n", total, def)
	s.Handle(session.PermissionGranted{})

	start := time.Now()
	printItem := func(ch session.StateChange) {
		cur := ch.Current
		if cur.Kind != session.KindPlaying || cur.Phase != session.PhaseItem || ch.Previous != session.KindPlaying {
			return
		}
		family := string(cur.Item.Category)
		if cat, ok := e.catalog.Category(cur.Item.Category); ok {
			family = cat.Name
		}
		fmt.Fprintf(out, "[%d/%d] %s · %s\n", total-cur.ItemsLeft, total, family, cur.Item.Name)
	}
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "Partie interrompue.")
			return nil
		case <-sub.Countdown:
		case <-sub.Done:
			return nil
		case ch := <-sub.StateChanged:
			printItem(ch)
		case <-sub.Finished:
			for drained := false; !drained; {
				select {
				case ch := <-sub.StateChanged:
					printItem(ch)
				default:
					drained = true
				}
			}
			fmt.Fprintf(out, "Jeu terminé ! %d phrases en %s\n", total, time.Since(start).Round(time.Second))
			return nil
		}
	}
}
