package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/player"
)

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "Liste les familles et vérifie leurs fichiers audio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			return listFamilies(cmd.OutOrStdout(), e.catalog, e.cfg.AssetsDir)
		},
	}
}

// clipStats reports how many clips of cat are playable and their size.
type clipStats struct {
	present int
	missing int
	bytes   uint64
}

func (s *clipStats) add(assetsDir string, clip catalog.Clip) {
	path := filepath.Join(assetsDir, string(clip))
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || !player.Supported(path) {
		s.missing++
		return
	}
	s.present++
	s.bytes += uint64(info.Size())
}

func listFamilies(out io.Writer, c *catalog.Catalog, assetsDir string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFAMILLE\tBIT\tPHRASES\tCLIPS\tTAILLE")

	var total clipStats
	for _, cat := range c.Categories() {
		var st clipStats
		st.add(assetsDir, cat.Clip)
		for _, item := range cat.Items {
			st.add(assetsDir, item.ItemClip)
		}
		total.present += st.present
		total.missing += st.missing
		total.bytes += st.bytes

		clips := fmt.Sprintf("%d/%d", st.present, st.present+st.missing)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n", cat.ID, cat.Name, cat.Bit, len(cat.Items), clips, humanize.Bytes(st.bytes))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if total.missing > 0 {
		fmt.Fprintf(out, "\n%d fichiers audio manquants dans %s\n", total.missing, assetsDir)
	}
	return nil
}
