package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mftree/internal/cache"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the report cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached reports from the cache directory",
	Long: `Clear removes the *.cache entry files from cache.dir.
Other files in that directory are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Cache.Dir == "" {
		fmt.Fprintln(out, "No cache directory configured, nothing to clear")
		return nil
	}

	removed, err := cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.DiskTTL).Purge()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	fmt.Fprintf(out, "Removed %d cached report(s) from %s\n", removed, cfg.Cache.Dir)
	return nil
}
