package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local response cache",
	Long: `Inspect and clean up the SQLite database that stores API responses.

Example:
  define cache list
  define cache delete cat
  define cache prune
  define cache clear`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached words, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <word>...",
	Short: "Remove words from the cache",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCacheDelete,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove responses older than cache.ttl",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached response",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd, cacheDeleteCmd, cachePruneCmd, cacheClearCmd)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	items, err := c.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "Cache is empty")
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(out, "%-24s %8d  %s\n", item.Word, item.Size, item.FetchedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(out, "\n%d cached words in %s\n", len(items), cfg.Cache.Path)
	return nil
}

func runCacheDelete(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	for _, word := range args {
		if err := c.Delete(cmd.Context(), word); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d words\n", len(args))
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	n, err := c.Prune(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d expired responses\n", n)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	n, err := c.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d responses\n", n)
	return nil
}
