package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/xr-pong/internal/platform/tui"
	"github.com/vovakirdan/xr-pong/internal/storage"
)

var flagResetUser string

var resetAnchorCmd = &cobra.Command{
	Use:   "reset-anchor",
	Short: "Forget the persisted board placement",
	Long: `Delete the stored anchor so the next anchor-variant session starts
by looking for a surface again.

Examples:
  xrpong reset-anchor
  xrpong reset-anchor --user alice   # Placement of SSH user alice`,
	Args: cobra.NoArgs,
	Run:  runResetAnchor,
}

func init() {
	resetAnchorCmd.Flags().StringVar(&flagResetUser, "user", "", "SSH user whose placement to forget")
}

func runResetAnchor(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fatalf("%v", err)
	}
	defer store.Close()

	key := tui.SessionAnchorKey(cfg.Placement.AnchorKey, flagResetUser)
	if _, ok, err := store.Get(key); err != nil {
		fatalf("%v", err)
	} else if !ok {
		fmt.Printf("No placement stored under %q.\n", key)
		return
	}

	if err := store.Delete(key); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Placement %q forgotten.\n", key)
}
