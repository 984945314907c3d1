package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/remind/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the album snapshot as shareable JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()
		photos := openCollection(s)

		if photos.Len() == 0 {
			fmt.Println("Nothing to share yet.")
			return
		}

		snapshot := photos.Export()
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			fmt.Printf("Failed to encode snapshot: %v\n", err)
			os.Exit(1)
		}

		path := "remind-memories.json"
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			fmt.Printf("Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}

		info := &store.SharedInfo{TS: time.Now(), Method: "file"}
		if err := s.SaveSharedInfo(info); err != nil {
			fmt.Printf("Warning: failed to record share info: %v\n", err)
		}
		fmt.Printf("Shared %d memories to %s\n", len(snapshot.Photos), path)
	},
}

var unshareCmd = &cobra.Command{
	Use:   "unshare",
	Short: "Clear the last share record",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		if err := s.SaveSharedInfo(nil); err != nil {
			fmt.Printf("Failed to clear share info: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Share record cleared.")
	},
}

var sharedCmd = &cobra.Command{
	Use:   "shared",
	Short: "Show when the album was last shared",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		info, err := s.SharedInfo()
		if err != nil {
			fmt.Printf("Failed to load share info: %v\n", err)
			os.Exit(1)
		}
		if info == nil {
			fmt.Println("Not shared.")
			return
		}
		fmt.Printf("Last shared: %s (%s)\n", info.TS.Format("Mon, Jan 2 2006 3:04 PM"), info.Method)
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(unshareCmd)
	RootCmd.AddCommand(sharedCmd)
}
