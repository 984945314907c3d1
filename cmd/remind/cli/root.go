package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/remind/internal/search"
	"github.com/felixgeelhaar/remind/internal/speech"
)

var (
	verbose     bool
	ciMode      bool
	interactive bool
	policyPath  string
	mute        bool
	delivery    string
	listenFlag  bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "remind",
	Short: "Personal memory album and recall coach",
	Long: `Remind keeps a local photo album of personal memories: search it,
attach comments and reminders, and run guided Memory Coach recall sessions.
Everything stays on this machine.`,
}

var albumCmd = &cobra.Command{
	Use:   "album [query]",
	Short: "Browse the album, optionally filtered by a search query",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()
		photos := openCollection(s)

		query := ""
		if len(args) == 1 {
			query = args[0]
		} else if listenFlag {
			query = listenForQuery()
		} else {
			query, _ = s.Query()
		}
		if err := s.SaveQuery(query); err != nil {
			fmt.Printf("Warning: failed to remember query: %v\n", err)
		}

		results := search.Search(query, photos.All())
		if query != "" {
			fmt.Printf("Found %d moments for %q.\n\n", len(results), query)
		}
		if len(results) == 0 {
			fmt.Println("No moments matched your query.")
			return
		}
		for _, p := range results {
			title := p.Title
			if title == "" {
				title = "Memory"
			}
			fmt.Printf("%-12s %-24s [%s]  %d comments\n", p.ID, title, p.Emotion, len(p.Comments))
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show [photo-id]",
	Short: "Show one photo with its comments, reminders and summary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()
		photos := openCollection(s)

		p, ok := photos.Get(args[0])
		if !ok {
			fmt.Printf("No photo with id %s\n", args[0])
			os.Exit(1)
		}
		fmt.Printf("%s\n%s\nEmotion: %s\nTags: %s\n", p.Title, p.URL, p.Emotion, strings.Join(p.Tags, ", "))
		if len(p.Comments) > 0 {
			fmt.Println("\nComments:")
			for _, c := range p.Comments {
				fmt.Printf("  - %s\n", c)
			}
		}
		if len(p.Reminders) > 0 {
			fmt.Println("\nReminders:")
			for _, r := range p.Reminders {
				fmt.Printf("  - %s — %s\n", r.TimeLabel, r.Note)
			}
		}
		if p.AISummary != "" {
			fmt.Printf("\nInsight: %s\n", p.AISummary)
		}
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment [photo-id] [text...]",
	Short: "Add a comment to a photo",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()
		photos := openCollection(s)

		p, ok := photos.Get(args[0])
		if !ok {
			fmt.Printf("No photo with id %s\n", args[0])
			os.Exit(1)
		}
		p.Comments = append(p.Comments, strings.Join(args[1:], " "))
		if err := photos.Update(p); err != nil {
			fmt.Printf("Failed to save comment: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Comment added.")
	},
}

var importCmd = &cobra.Command{
	Use:   "import [glob...]",
	Short: "Import image files matching glob patterns into the album",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()
		photos := openCollection(s)

		added, err := photos.ImportGlobs(args, newClassifier())
		if err != nil {
			fmt.Printf("Import failed after %d photos: %v\n", added, err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d photos.\n", added)
	},
}

func listenForQuery() string {
	// No recognition engine is wired on this platform; degrade to a notice.
	var rec speech.Recognizer = speech.NullRecognizer{}
	transcripts, err := rec.Listen(context.Background())
	if err != nil {
		fmt.Println("Speech recognition not supported here.")
		return ""
	}
	final := ""
	for tr := range transcripts {
		if tr.Final {
			final = tr.Text
		}
	}
	if final == "" {
		fmt.Println("No speech captured; showing the full album.")
	}
	return final
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(albumCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(commentCmd)
	RootCmd.AddCommand(importCmd)
	albumCmd.Flags().BoolVar(&listenFlag, "listen", false, "Capture the query by voice instead of typing")
}
