package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/remind/internal/album"
	"github.com/felixgeelhaar/remind/internal/coach"
	"github.com/felixgeelhaar/remind/internal/timeparse"
)

var rememberCmd = &cobra.Command{
	Use:   "remember",
	Short: "Manage reminders and memory prompts",
}

var rememberAddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Save a reminder, parsing times like 'in 2 hours' or 'tomorrow at 8 pm'",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		text := strings.Join(args, " ")
		now := time.Now()

		r := album.Reminder{Note: text, At: now}
		if when, ok := timeparse.Parse(text, now); ok {
			r.TimeISO = when.Format(time.RFC3339)
			r.TimeLabel = timeparse.Format(when)
		} else {
			// Unparseable times are kept as plain notes.
			r.TimeLabel = text
		}

		photoID, _ := cmd.Flags().GetString("photo")
		if photoID != "" {
			photos := openCollection(s)
			if p, ok := photos.Get(photoID); ok {
				ref := p.Ref()
				r.Photo = &ref
			}
		}

		if err := s.SaveReminder(r); err != nil {
			fmt.Printf("Failed to save reminder: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reminder set for %s\n", r.TimeLabel)
	},
}

var rememberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reminders, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		reminders, err := s.Reminders()
		if err != nil {
			fmt.Printf("Failed to load reminders: %v\n", err)
			os.Exit(1)
		}
		if len(reminders) == 0 {
			fmt.Println("No reminders yet — save a prompt or add one.")
			return
		}
		for i, r := range reminders {
			line := r.Note
			if r.TimeLabel != "" && r.TimeLabel != r.Note {
				line = r.TimeLabel + " — " + r.Note
			}
			if r.Photo != nil {
				line += " (" + r.Photo.Title + ")"
			}
			fmt.Printf("%2d. %s\n", i, line)
		}
	},
}

var rememberDeleteCmd = &cobra.Command{
	Use:   "delete [index]",
	Short: "Delete a reminder by its current list index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		idx, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("Not an index: %s\n", args[0])
			os.Exit(1)
		}
		if err := s.DeleteReminder(idx); err != nil {
			fmt.Printf("Failed to delete reminder: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Reminder deleted.")
	},
}

var rememberPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Show the reflection prompts; --save N stores one as a reminder",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		saveIdx, _ := cmd.Flags().GetInt("save")
		if saveIdx < 0 {
			for i, p := range coach.ReminderPrompts {
				fmt.Printf("%d. %s\n\n", i, p)
			}
			return
		}
		if saveIdx >= len(coach.ReminderPrompts) {
			fmt.Printf("No prompt %d\n", saveIdx)
			os.Exit(1)
		}

		photos := openCollection(s)
		all := photos.All()
		r := album.Reminder{
			Note: coach.ReminderPrompts[saveIdx],
			At:   time.Now(),
		}
		// Each prompt gets a default photo so the reminder shows a visual.
		if len(all) > 0 {
			ref := all[saveIdx%len(all)].Ref()
			r.Photo = &ref
		}
		if err := s.SaveReminder(r); err != nil {
			fmt.Printf("Failed to save reminder: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Saved.")
	},
}

func init() {
	RootCmd.AddCommand(rememberCmd)
	rememberCmd.AddCommand(rememberAddCmd)
	rememberCmd.AddCommand(rememberListCmd)
	rememberCmd.AddCommand(rememberDeleteCmd)
	rememberCmd.AddCommand(rememberPromptsCmd)
	rememberAddCmd.Flags().String("photo", "", "Attach a photo snapshot by id")
	rememberPromptsCmd.Flags().Int("save", -1, "Save prompt N as a reminder")
}
