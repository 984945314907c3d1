package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/remind/internal/coach"
	"github.com/felixgeelhaar/remind/internal/observe"
	"github.com/felixgeelhaar/remind/internal/ui/tui"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Run a guided Memory Coach recall session",
	Run: func(cmd *cobra.Command, args []string) {
		runCoachSession()
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer [photo-id] [answer...]",
	Short: "Answer the next coaching prompt for one photo",
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

		// The next unanswered prompt in the fixed sequence.
		idx := len(p.Answers)
		if idx >= len(coach.DefaultQuestions) {
			idx = len(coach.DefaultQuestions) - 1
		}
		prompt := coach.DefaultQuestions[idx]

		answer := ""
		for _, a := range args[1:] {
			if answer != "" {
				answer += " "
			}
			answer += a
		}

		updated, feedback, err := coach.RecordAnswer(cmd.Context(), photos, summaryStrategy(s), p.ID, prompt, answer, time.Now())
		if err != nil {
			fmt.Printf("Failed to record answer: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n  %s\n%s\n", prompt, answer, feedback)
		if updated.AISummary != "" {
			fmt.Printf("Insight: %s\n", updated.AISummary)
		}
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List past Memory Coach sessions",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		clear, _ := cmd.Flags().GetBool("clear")
		if clear {
			if err := s.ClearSessions(); err != nil {
				fmt.Printf("Failed to clear sessions: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Sessions cleared.")
			return
		}

		sessions, err := s.Sessions()
		if err != nil {
			fmt.Printf("Failed to load sessions: %v\n", err)
			os.Exit(1)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return
		}
		for i, sess := range sessions {
			fmt.Printf("Session %d — %s (%d answers)\n", i+1, sess.StartedAt.Format("Mon, Jan 2 2006 3:04 PM"), len(sess.Entries))
			for _, e := range sess.Entries {
				fmt.Printf("  %s: %s\n", e.PhotoTitle, e.Answer)
			}
		}
	},
}

var premiumCmd = &cobra.Command{
	Use:   "premium [unlock]",
	Short: "Show or unlock the premium coach features",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		if len(args) == 1 && args[0] == "unlock" {
			if err := s.SetPremium(true); err != nil {
				fmt.Printf("Failed to save premium flag: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Premium unlocked.")
			return
		}
		on, _ := s.Premium()
		fmt.Println("Premium:", strconv.FormatBool(on))
	},
}

func runCoachSession() {
	var obs *observe.Observer
	if ciMode {
		obs = observe.NewJSON(os.Stdout, verbose)
	} else {
		obs = observe.New(os.Stdout, verbose)
	}
	defer obs.Close()

	s := getStore()
	defer s.Close()

	premium, _ := s.Premium()
	if !premium {
		fmt.Println("Memory Coach is a premium feature. Run: remind premium unlock")
		os.Exit(1)
	}

	photos := openCollection(s)

	policy := coach.DefaultPolicy
	if policyPath != "" {
		loaded, err := coach.LoadPolicy(policyPath)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to load session policy")
		}
		policy = *loaded
	}

	if interactive {
		model := tui.NewCoachModel("Memory Coach", policy.MaxPhotos*len(policy.Questions))
		program := tea.NewProgram(model)
		u := tui.NewTUI(program)

		go func() {
			runner := NewRunner(obs, s, photos, policy, u)
			_ = runner.RunInteractive(program)
		}()

		if _, err := program.Run(); err != nil {
			fmt.Printf("Alas, there's been an error: %v\n", err)
			os.Exit(1)
		}
	} else {
		runner := NewRunner(obs, s, photos, policy, nil)
		if err := runner.Run(); err != nil {
			os.Exit(1)
		}
	}
}

func init() {
	RootCmd.AddCommand(coachCmd)
	RootCmd.AddCommand(answerCmd)
	RootCmd.AddCommand(sessionsCmd)
	RootCmd.AddCommand(premiumCmd)
	coachCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	coachCmd.Flags().BoolVar(&ciMode, "ci", false, "JSON log output, non-interactive")
	coachCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Start interactive TUI")
	coachCmd.Flags().StringVar(&policyPath, "policy", "", "Session policy file (.yaml or .json)")
	coachCmd.Flags().BoolVar(&mute, "mute", false, "Disable narration")
	coachCmd.Flags().StringVar(&delivery, "delivery", "", "Narration pacing: single, chunked, wordByWord (default: speech.delivery config)")
	sessionsCmd.Flags().Bool("clear", false, "Delete all stored sessions")
}
