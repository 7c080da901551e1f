package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/storage"
)

var flagSessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions [session-id]",
	Short: "List persisted adaptation sessions",
	Long: `Without arguments, list recent sessions from the history database.
With a session id, show every difficulty adjustment recorded for that
session, including the classified performance and the resulting
profile.

Examples:
  skyrunner sessions
  skyrunner sessions --limit 25
  skyrunner sessions 3f1a0c2e-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Number of sessions to list")
}

func runSessions(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 1 {
		showAdjustments(store, args[0])
		return
	}

	sessions, err := store.RecentSessions(flagSessionsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skyrunner play' to record the first one.")
		return
	}

	fmt.Printf("  %-36s  %-16s  %-7s  %s\n", "Session", "Started", "Deaths", "Adjustments")
	fmt.Printf("  %-36s  %-16s  %-7s  %s\n", "-------", "-------", "------", "-----------")
	for _, s := range sessions {
		fmt.Printf("  %-36s  %-16s  %-7d  %d\n",
			s.ID, s.StartedAt.Format("2006-01-02 15:04"), s.Deaths, s.Adjustments)
	}
}

// showAdjustments prints the adjustment history of one session.
func showAdjustments(store *storage.Store, sessionID string) {
	adjustments, err := store.Adjustments(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving adjustments: %v\n", err)
		os.Exit(1)
	}

	if len(adjustments) == 0 {
		fmt.Printf("No adjustments recorded for session %s.\n", sessionID)
		return
	}

	fmt.Printf("Adjustments for session %s\n\n", sessionID)
	for i, a := range adjustments {
		fmt.Printf("#%d  %s  performance=%s\n", i+1, a.CreatedAt.Format("2006-01-02 15:04:05"), a.Symptom)
		fmt.Printf("    %s\n", a.Profile)
	}
}
