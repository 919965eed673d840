package sessions

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lessonkit/lessonkit/pkg/store"
)

func openStore(c *cli.Context) (*store.Store, error) {
	if path := c.String("db"); path != "" {
		return store.OpenAt(path)
	}
	return store.Open()
}

// ListAction lists persisted extraction sessions, newest first.
func ListAction(c *cli.Context) error {
	db, err := openStore(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	sessions, err := db.ListSessions(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Printf("%-38s %-12s %-8s %-20s %s\n", "Session", "Status", "Retries", "Updated", "Source URL")
	fmt.Println(strings.Repeat("-", 110))
	for _, s := range sessions {
		fmt.Printf("%-38s %-12s %-8d %-20s %s\n",
			s.SessionID, s.Status, s.RetryCount,
			s.UpdatedAt.Format("2006-01-02 15:04:05"), s.SourceURL)
	}
	fmt.Printf("\nTotal: %d sessions\n", len(sessions))
	fmt.Printf("\nTip: Use 'lessonkit sessions show --id <session>' to see events\n")
	return nil
}

// ShowAction prints one session with its event log.
func ShowAction(c *cli.Context) error {
	sessionID := c.String("id")
	if sessionID == "" {
		return fmt.Errorf("no session provided via --id flag")
	}

	db, err := openStore(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	sess, err := db.GetSession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	fmt.Printf("Session %s\n", sess.SessionID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Source:   %s\n", sess.SourceURL)
	fmt.Printf("Status:   %s\n", sess.Status)
	fmt.Printf("Retries:  %d\n", sess.RetryCount)
	fmt.Printf("Created:  %s\n", sess.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:  %s\n", sess.UpdatedAt.Format("2006-01-02 15:04:05"))
	for k, v := range sess.Metadata {
		fmt.Printf("Meta:     %s=%s\n", k, v)
	}

	events, err := db.ListEvents(sessionID)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	if len(events) > 0 {
		fmt.Printf("\nEvents (%d):\n", len(events))
		fmt.Println(strings.Repeat("-", 60))
		for _, ev := range events {
			fmt.Printf("%s  %-18s %s\n",
				ev.CreatedAt.Format("15:04:05"), ev.EventType, ev.Detail)
		}
	}
	return nil
}

// SweepAction deletes terminal sessions older than the retention window.
func SweepAction(c *cli.Context) error {
	db, err := openStore(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	retention := c.Duration("retention")
	removed, err := db.SweepSessions(retention)
	if err != nil {
		return fmt.Errorf("failed to sweep sessions: %w", err)
	}
	fmt.Printf("Removed %d expired session(s) (retention %s)\n", removed, retention)
	return nil
}

// Flags returns the flags shared by the sessions subcommands.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db", Usage: "Database path (default: next to the binary)"},
	}
}

// ListFlags returns the list subcommand's flag set.
func ListFlags() []cli.Flag {
	return append(Flags(),
		&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum sessions to list"},
	)
}

// ShowFlags returns the show subcommand's flag set.
func ShowFlags() []cli.Flag {
	return append(Flags(),
		&cli.StringFlag{Name: "id", Usage: "Session ID (required)"},
	)
}

// SweepFlags returns the sweep subcommand's flag set.
func SweepFlags() []cli.Flag {
	return append(Flags(),
		&cli.DurationFlag{Name: "retention", Value: 24 * time.Hour, Usage: "Keep terminal sessions younger than this"},
	)
}
