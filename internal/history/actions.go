// Package history implements the CLI commands that inspect the request
// history database.
package history

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"briefcast/internal/store"
)

func RecentAction(c *cli.Context) error {
	db, err := store.Open(c.String("workdir"))
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	records, err := db.Recent(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No requests found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-30s %-10s %-10s %-7s\n",
		"ID", "Created", "Source", "Reference", "Status", "Type", "Chunks")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range records {
		ref := r.SourceRef
		if len(ref) > 28 {
			ref = ref[:25] + "..."
		}
		status := r.Status
		if r.ErrorKind != "" {
			status = r.ErrorKind
		}
		fmt.Printf("%-6d %-20s %-8s %-30s %-10s %-10s %-7d\n",
			r.RequestID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.SourceKind,
			ref,
			status,
			r.ContentType,
			r.ChunkCount,
		)
	}

	fmt.Printf("\nTotal: %d requests\n", len(records))
	return nil
}

func StatsAction(c *cli.Context) error {
	db, err := store.Open(c.String("workdir"))
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	counts, err := db.CountByStatus()
	if err != nil {
		return fmt.Errorf("failed to count requests: %w", err)
	}

	if len(counts) == 0 {
		fmt.Println("No requests found")
		return nil
	}

	total := 0
	for status, n := range counts {
		fmt.Printf("%-10s %d\n", status, n)
		total += n
	}
	fmt.Printf("\nTotal: %d requests\n", total)
	return nil
}
