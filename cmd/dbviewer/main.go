// Command dbviewer inspects a Routarr decision database from the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/timshannon/bolthold"

	"routarr/pkg/models"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorBold   = "\033[1m"
)

// DecisionStats holds statistics about recorded routing decisions
type DecisionStats struct {
	TotalItems  int
	Movies      int
	Shows       int
	Matched     int
	Unmatched   int
	PerInstance map[string]int
}

func main() {
	var (
		dbPath        = flag.String("db", "", "Path to the database file (required)")
		showStats     = flag.Bool("stats", false, "Show only statistics")
		matchedOnly   = flag.Bool("matched", false, "Show only matched decisions")
		unmatchedOnly = flag.Bool("unmatched", false, "Show only unmatched decisions")
		limit         = flag.Int("limit", 0, "Limit number of decisions shown (0 = all)")
		noColor       = flag.Bool("no-color", false, "Disable colored output")
		sortBy        = flag.String("sort", "received", "Sort by: received, subject, filter")
	)
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -db <database-path> [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -db /path/to/data.db -stats\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db /path/to/data.db -unmatched -limit 20\n", os.Args[0])
		os.Exit(1)
	}

	// Check if database file exists
	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: Database file '%s' does not exist\n", *dbPath)
		os.Exit(1)
	}

	// Open database
	store, err := bolthold.Open(*dbPath, 0600, &bolthold.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Fetch all decisions
	var decisions []*models.Decision
	if err := store.Find(&decisions, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading decisions from database: %v\n", err)
		os.Exit(1)
	}

	filtered := filterDecisions(decisions, *matchedOnly, *unmatchedOnly)
	sortDecisions(filtered, *sortBy)
	if *limit > 0 && len(filtered) > *limit {
		filtered = filtered[:*limit]
	}

	stats := calculateStats(decisions)
	colorize := getColorizer(*noColor)

	printHeader(colorize, *dbPath, len(filtered), len(decisions))

	if *showStats {
		printStatistics(colorize, stats)
		return
	}

	for i, decision := range filtered {
		printDecision(colorize, decision, i+1)
	}

	fmt.Printf("\n" + colorize("cyan", "=== SUMMARY ===") + "\n")
	printStatistics(colorize, stats)
}

func filterDecisions(decisions []*models.Decision, matchedOnly, unmatchedOnly bool) []*models.Decision {
	var filtered []*models.Decision
	for _, decision := range decisions {
		if matchedOnly && !decision.Matched {
			continue
		}
		if unmatchedOnly && decision.Matched {
			continue
		}
		filtered = append(filtered, decision)
	}
	return filtered
}

func sortDecisions(decisions []*models.Decision, sortBy string) {
	sort.Slice(decisions, func(i, j int) bool {
		switch sortBy {
		case "subject":
			return decisions[i].Subject < decisions[j].Subject
		case "filter":
			if decisions[i].FilterIndex != decisions[j].FilterIndex {
				return decisions[i].FilterIndex < decisions[j].FilterIndex
			}
			return decisions[i].ReceivedAt.After(decisions[j].ReceivedAt)
		default: // received, newest first
			return decisions[i].ReceivedAt.After(decisions[j].ReceivedAt)
		}
	})
}

func calculateStats(decisions []*models.Decision) DecisionStats {
	stats := DecisionStats{PerInstance: make(map[string]int)}

	for _, decision := range decisions {
		stats.TotalItems++

		if decision.MediaType == models.MediaTypeMovie {
			stats.Movies++
		} else {
			stats.Shows++
		}

		if decision.Matched {
			stats.Matched++
		} else {
			stats.Unmatched++
		}

		for _, instance := range decision.Instances {
			stats.PerInstance[instance]++
		}
	}

	return stats
}

func getColorizer(noColor bool) func(string, string) string {
	if noColor {
		return func(color, text string) string { return text }
	}

	colors := map[string]string{
		"red":    ColorRed,
		"green":  ColorGreen,
		"yellow": ColorYellow,
		"blue":   ColorBlue,
		"purple": ColorPurple,
		"cyan":   ColorCyan,
		"white":  ColorWhite,
		"bold":   ColorBold,
	}

	return func(color, text string) string {
		if c, ok := colors[color]; ok {
			return c + text + ColorReset
		}
		return text
	}
}

func printHeader(colorize func(string, string) string, dbPath string, filtered, total int) {
	fmt.Printf(colorize("bold", "ROUTARR DECISION VIEWER") + "\n\n")
	fmt.Printf(colorize("yellow", "Database: ")+"%s\n", filepath.Base(dbPath))
	fmt.Printf(colorize("yellow", "Showing:  ")+"%d of %d decisions\n", filtered, total)
	fmt.Printf(colorize("yellow", "Scanned:  ")+"%s\n\n", time.Now().Format("2006-01-02 15:04:05"))
}

func printStatistics(colorize func(string, string) string, stats DecisionStats) {
	fmt.Printf(colorize("bold", "ROUTING STATISTICS\n"))
	fmt.Printf("  Total Decisions: %s\n", colorize("white", fmt.Sprintf("%d", stats.TotalItems)))
	fmt.Printf("  Movies:          %s\n", colorize("blue", fmt.Sprintf("%d", stats.Movies)))
	fmt.Printf("  TV Shows:        %s\n", colorize("purple", fmt.Sprintf("%d", stats.Shows)))
	fmt.Printf("  Matched:         %s\n", colorize("green", fmt.Sprintf("%d", stats.Matched)))
	fmt.Printf("  Unmatched:       %s\n", colorize("yellow", fmt.Sprintf("%d", stats.Unmatched)))

	if stats.TotalItems > 0 {
		matchedPercent := float64(stats.Matched) / float64(stats.TotalItems) * 100
		fmt.Printf("  Match rate:      %s\n", colorize("green", fmt.Sprintf("%.1f%%", matchedPercent)))
	}

	if len(stats.PerInstance) > 0 {
		instances := make([]string, 0, len(stats.PerInstance))
		for instance := range stats.PerInstance {
			instances = append(instances, instance)
		}
		sort.Strings(instances)

		fmt.Printf("\n" + colorize("bold", "  PER INSTANCE\n"))
		for _, instance := range instances {
			fmt.Printf("  %-20s %s\n", instance, colorize("cyan", fmt.Sprintf("%d", stats.PerInstance[instance])))
		}
	}
	fmt.Println()
}

func printDecision(colorize func(string, string) string, decision *models.Decision, index int) {
	statusColor := "yellow"
	statusText := "NO MATCH"
	if decision.Matched {
		statusColor = "green"
		statusText = fmt.Sprintf("FILTER %d", decision.FilterIndex)
	}

	typeColor := "blue"
	typeText := "MOVIE"
	if decision.MediaType == models.MediaTypeTV {
		typeColor = "purple"
		typeText = "TV"
	}

	fmt.Printf("%s %s %s %s\n",
		colorize("white", fmt.Sprintf("[%03d]", index)),
		colorize(typeColor, fmt.Sprintf("[%s]", typeText)),
		colorize("bold", decision.Subject),
		colorize(statusColor, fmt.Sprintf("[%s]", statusText)))

	details := []string{
		colorize("white", fmt.Sprintf("TMDB: %d", decision.TmdbID)),
		colorize("white", decision.ReceivedAt.Format("2006-01-02 15:04")),
	}
	if len(decision.Instances) > 0 {
		details = append(details, colorize("cyan", strings.Join(decision.Instances, ", ")))
	}

	fmt.Printf("    %s\n\n", strings.Join(details, " | "))
}
