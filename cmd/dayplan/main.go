package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zhao-stanley/6.1040-a3/internal/profile"
	"github.com/zhao-stanley/6.1040-a3/plugin/ai"
	"github.com/zhao-stanley/6.1040-a3/server/service/schedule"
	"github.com/zhao-stanley/6.1040-a3/store"
)

const version = "0.1.0"

// dayFile is the JSON shape of a day definition. An activity with a
// startTime is pre-assigned through the direct path; the rest form the
// eligible pool for auto-assignment.
type dayFile struct {
	Activities []dayActivity `json:"activities"`
}

type dayActivity struct {
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	StartTime *int   `json:"startTime,omitempty"`
}

var rootCmd = &cobra.Command{
	Use:     "dayplan",
	Short:   "Organize a day's activities into half-hour slots with an external planner",
	Version: version,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if viper.GetString("mode") != "prod" {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Auto-assign every unassigned activity of a day file and print the schedule",
	RunE: func(cmd *cobra.Command, _ []string) error {
		prof, err := loadProfile()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		st := store.New()
		if err := loadDayFile(st, viper.GetString("file")); err != nil {
			return err
		}

		provider, err := ai.NewProvider(ai.NewConfigFromProfile(prof))
		if err != nil {
			return fmt.Errorf("failed to create planner provider: %w", err)
		}

		svc := schedule.NewService(st, provider)
		result, err := svc.RequestAutoAssignment(cmd.Context())
		if err != nil {
			var verr *schedule.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(os.Stderr, "The planner's proposals were rejected:")
				for _, issue := range verr.Issues {
					fmt.Fprintf(os.Stderr, "  - %s\n", issue)
				}
			}
			return err
		}

		if len(result.Applied) == 0 {
			fmt.Println("Nothing to schedule: every activity already has a slot.")
		} else {
			fmt.Printf("Applied %d assignment(s).\n\n", len(result.Applied))
		}

		printSchedule(svc.GetSchedule())
		return nil
	},
}

// loadProfile builds and validates the process profile from viper-bound
// flags and DAYPLAN_* environment variables.
func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:              viper.GetString("mode"),
		Version:           version,
		PlannerBaseURL:    viper.GetString("planner-base-url"),
		PlannerAPIKey:     viper.GetString("planner-api-key"),
		PlannerModel:      viper.GetString("planner-model"),
		PlannerMaxRetries: viper.GetInt("planner-max-retries"),
		PlannerTimeout:    viper.GetDuration("planner-timeout"),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// loadDayFile populates the store from a day definition file.
func loadDayFile(st *store.Store, path string) error {
	if path == "" {
		return fmt.Errorf("a day file is required, pass --file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read day file: %w", err)
	}

	var day dayFile
	if err := json.Unmarshal(data, &day); err != nil {
		return fmt.Errorf("failed to parse day file %s: %w", path, err)
	}

	for _, entry := range day.Activities {
		activity, err := st.AddActivity(entry.Title, entry.Duration)
		if err != nil {
			return fmt.Errorf("activity %q: %w", entry.Title, err)
		}
		if entry.StartTime != nil {
			if err := st.AssignActivity(activity.UID, *entry.StartTime); err != nil {
				return fmt.Errorf("activity %q: %w", entry.Title, err)
			}
		}
	}

	return nil
}

// printSchedule renders the derived slot view as a clock-time grid. The view
// is read-only derived data; this layer never mutates through it.
func printSchedule(view map[int][]*store.Activity) {
	for slot := 0; slot < store.SlotsPerDay; slot++ {
		occupants := view[slot]
		if len(occupants) == 0 {
			continue
		}
		titles := make([]string, len(occupants))
		for i, a := range occupants {
			titles[i] = a.Title
		}
		fmt.Printf("%02d:%02d  %s\n", slot/2, (slot%2)*30, strings.Join(titles, ", "))
	}
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the process, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("planner-base-url", "https://api.openai.com/v1", "base URL of the OpenAI-compatible planner endpoint")
	rootCmd.PersistentFlags().String("planner-api-key", "", "API key for the planner endpoint")
	rootCmd.PersistentFlags().String("planner-model", "gpt-4o-mini", "model used for planning")
	rootCmd.PersistentFlags().Int("planner-max-retries", 3, "retry attempts for planner calls")
	rootCmd.PersistentFlags().Duration("planner-timeout", 0, "timeout for a single planner call")

	planCmd.Flags().String("file", "", "path to the day definition JSON file")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	if err := viper.BindPFlags(planCmd.Flags()); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("dayplan")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(planCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
