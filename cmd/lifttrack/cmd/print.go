package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/service"
	"github.com/dustin/go-humanize"
)

// parseIndex turns a 1-based number typed by the user into a slice index.
func parseIndex(raw, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a number starting at 1, got %q", what, raw)
	}
	return n - 1, nil
}

func formatSet(s domain.WorkoutSet, unit domain.Unit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s x %d", calc.FormatWeight(s.Weight, unit), s.Reps)
	if s.RPE != nil {
		fmt.Fprintf(&b, " @%s", strconv.FormatFloat(*s.RPE, 'f', -1, 64))
	}
	var tags []string
	if s.IsWarmup {
		tags = append(tags, "warmup")
	}
	if s.IsDropset {
		tags = append(tags, "drop")
	}
	if s.IsPR {
		tags = append(tags, "PR")
	}
	if len(tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(tags, ", "))
	}
	return b.String()
}

func printWorkout(w io.Writer, wk domain.ActiveWorkout, unit domain.Unit, now time.Time) {
	elapsed := calc.WorkoutDuration(wk.StartedAt, now)
	fmt.Fprintf(w, "%s (%s), %s elapsed\n", wk.Name, wk.SplitType, calc.FormatDuration(elapsed))
	fmt.Fprintf(w, "%d/%d sets done, volume %s\n",
		calc.CompletedSetCount(wk.Exercises), calc.TotalSetCount(wk.Exercises), calc.FormatVolume(calc.WorkoutVolume(wk.Exercises)))
	if len(wk.Exercises) == 0 {
		fmt.Fprintln(w, "\nNo exercises yet. Add one with `lifttrack exercise add <id>`.")
		return
	}
	for i, ex := range wk.Exercises {
		cursor := " "
		if i == wk.CurrentExerciseIndex {
			cursor = ">"
		}
		fmt.Fprintf(w, "\n%s %d. %s\n", cursor, i+1, ex.ExerciseName)
		for j, s := range ex.Sets {
			mark := "[ ]"
			if s.Completed {
				mark = "[x]"
			}
			fmt.Fprintf(w, "     %s %d  %s\n", mark, j+1, formatSet(s, unit))
		}
	}
}

func printSummary(w io.Writer, s *service.Summary, unit domain.Unit) {
	fmt.Fprintf(w, "Saved %s (%s)\n", s.Name, s.SplitType)
	fmt.Fprintf(w, "  Duration  %s\n", calc.FormatDuration(s.Duration))
	fmt.Fprintf(w, "  Volume    %s %s\n", calc.FormatVolume(s.TotalVolume), unit)
	fmt.Fprintf(w, "  Sets      %d/%d\n", s.CompletedSets, s.TotalSets)
	if s.PRCount > 0 {
		fmt.Fprintf(w, "  PRs       %d\n", s.PRCount)
	}
	for _, ex := range s.Exercises {
		pr := ""
		if ex.HasPR {
			pr = "  PR"
		}
		fmt.Fprintf(w, "  - %-28s %2d sets  %s%s\n", ex.ExerciseName, ex.CompletedSets, calc.FormatVolume(ex.VolumeTotal), pr)
	}
}

func printSessions(w io.Writer, sessions []domain.WorkoutSession, unit domain.Unit) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No workouts yet.")
		return
	}
	for _, s := range sessions {
		when := humanize.Time(s.StartedAt)
		if s.CompletedAt != nil {
			when = humanize.Time(*s.CompletedAt)
		}
		fmt.Fprintf(w, "%s  %-16s %-7s %8s  %8s %s  %s\n",
			s.ID.Hex(), s.Name, s.SplitType, calc.FormatDuration(s.Duration), calc.FormatVolume(s.TotalVolume), unit, when)
	}
}

func printSession(w io.Writer, s *domain.WorkoutSession, unit domain.Unit) {
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.SplitType)
	fmt.Fprintf(w, "  Started   %s\n", s.StartedAt.Local().Format("Mon Jan 2 2006 15:04"))
	fmt.Fprintf(w, "  Duration  %s\n", calc.FormatDuration(s.Duration))
	fmt.Fprintf(w, "  Volume    %s %s\n", calc.FormatVolume(s.TotalVolume), unit)
	if s.Notes != "" {
		fmt.Fprintf(w, "  Notes     %s\n", s.Notes)
	}
	for i, ex := range s.Exercises {
		fmt.Fprintf(w, "\n  %d. %s\n", i+1, ex.ExerciseName)
		for _, set := range ex.Sets {
			if !set.Completed {
				continue
			}
			fmt.Fprintf(w, "       %d  %s\n", set.SetNumber, formatSet(set, unit))
		}
	}
}

func printProgress(w io.Writer, name string, p *service.Progress, unit domain.Unit) {
	if len(p.Entries) == 0 {
		fmt.Fprintf(w, "No history for %s yet.\n", name)
		return
	}
	fmt.Fprintf(w, "%s, best estimated 1RM %s\n", name, calc.FormatWeight(p.BestOneRepMax, unit))
	for _, e := range p.Entries {
		sets := make([]string, 0, len(e.Sets))
		for _, s := range e.Sets {
			sets = append(sets, formatSet(s, unit))
		}
		fmt.Fprintf(w, "  %s  %8s  %s\n", e.Date.Local().Format("Jan 02"), calc.FormatVolume(e.VolumeTotal), strings.Join(sets, ", "))
	}
}

func printExercises(w io.Writer, exercises []domain.Exercise) {
	if len(exercises) == 0 {
		fmt.Fprintln(w, "No matching exercises.")
		return
	}
	for _, ex := range exercises {
		muscles := make([]string, len(ex.PrimaryMuscles))
		for i, m := range ex.PrimaryMuscles {
			muscles[i] = string(m)
		}
		custom := ""
		if ex.IsCustom {
			custom = " (custom)"
		}
		fmt.Fprintf(w, "%-28s %-30s %-12s %s%s\n", ex.ID, ex.Name, ex.Equipment, strings.Join(muscles, ","), custom)
	}
}

func printExports(w io.Writer, exports []domain.Export) {
	if len(exports) == 0 {
		fmt.Fprintln(w, "No exports.")
		return
	}
	for _, e := range exports {
		fmt.Fprintf(w, "%s  %s  %d sessions  %s  %s\n",
			e.ID.Hex(), e.FileName, e.SessionCount, humanize.Bytes(uint64(e.Size)), humanize.Time(e.CreatedAt))
		if e.DownloadURL != "" {
			fmt.Fprintf(w, "    %s\n", e.DownloadURL)
		}
	}
}
