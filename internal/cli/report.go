package cli

import (
	"fmt"
	"io"

	"github.com/glorpus-work/nugetclean/pkg/age"
	"github.com/glorpus-work/nugetclean/pkg/bytefmt"
	"github.com/glorpus-work/nugetclean/pkg/deleter"
	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/retention"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// reporter prints progress events as the console report.
type reporter struct {
	out     io.Writer
	verbose bool
}

func (r *reporter) hooks() retention.Hooks {
	return retention.Hooks{OnEvent: r.onEvent}
}

func (r *reporter) onEvent(e retention.Event) {
	switch e.Kind {
	case retention.EventMissingRoot:
		r.printf("Warning: Missing nuget package folder: %s\n", e.Path)
	case retention.EventSkipped:
		if errors.Is(e.Err, errors.ErrNotAVersion) {
			r.printf("Warning: Skipping non-version format directory %s.\n", e.Path)
			return
		}
		r.printf("Warning: Skipping %s: %v\n", e.Path, e.Err)
	case retention.EventAged:
		r.printf("%s last accessed %d days ago\n", e.Path, age.Days(e.Age))
	case retention.EventRemoving:
		if r.verbose {
			r.printf(" - %s\n", e.Path)
		}
	case retention.EventFailed:
		r.failure(e)
	}
}

func (r *reporter) failure(e retention.Event) {
	switch {
	case e.Outcome == deleter.Unauthorized:
		r.printf("Warning: Not authorized to delete %s.\n", e.Path)
	case e.Reason == "":
		r.printf("Warning: Reading %s encountered %s: %v\n", e.Path, errors.Category(e.Err), e.Err)
	default:
		r.printf("Warning: Deleting %s encountered %s: %v\n", e.Path, errors.Category(e.Err), e.Err)
	}
}

func (r *reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// summary prints the closing lines of a run.
func (r *reporter) summary(freed int64, commit, prune bool, minDays int) {
	qty := bytefmt.Format(freed)
	if commit {
		r.printf("Done! Deleted %s.\n", qty)
		return
	}

	days := formatDays(minDays)
	if prune {
		r.printf("%s worth of packages are older than %s days or are not the latest version.\n", qty, days)
	} else {
		r.printf("%s worth of packages are older than %s days.\n", qty, days)
	}

	if freed != 0 {
		r.printf("To delete, re-run with -c or --commit flag.\n")
	}
}

// formatDays renders a day count with thousands separators.
func formatDays(days int) string {
	return message.NewPrinter(language.English).Sprintf("%d", days)
}
