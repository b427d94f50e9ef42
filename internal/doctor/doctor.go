package doctor

import (
	"log/slog"
	"time"

	"github.com/thoreinstein/cfy/internal/logging"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "config", "filesystem").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run() *CheckResult
}

// Fixer is implemented by checks that can remediate what they found.
// CanFix and Fix are only meaningful after Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix.
type FixResult struct {
	// Path is the file or directory the fix targeted.
	Path string `json:"path"`

	// Fixed indicates whether the fix was applied.
	Fixed bool `json:"fixed"`

	// Description explains what was done or why it could not be done.
	Description string `json:"description"`

	// Error is set when the fix failed.
	Error error `json:"-"`
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
	logger *slog.Logger
}

// NewRunner creates a new diagnostic runner. A nil logger discards the
// per-check debug output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Runner{
		checks: make([]Check, 0),
		logger: logger,
	}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes all registered checks in order and returns a report.
func (r *Runner) Run() *DoctorReport {
	report := &DoctorReport{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := check.Run()
		r.logger.Debug("check finished",
			"check", check.Name(),
			"category", check.Category(),
			"status", result.Status.String())
		report.add(result)
	}

	return report
}

// Fix runs Fix on every check that implements Fixer and reports fixable
// issues. Run must have been called first.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		f, ok := check.(Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		for _, res := range f.Fix() {
			if res.Error != nil {
				r.logger.Warn("fix failed", "check", check.Name(), "path", res.Path, "error", res.Error)
			} else {
				r.logger.Info("fixed", "check", check.Name(), "path", res.Path, "action", res.Description)
			}
			results = append(results, res)
		}
	}
	return results
}

// DoctorReport aggregates all check results with timing and summary.
type DoctorReport struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Fixes lists the fixes applied by `cfy doctor --fix`.
	Fixes []FixResult `json:"fixes,omitempty"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

func (r *DoctorReport) add(result *CheckResult) {
	r.Results = append(r.Results, result)

	switch result.Status {
	case SeverityPass:
		r.Summary.Passed++
	case SeverityInfo:
		r.Summary.Info++
	case SeverityWarning:
		r.Summary.Warnings++
	case SeverityError:
		r.Summary.Errors++
	}
}

// HasErrors returns true if any check has SeverityError.
func (r *DoctorReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *DoctorReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
