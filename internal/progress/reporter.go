// Package progress reports what a static export writes, page by page.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// Kind classifies one exported page.
type Kind int

const (
	KindLanding Kind = iota // index redirect or configuration diagnostic
	KindPost
	KindLocked
	KindListing
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindLanding:
		return "landing"
	case KindPost:
		return "post"
	case KindLocked:
		return "locked"
	case KindListing:
		return "listing"
	case KindNotFound:
		return "404"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Summary counts the pages of one export.
type Summary struct {
	Written  int
	Posts    int // detail pages, locked ones included
	Locked   int
	Listings int
	Skipped  []string // paths that could not be written safely
}

// Record counts one written page.
func (s *Summary) Record(k Kind) {
	s.Written++
	switch k {
	case KindPost:
		s.Posts++
	case KindLocked:
		s.Posts++
		s.Locked++
	case KindListing:
		s.Listings++
	}
}

// Skip counts a page left out of the export.
func (s *Summary) Skip(path string) {
	s.Skipped = append(s.Skipped, path)
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d pages: %d posts", s.Written, s.Posts)
	if s.Locked > 0 {
		fmt.Fprintf(&b, " (%d locked)", s.Locked)
	}
	fmt.Fprintf(&b, ", %d listings", s.Listings)
	if len(s.Skipped) > 0 {
		fmt.Fprintf(&b, ", %d skipped", len(s.Skipped))
	}
	return b.String()
}

// Reporter receives export progress.
type Reporter interface {
	Start(total int)
	Page(kind Kind, path string)
	Skip(path, reason string)
	Finish(sum Summary)
}

// NewReporter returns a CIReporter when running under CI and a
// TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter draws a progress bar labelled with the current page.
type TerminalReporter struct {
	bar  *progressbar.ProgressBar
	done int
}

func (r *TerminalReporter) Start(total int) {
	r.done = 0
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Exporting site"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Page(kind Kind, path string) {
	r.done++
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("%-7s %s", kind, path))
		_ = r.bar.Set(r.done)
	}
}

func (r *TerminalReporter) Skip(path, reason string) {
	if r.bar != nil {
		_ = r.bar.Clear()
	}
	fmt.Fprintf(os.Stderr, "skipped %s: %s\n", path, reason)
}

func (r *TerminalReporter) Finish(sum Summary) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintf(os.Stderr, "Exported %s\n", sum)
}

// CIReporter writes one line per page, suitable for CI logs.
type CIReporter struct {
	Out   io.Writer
	total int
	done  int
}

func (r *CIReporter) Start(total int) {
	r.total, r.done = total, 0
	fmt.Fprintf(r.Out, "Exporting %d pages\n", total)
}

func (r *CIReporter) Page(kind Kind, path string) {
	r.done++
	fmt.Fprintf(r.Out, "[%d/%d] %s %s\n", r.done, r.total, kind, path)
}

func (r *CIReporter) Skip(path, reason string) {
	fmt.Fprintf(r.Out, "skipped %s: %s\n", path, reason)
}

func (r *CIReporter) Finish(sum Summary) {
	fmt.Fprintf(r.Out, "Export complete: %s\n", sum)
}
