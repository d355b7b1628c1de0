// Package output renders qadb command results for the terminal.
//
// Status lines (Success, Warning, ...) follow the usual ✓ ⚠ ✗ ℹ markers.
// Records render as lipgloss tables, reply threads as lipgloss trees, and
// every command can fall back to indented JSON with --json.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/service"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Printer writes styled output to one writer, normally the command's stdout.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprint(p.w, successStyle.Render("✓ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprint(p.w, warningStyle.Render("⚠ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprint(p.w, errorStyle.Render("✗ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprint(p.w, infoStyle.Render("ℹ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Muted prints a muted message
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a section header
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, primaryStyle.Render(title))
	fmt.Fprintln(p.w, mutedStyle.Render(lipgloss.NewStyle().Width(len(title)).Render(strings.Repeat("═", len(title)))))
	fmt.Fprintln(p.w)
}

// Field prints one "label: value" line.
func (p *Printer) Field(label string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", mutedStyle.Render(label+":"), value)
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table prints rows under the given headers with a rounded border.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(p.w, t.String())
}

// Questions prints a list of questions as a table.
func (p *Printer) Questions(qs []model.Question) {
	if len(qs) == 0 {
		p.Muted("(none)")
		return
	}
	rows := make([][]string, 0, len(qs))
	for _, q := range qs {
		rows = append(rows, []string{id(q.ID), q.Title, id(q.AuthorID)})
	}
	p.Table([]string{"ID", "TITLE", "AUTHOR"}, rows)
}

// Users prints a list of users as a table.
func (p *Printer) Users(us []model.User) {
	if len(us) == 0 {
		p.Muted("(none)")
		return
	}
	rows := make([][]string, 0, len(us))
	for _, u := range us {
		rows = append(rows, []string{id(u.ID), u.FName, u.LName})
	}
	p.Table([]string{"ID", "FIRST", "LAST"}, rows)
}

// Ranking prints a leaderboard with the count column named after what was
// counted.
func (p *Printer) Ranking(by service.Ranking, ranked []model.RankedQuestion) {
	if len(ranked) == 0 {
		p.Muted("(no %s yet)", by)
		return
	}
	rows := make([][]string, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			id(r.ID),
			r.Title,
			strconv.FormatInt(r.Count, 10),
		})
	}
	p.Table([]string{"#", "ID", "TITLE", string(by)}, rows)
}

// Thread prints a question and its replies as a tree. names maps user ids to
// display names; ids without an entry print as "user #id".
func (p *Printer) Thread(t *service.Thread, names map[int64]string) {
	root := tree.Root(primaryStyle.Render(fmt.Sprintf("%s (#%d)", t.Question.Title, t.Question.ID))).
		EnumeratorStyle(mutedStyle)
	for _, node := range t.Replies {
		root.Child(replyTree(node, names))
	}
	fmt.Fprintln(p.w, root.String())
}

// replyTree returns a plain string for a leaf and a subtree otherwise, so
// leaves do not get an empty branch under them.
func replyTree(node *service.ReplyNode, names map[int64]string) any {
	label := fmt.Sprintf("%s %s", mutedStyle.Render(author(node.Reply.AuthorID, names)+":"), node.Reply.Body)
	if len(node.Children) == 0 {
		return label
	}
	sub := tree.Root(label).EnumeratorStyle(mutedStyle)
	for _, c := range node.Children {
		sub.Child(replyTree(c, names))
	}
	return sub
}

func author(userID int64, names map[int64]string) string {
	if name, ok := names[userID]; ok {
		return name
	}
	return fmt.Sprintf("user #%d", userID)
}

func id(v int64) string { return strconv.FormatInt(v, 10) }
