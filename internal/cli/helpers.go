package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/market"
	"github.com/spf13/cobra"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen parses a user supplied time in loc. Empty is the zero time.
func parseWhen(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want YYYY-MM-DD[ HH:MM] or RFC3339)", s)
}

// optionalFloat returns a pointer to the flag value when it was set.
func optionalFloat(cmd *cobra.Command, name string) (*float64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// note renders a non-exact outcome as a suffix for calculator output.
func note(o market.Outcome) string {
	if o.Exact() {
		return ""
	}
	return "  (" + o.String() + ")"
}

func invalid(what string, o market.Outcome) error {
	return fmt.Errorf("cannot compute %s: %s", what, o)
}

// resolveAccount finds an account by ID or name. An empty ref falls back
// to account.id from the config, then to the only account if there is
// exactly one.
func (rc *RootConfig) resolveAccount(ctx context.Context, s journal.Store, ref string) (journal.Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = rc.Config.Account.ID
	}
	if ref != "" {
		a, err := s.GetAccount(ctx, ref)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, journal.ErrNotFound) {
			return journal.Account{}, err
		}
	}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return journal.Account{}, err
	}
	if ref == "" {
		switch len(accounts) {
		case 0:
			return journal.Account{}, errors.New("no accounts yet; create one with 'fxjournal account add'")
		case 1:
			return accounts[0], nil
		}
		return journal.Account{}, errors.New("several accounts exist; choose one with --account")
	}
	for _, a := range accounts {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return journal.Account{}, fmt.Errorf("account %q %w", ref, journal.ErrNotFound)
}

// period converts --from/--to flags to a filter range. To is a date and
// is inclusive of that whole day.
func (rc *RootConfig) period(from, to string) (time.Time, time.Time, error) {
	f, err := parseWhen(from, rc.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := parseWhen(to, rc.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !t.IsZero() && t.Equal(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, rc.Loc)) {
		t = t.AddDate(0, 0, 1)
	}
	return f, t, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
