package cli

import (
	"context"
	"fmt"

	"github.com/facundojmaero/gnome-shortcuts/internal/config"
	"github.com/facundojmaero/gnome-shortcuts/internal/filter"
	"github.com/facundojmaero/gnome-shortcuts/internal/history"
	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

// HistoryOptions contains options for showing recorded runs
type HistoryOptions struct {
	IO

	DatabasePath string   // config.DatabasePath when empty
	Limit        int      // history.DefaultLimit when zero
	RunID        string   // show a single run
	Kinds        []string // only show changes of these kinds
	Query        string   // JMESPath or $(shell) over the JSON output
	Clear        bool
	OutputFormat string
}

// History prints recorded apply runs, newest first
func History(ctx context.Context, opts HistoryOptions) error {
	if err := checkOutputFormat(opts.OutputFormat); err != nil {
		return err
	}
	if err := filter.CheckQuery(opts.Query); err != nil {
		return err
	}

	dbPath := opts.DatabasePath
	if dbPath == "" {
		dbPath = config.DatabasePath
	}

	mgr, err := history.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if opts.Clear {
		count, err := mgr.GetCount()
		if err != nil {
			return err
		}
		if err := mgr.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(opts.stdout(), "Cleared %d runs\n", count)
		return nil
	}

	var records []types.RunRecord
	if opts.RunID != "" {
		record, err := mgr.Get(opts.RunID)
		if err != nil {
			return err
		}
		records = append(records, *record)
	} else {
		records, err = mgr.Load(opts.Limit)
		if err != nil {
			return err
		}
	}
	for i := range records {
		records[i].Changes = filter.FilterChangesByKind(records[i].Changes, opts.Kinds)
	}

	if opts.Query != "" {
		return writeQuery(ctx, opts.stdout(), records, opts.Query)
	}

	switch opts.OutputFormat {
	case OutputJSON, OutputYAML:
		return writeStructured(opts.stdout(), records, opts.OutputFormat)
	default:
		_, err := fmt.Fprint(opts.stdout(), renderHistory(records))
		return err
	}
}
