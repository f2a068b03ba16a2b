// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/coursefinder/internal/catalog"
	"github.com/tomtom215/coursefinder/internal/filter"
	"github.com/tomtom215/coursefinder/internal/finder"
	"github.com/tomtom215/coursefinder/internal/logging"
	"github.com/tomtom215/coursefinder/internal/recommend"
	"github.com/tomtom215/coursefinder/internal/session"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	catalogPath   string
	catalogFormat string
	strict        bool
	compact       bool
	verbose       bool
}

// filterFlags select values for the four filter dimensions.
type filterFlags struct {
	college      string
	campus       string
	department   string
	scheduleType string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.college, "college", "", "college filter")
	cmd.Flags().StringVar(&f.campus, "campus", "", "campus filter")
	cmd.Flags().StringVar(&f.department, "department", "", "department filter")
	cmd.Flags().StringVar(&f.scheduleType, "schedule_type", "", "schedule type filter")
}

func (f *filterFlags) state() filter.State {
	var state filter.State
	filter.Select(&state, filter.College, f.college)
	filter.Select(&state, filter.Campus, f.campus)
	filter.Select(&state, filter.Department, f.department)
	filter.Select(&state, filter.ScheduleType, f.scheduleType)
	return state
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "coursectl",
		Short:         "Query a course catalog: filter options, courses and similar courses",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if g.catalogPath == "" {
				return fmt.Errorf("--catalog is required")
			}
			level := zerolog.WarnLevel
			if g.verbose {
				level = zerolog.DebugLevel
			}
			logging.SetLogger(zerolog.New(cmd.ErrOrStderr()).Level(level).With().Timestamp().Logger())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.catalogPath, "catalog", "", "catalog file (csv, parquet, json, jsonl)")
	pf.StringVar(&g.catalogFormat, "format", "", "catalog format, inferred from the extension when empty")
	pf.BoolVar(&g.strict, "strict", false, "fail when a similar course index does not address a row")
	pf.BoolVar(&g.compact, "compact", false, "print compact JSON")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(
		newStatsCmd(g),
		newOptionsCmd(g),
		newCoursesCmd(g),
		newSimilarCmd(g),
	)
	return rootCmd
}

func newStatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print catalog row and course counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openFinder(cmd.Context(), g)
			if err != nil {
				return err
			}
			stats, err := f.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats, g.compact)
		},
	}
}

func newOptionsCmd(g *globalFlags) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the legal options of every filter under the given selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openFinder(cmd.Context(), g)
			if err != nil {
				return err
			}
			opts, err := f.Options(cmd.Context(), ff.state())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), opts, g.compact)
		},
	}
	ff.register(cmd)
	return cmd
}

func newCoursesCmd(g *globalFlags) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Print the courses matching the given selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openFinder(cmd.Context(), g)
			if err != nil {
				return err
			}
			courses, err := f.Courses(cmd.Context(), ff.state())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), courses, g.compact)
		},
	}
	ff.register(cmd)
	return cmd
}

func newSimilarCmd(g *globalFlags) *cobra.Command {
	var (
		limit   int
		hydrate bool
	)
	cmd := &cobra.Command{
		Use:   "similar <index>",
		Short: "Print the similar courses of a catalog row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be an integer, got %q", args[0])
			}
			f, err := openFinder(cmd.Context(), g)
			if err != nil {
				return err
			}
			req := recommend.Request{Index: index, Hydrate: hydrate}
			if cmd.Flags().Changed("limit") {
				req.Limit = recommend.Limit(limit)
			}
			resp, err := f.Similar(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp, g.compact)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default from the engine config)")
	cmd.Flags().BoolVar(&hydrate, "hydrate", false, "print full course records instead of indices")
	return cmd
}

// openFinder loads the catalog and builds a finder with a small in-memory
// session store; the CLI only uses the stateless queries.
func openFinder(ctx context.Context, g *globalFlags) (*finder.Finder, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := catalog.ParseFormat(g.catalogFormat)
	if err != nil {
		return nil, err
	}
	handle := catalog.NewHandle(catalog.Source{
		Path:             g.catalogPath,
		Format:           format,
		StrictReferences: g.strict,
	})
	if _, err := handle.Table(ctx); err != nil {
		return nil, err
	}

	logger := logging.Logger()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), handle, logger)
	if err != nil {
		return nil, err
	}
	return finder.New(handle, engine, session.NewMemoryStore(1), finder.Config{}, logger)
}

func printJSON(w io.Writer, v any, compact bool) error {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
