package main

import (
	"context"
	"errors"
	"flight-route-service/internal/adapters/dataset"
	"flight-route-service/internal/adapters/dot"
	"flight-route-service/internal/adapters/output"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/pathfinder"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/services"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultDeparture = 480

type rootOptions struct {
	logLevel      string
	minConnection int
	maxExpansions int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "routefinder",
		Short:         "Find cheapest, fastest and optimal flight itineraries in a dataset file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&opts.minConnection, "min-connection", 60, "default minimum connection time in minutes")
	root.PersistentFlags().IntVar(&opts.maxExpansions, "max-expansions", pathfinder.DefaultMaxExpansions, "search expansion cap per criterion")

	root.AddCommand(
		newFindCmd(opts),
		newGraphCmd(opts),
		newConvertCmd(),
		newValidateCmd(opts),
	)
	return root
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	return obs.NewLogger(o.logLevel)
}

func (o *rootOptions) loadEngine(ctx context.Context, path string) (*pathfinder.Engine, *zap.Logger, error) {
	log, err := o.logger()
	if err != nil {
		return nil, nil, err
	}
	network, err := dataset.NewFileRepository(path, o.minConnection, log).LoadNetwork(ctx)
	if err != nil {
		return nil, nil, err
	}
	engine := pathfinder.NewEngine(network,
		pathfinder.WithMaxExpansions(o.maxExpansions),
		pathfinder.WithLogger(log),
	)
	return engine, log, nil
}

func newFindCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "find <input> <output> <from> <to> <day> [departure]",
		Short:   "Search all three criteria and write the itineraries as JSON",
		Example: "  routefinder find flights.json result.json JFK LAX monday 480",
		Args:    cobra.RangeArgs(5, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, out, from, to := args[0], args[1], args[2], args[3]
			day, err := domain.ParseWeekday(args[4])
			if err != nil {
				return err
			}
			departure := defaultDeparture
			if len(args) == 6 {
				if departure, err = domain.ParseTimeOfDay(args[5]); err != nil {
					return err
				}
			}

			engine, log, err := opts.loadEngine(cmd.Context(), input)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			network := engine.Network()
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d airports and %d flights\n", network.NumAirports(), network.NumFlights())

			planner := services.NewPlanner(engine, nil, log)
			plan, err := planner.PlanTrip(cmd.Context(), services.PlanTripRequest{
				Origin:      from,
				Destination: to,
				Day:         day,
				Departure:   departure,
			})
			if errors.Is(err, domain.ErrNoPathFound) {
				return fmt.Errorf("no viable paths found from %s to %s", from, to)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Found paths:")
			for _, j := range plan.Journeys {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s: %d flight segments\n", j.Criterion, len(j.Segments))
			}

			if err := output.WriteTripPlan(out, plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Results successfully written to %s\n", out)
			return nil
		},
	}
}

func newGraphCmd(opts *rootOptions) *cobra.Command {
	var (
		from, to, day, departure, criterion, out string
	)
	cmd := &cobra.Command{
		Use:   "graph <input>",
		Short: "Render the route map as Graphviz DOT, optionally highlighting one itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := opts.loadEngine(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var highlight []int
			if from != "" || to != "" {
				q, err := graphQuery(from, to, day, departure, criterion)
				if err != nil {
					return err
				}
				res, err := engine.FindPath(cmd.Context(), q)
				if err != nil {
					return err
				}
				if !res.Found {
					log.Warn("no itinerary to highlight", zap.String("from", from), zap.String("to", to))
				}
				highlight = res.Path
			}

			graph, err := dot.Render(engine.Network(), highlight)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), graph)
				return err
			}
			if err := os.WriteFile(out, []byte(graph), 0o644); err != nil {
				return fmt.Errorf("write graph %q: %w", out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "origin airport of the highlighted itinerary")
	cmd.Flags().StringVar(&to, "to", "", "destination airport of the highlighted itinerary")
	cmd.Flags().StringVar(&day, "day", "monday", "departure weekday")
	cmd.Flags().StringVar(&departure, "departure", "08:00", "departure time, minutes or HH:MM")
	cmd.Flags().StringVar(&criterion, "criterion", "cheapest", "cheapest, fastest or optimal")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func graphQuery(from, to, day, departure, criterion string) (pathfinder.Query, error) {
	if from == "" || to == "" {
		return pathfinder.Query{}, errors.New("--from and --to must be given together")
	}
	d, err := domain.ParseWeekday(day)
	if err != nil {
		return pathfinder.Query{}, err
	}
	t, err := domain.ParseTimeOfDay(departure)
	if err != nil {
		return pathfinder.Query{}, err
	}
	c, err := domain.ParseCriterion(criterion)
	if err != nil {
		return pathfinder.Query{}, err
	}
	return pathfinder.Query{Origin: from, Destination: to, Day: d, Departure: t, Criterion: c}, nil
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a dataset between JSON and YAML (chosen by file extension)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := dataset.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := dataset.WriteFile(args[1], doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", args[1], dataset.FormatFromPath(args[1]))
			return nil
		},
	}
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Report every record the loader would skip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := dataset.ReadFile(args[0])
			if err != nil {
				return err
			}
			n, err := dataset.Validate(doc, opts.minConnection)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			if n == nil {
				return errors.New("dataset is unusable")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d airports, %d flight instances\n", n.NumAirports(), n.NumFlights())
			if err != nil && strict {
				return errors.New("dataset has skipped records")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any record is skipped")
	return cmd
}
