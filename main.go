package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const notFoundMessage = "No path was found! :("

func foundMessage(moves int) string {
	return fmt.Sprintf("Shortest path was found! Number of moves: %d", moves)
}

var (
	cfg     Config
	verbose bool
	logger  *zap.Logger

	boardPath  string
	layoutPath string
	flagRows   int
	flagCols   int
	startFlag  string
	endFlag    string
	resetFlags []string
	borderWall bool
	frameDelay time.Duration
	finalOnly  bool

	addr string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "knightpath",
	Short: "Knight-move shortest path search on an obstacle grid",
	Long: `knightpath finds the shortest sequence of chess-knight moves between two
cells of a grid with barriers, using A* search, and shows the search as it
unfolds.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = LoadConfig()
		applyConfigDefaults(cmd, cfg)

		config := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = zapcore.InfoLevel
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown log level %q; using info", cfg.LogLevel))
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		config.Level = zap.NewAtomicLevelAt(level)
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		for _, warning := range cfg.Warnings {
			logger.Warn(warning)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// searchCmd runs one search in the terminal
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a board or obstacle layout and draw the progress",
	Long: `Loads a text board (--board) or a GeoJSON obstacle layout (--layout), or
starts from an empty grid, then animates the search in the terminal.

Board files use '.' for empty cells, '#' for barriers, 'S' and 'E' for the
start and end. Layout coordinates are cell units: x is the column, y the row.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	searchCmd.Flags().StringVar(&boardPath, "board", "", "Text board file")
	searchCmd.Flags().StringVar(&layoutPath, "layout", "", "GeoJSON obstacle layout file")
	searchCmd.Flags().IntVar(&flagRows, "rows", defaultRows, "Grid rows for layouts and empty grids")
	searchCmd.Flags().IntVar(&flagCols, "cols", defaultCols, "Grid columns for layouts and empty grids")
	searchCmd.Flags().StringVar(&startFlag, "start", "", "Start cell as row,col (overrides the input)")
	searchCmd.Flags().StringVar(&endFlag, "end", "", "End cell as row,col (overrides the input)")
	searchCmd.Flags().StringArrayVar(&resetFlags, "reset", nil, "Clear a cell back to empty, as row,col (repeatable)")
	searchCmd.Flags().BoolVar(&borderWall, "border-wall", false, "Raise a two-cell barrier frame round the grid")
	searchCmd.Flags().DurationVar(&frameDelay, "delay", 0, "Pause between frames")
	searchCmd.Flags().BoolVar(&finalOnly, "final-only", false, "Only draw the finished grid")
	searchCmd.MarkFlagsMutuallyExclusive("board", "layout")

	serveCmd.Flags().StringVar(&addr, "addr", defaultAddr, "Listen address")

	rootCmd.AddCommand(searchCmd, serveCmd)
}

// applyConfigDefaults fills the flags the user did not set from the
// environment configuration.
func applyConfigDefaults(cmd *cobra.Command, cfg Config) {
	flags := cmd.Flags()
	if !flags.Changed("rows") {
		flagRows = cfg.Rows
	}
	if !flags.Changed("cols") {
		flagCols = cfg.Cols
	}
	if !flags.Changed("delay") {
		frameDelay = cfg.FrameDelay
	}
	if !flags.Changed("addr") {
		addr = cfg.Addr
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	grid, err := loadGrid()
	if err != nil {
		return err
	}
	if err := applyResetFlags(grid); err != nil {
		return err
	}
	if err := applyEndpointFlags(grid); err != nil {
		return err
	}
	if borderWall {
		grid.ToggleBorderWall()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []TerminalOption{WithFrameDelay(frameDelay)}
	if finalOnly {
		opts = append(opts, WithFinalFrameOnly())
	}
	out := cmd.OutOrStdout()
	renderer := NewTerminalRenderer(out, opts...)

	result, err := RunGrid(ctx, grid, renderer, WithLogger(logger))
	if err != nil {
		return err
	}
	if finalOnly {
		renderer.Draw(grid)
	}
	if result.Found {
		fmt.Fprintln(out, foundMessage(result.Moves))
	} else {
		fmt.Fprintln(out, notFoundMessage)
	}
	return nil
}

func loadGrid() (*Grid, error) {
	switch {
	case boardPath != "":
		logger.Info("loading board", zap.String("path", boardPath))
		return LoadBoard(boardPath)
	case layoutPath != "":
		logger.Info("loading layout", zap.String("path", layoutPath))
		return LoadLayout(layoutPath, flagRows, flagCols, logger)
	default:
		return NewGrid(flagRows, flagCols)
	}
}

// applyResetFlags returns every --reset cell to Empty.
func applyResetFlags(grid *Grid) error {
	for _, v := range resetFlags {
		p, err := parsePosition(v)
		if err != nil {
			return fmt.Errorf("--reset: %w", err)
		}
		if err := grid.Reset(p); err != nil {
			return fmt.Errorf("--reset: %w", err)
		}
	}
	return nil
}

// applyEndpointFlags moves the start and end to the cells named on the command line.
func applyEndpointFlags(grid *Grid) error {
	if startFlag != "" {
		p, err := parsePosition(startFlag)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		if err := grid.SetStart(p); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}
	if endFlag != "" {
		p, err := parsePosition(endFlag)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		if err := grid.SetEnd(p); err != nil {
			return fmt.Errorf("--end: %w", err)
		}
	}
	return nil
}

// parsePosition parses "row,col".
func parsePosition(s string) (Position, error) {
	rowStr, colStr, ok := strings.Cut(s, ",")
	if !ok {
		return Position{}, fmt.Errorf("want row,col, got %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return Position{}, fmt.Errorf("bad row in %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return Position{}, fmt.Errorf("bad column in %q: %w", s, err)
	}
	return Position{Row: row, Col: col}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServer(cfg, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.Strings("endpoints", []string{"POST /route", "GET /health"}))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
