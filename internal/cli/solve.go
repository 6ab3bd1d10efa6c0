package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"svw.info/gridsolve/internal/solver"
)

var (
	solveInput   string
	solveFile    string
	solveSize    int
	solveBoxSide int
	solveWorkers int
	maxNodes     int
	checkUnique  bool
	profileMode  bool
	solveTimeout time.Duration
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a puzzle given as an N²-character string",
		Long: `Solve a Sudoku-family puzzle. The board is a row-major string of N²
characters where '.' or '0' marks an empty cell.

Examples:
  gridsolve solve -i 53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79
  gridsolve solve -f puzzle.txt --size 16 --box-side 4
  gridsolve solve -i "$(cat puzzle.txt)" --workers 4 --check-unique`,
		RunE: runSolve,
	}

	solveCmd.Flags().StringVarP(&solveInput, "input", "i", "", "Board string (N*N characters)")
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "File containing the board string")
	solveCmd.Flags().IntVar(&solveSize, "size", 9, "Grid size N")
	solveCmd.Flags().IntVar(&solveBoxSide, "box-side", 3, "Box height (box width is N/boxSide)")
	solveCmd.Flags().IntVarP(&solveWorkers, "workers", "w", 0, "Parallel root branches (0 = env/serial)")
	solveCmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "Search node budget (0 = env/unlimited)")
	solveCmd.Flags().BoolVar(&checkUnique, "check-unique", false, "Also report whether the solution is unique")
	solveCmd.Flags().BoolVar(&profileMode, "profile", false, "Write a CPU profile to the current directory")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 30*time.Second, "Solve timeout")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	if profileMode {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	input := solveInput
	if input == "" && solveFile != "" {
		data, err := os.ReadFile(solveFile)
		if err != nil {
			return fmt.Errorf("read board file: %w", err)
		}
		input = strings.Join(strings.Fields(string(data)), "")
	}
	if input == "" {
		return fmt.Errorf("no board given: use --input or --file")
	}

	board, err := ParseBoard(input, solveSize, solveBoxSide)
	if err != nil {
		return err
	}

	workers := solveWorkers
	if workers == 0 {
		workers = cfg.Workers
	}
	budget := maxNodes
	if budget == 0 {
		budget = cfg.MaxNodes
	}
	s := solver.New(solver.WithWorkers(workers), solver.WithMaxNodes(budget))

	ctx, cancel := contextWithTimeout(solveTimeout)
	defer cancel()

	out, st, err := s.Solve(ctx, board)
	if err != nil {
		return err
	}
	fmt.Println(FormatBoard(out))
	log.Info().Int("nodes", st.Nodes).Dur("duration", st.Duration).Msg("solved")

	if checkUnique {
		unique, _, err := s.Unique(ctx, board)
		if err != nil {
			return err
		}
		fmt.Printf("unique solution: %v\n", unique)
	}
	return nil
}
