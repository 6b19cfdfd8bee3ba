package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guzus/garage/internal/store"
)

var carsCmd = &cobra.Command{
	Use:     "cars",
	Short:   "List, add and remove cars without the UI",
	GroupID: "garage",
}

var carsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all cars with their index",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.NewFileStore(cfg.DBPath).Load()
		if err != nil {
			return err
		}
		return writeCars(cmd.OutOrStdout(), records)
	},
}

var carsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append randomly generated cars",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			return err
		}
		if count < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", count)
		}

		st := store.NewFileStore(cfg.DBPath)
		gen := newGenerator(cfg.Seed)
		var records []store.Record
		for i := 0; i < count; i++ {
			records, err = st.AppendGenerated(gen)
			if err != nil {
				return err
			}
			added := records[len(records)-1]
			slog.Info("car added", "id", added.ID, "name", added.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s) at index %d.\n",
				added.Name, added.Category, added.Engine, len(records)-1)
		}
		return nil
	},
}

var carsRemoveCmd = &cobra.Command{
	Use:     "remove <index>",
	Aliases: []string{"rm"},
	Short:   "Remove the car at index",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}

		if err := store.NewFileStore(cfg.DBPath).RemoveAt(index); err != nil {
			return err
		}
		slog.Info("car deleted", "index", index)
		fmt.Fprintf(cmd.OutOrStdout(), "Car %d removed.\n", index)
		return nil
	},
}

func writeCars(out io.Writer, records []store.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(out, "No cars yet. Run: garage cars add")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tNAME\tMODEL\tCATEGORY\tENGINE\tAGE\tCREATED")
	for i, r := range records {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			i,
			r.ID,
			r.Name,
			r.Model,
			r.Category,
			r.Engine,
			r.Age,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}

func init() {
	carsAddCmd.Flags().IntP("count", "n", 1, "number of cars to add")

	carsCmd.AddCommand(carsListCmd)
	carsCmd.AddCommand(carsAddCmd)
	carsCmd.AddCommand(carsRemoveCmd)
	rootCmd.AddCommand(carsCmd)
}
