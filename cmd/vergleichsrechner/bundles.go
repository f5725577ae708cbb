package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/fondsvergleich/vergleichsrechner/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBundlesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundles",
		Short: "Manage saved parameter bundles",
	}
	cmd.AddCommand(
		newBundlesListCmd(a),
		newBundlesSaveCmd(a),
		newBundlesShowCmd(a),
		newBundlesDeleteCmd(a),
		newBundlesCompareCmd(a),
	)
	return cmd
}

// openStore opens and migrates the configured database.
func (a *app) openStore(ctx context.Context) (*sql.DB, error) {
	db, err := store.Open(a.settings.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx, db, a.logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// withStore runs fn against the bundle store and closes the database after.
func (a *app) withStore(ctx context.Context, fn func(*store.BundleStore) error) error {
	db, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(store.NewBundleStore(db))
}

func newBundlesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.BundleStore) error {
				bundles, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tName\tLaufzeit\tErstellt")
				for _, b := range bundles {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.ID, b.Name, b.Params.Term, b.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			})
		},
	}
}

func newBundlesSaveCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Validate a bundle file and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = args[0]
			}
			return a.withStore(cmd.Context(), func(s *store.BundleStore) error {
				b, err := s.Create(cmd.Context(), name, *params)
				if err != nil {
					return err
				}
				a.logger.Info("bundle saved", zap.String("id", b.ID), zap.String("name", b.Name))
				fmt.Fprintln(cmd.OutOrStdout(), b.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "bundle name (defaults to the file name)")
	return cmd
}

func newBundlesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved bundle as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.BundleStore) error {
				b, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(b, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode bundle: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}

func newBundlesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.BundleStore) error {
				return s.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func newBundlesCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <id>",
		Short: "Run a comparison for a saved bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.BundleStore) error {
				b, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				input, err := b.Params.ToRunInput()
				if err != nil {
					return err
				}
				engine := calculation.NewCalculationEngine()
				engine.SetLogger(calculation.NewZapLogger(a.logger))
				result, err := engine.Run(cmd.Context(), input)
				if err != nil {
					return fmt.Errorf("comparison failed: %w", err)
				}
				format, _ := cmd.Flags().GetString("format")
				return writeResult(cmd, result, format, "")
			})
		},
	}
	cmd.Flags().String("format", "console", "output format: "+formatHelp())
	return cmd
}
