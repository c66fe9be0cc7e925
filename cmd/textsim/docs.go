package main

import (
	"fmt"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/render"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage stored documents",
}

var docsAddCmd = &cobra.Command{
	Use:   "add <name> <file>",
	Short: "Store a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		content, err := app.read(ctx, args[1])
		if err != nil {
			return err
		}

		doc, err := app.sim.Documents().Add(ctx, args[0], content)
		if err != nil {
			return fmt.Errorf("failed to add document: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Document '%s' added with ID %s\n", doc.Name, doc.ID)
		return nil
	},
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer app.Close()

		docs, err := app.sim.Documents().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return render.WriteJSON(cmd.OutOrStdout(), docs)
		}
		for _, doc := range docs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%d bytes)\n", doc.ID, doc.Name, len(doc.Content))
		}
		return nil
	},
}

var docsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a stored document",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.sim.Documents().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Document '%s' deleted successfully\n", args[0])
		return nil
	},
}

var docsCompareCmd = &cobra.Command{
	Use:   "compare <query-file>",
	Short: "Score a query file against stored documents",
	Long: `Score a query file against every stored document, or print the
detailed report against a single document when --id is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		query, err := app.read(ctx, args[0])
		if err != nil {
			return err
		}

		if id, _ := cmd.Flags().GetString("id"); id != "" {
			report, err := app.sim.CompareWithStored(ctx, query, id)
			if err != nil {
				return fmt.Errorf("failed to compare: %w", err)
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return render.WriteJSON(cmd.OutOrStdout(), report)
			}
			return render.WriteText(cmd.OutOrStdout(), report)
		}

		scores, err := app.sim.CompareStored(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to compare: %w", err)
		}
		return writeScores(cmd, scores)
	},
}

func init() {
	docsCmd.AddCommand(docsAddCmd, docsListCmd, docsRmCmd, docsCompareCmd)

	docsListCmd.Flags().Bool("json", false, "Output as JSON")

	docsCompareCmd.Flags().String("id", "", "Compare against a single document")
	docsCompareCmd.Flags().Bool("json", false, "Output as JSON")
	docsCompareCmd.Flags().Bool("rank", false, "Order results by descending similarity")
}
