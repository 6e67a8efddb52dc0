package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/biblio/internal/cli"
	"github.com/Veraticus/biblio/internal/model"
	"github.com/Veraticus/biblio/internal/storage"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local book catalog",
		Long: `The catalog resolves suggested titles to images and links. It starts with
a few books per category and can be extended from scraped CSV files.`,
	}

	cmd.AddCommand(catalogImportCmd())
	cmd.AddCommand(catalogListCmd())

	return cmd
}

func catalogImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import books from a CSV file",
		Long: `Import books from a CSV file with a header row. Recognised columns:
titre/title, category/catégorie, description, prix/price, image_url/image,
url/link/lien. Rows already present (same title and category) are updated.`,
		RunE: runCatalogImport,
	}

	cmd.Flags().StringP("file", "f", "", "CSV file to import (required)")
	cmd.Flags().StringP("category", "c", "", "Category for rows without one")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runCatalogImport(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	category, _ := cmd.Flags().GetString("category")

	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	books, err := storage.ReadBooksCSV(f, model.NormalizeCategory(category))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	if len(books) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No books found in "+file))
		return nil
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imported, err := store.ImportBooks(ctx, books)
	if err != nil {
		return fmt.Errorf("failed to import books: %w", err)
	}

	slog.Info("Catalog import complete", "file", file, "books", imported)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d livres importés", imported)))
	return nil
}

func catalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog books",
		RunE:  runCatalogList,
	}

	cmd.Flags().StringP("category", "c", "", "Only list this category")

	return cmd
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	category, _ := cmd.Flags().GetString("category")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	books, err := store.ListBooks(ctx, model.NormalizeCategory(category))
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	if len(books) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No books found.")
		return nil
	}

	heading := "Catalogue"
	if category != "" {
		heading += " : " + string(model.NormalizeCategory(category))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle(heading))

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Titre", "Catégorie", "Prix", "Lien"})
	table.SetBorder(true)
	table.SetAutoWrapText(false)

	for _, b := range books {
		table.Append([]string{b.Title, string(b.Category), b.Price, b.URL})
	}

	table.Render()
	return nil
}
