package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/pipeline"
)

// catalogCommand creates the catalog listing command.
func (c *CLI) catalogCommand() *cobra.Command {
	var showProjects bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog images, categories and projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.resolveOptions(cmd, &opts)
			cat, err := pipeline.ResolveCatalog(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showProjects {
				if len(cat.Projects) == 0 {
					printDetail(out, "no projects in catalog")
					return nil
				}
				printProjects(out, cat.Projects)
				return nil
			}
			printImages(out, cat.Filter(opts.Category))
			printStats(out, "categories: "+strings.Join(cat.Categories(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "catalog file (.json, .yaml, .toml); built-in catalog if empty")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "only list images of this category")
	cmd.Flags().BoolVar(&showProjects, "projects", false, "list projects instead of images")

	return cmd
}

func printImages(w io.Writer, images []catalog.Image) {
	rows := make([][]string, len(images))
	for i, img := range images {
		size := "-"
		if s, ok := img.SizeHint(); ok {
			size = s.String()
		}
		rows[i] = []string{strconv.Itoa(i), img.ID, img.Category, size, img.Alt}
	}
	printTable(w, []string{"#", "ID", "Category", "Size", "Alt"}, rows)
}

func printProjects(w io.Writer, projects []catalog.Project) {
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{p.Slug, p.Title, p.Year, strconv.Itoa(len(p.Images))}
	}
	printTable(w, []string{"Slug", "Title", "Year", "Images"}, rows)
}
