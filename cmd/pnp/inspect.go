package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Ameralajore/PnP-JS-Core/internal/blueprint"
	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
	"github.com/Ameralajore/PnP-JS-Core/pkg/richtext"
)

var inspectFormat string

var (
	pageTitleStyle = lipgloss.NewStyle().Bold(true)
	pageInfoStyle  = lipgloss.NewStyle().Faint(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	columnStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("39"))
	controlStyle   = lipgloss.NewStyle().PaddingLeft(4)
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "tree", "output format: tree, yaml, or json")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <page>",
	Short: "Inspect a page",
	Long:  `Show the structure of a stored page.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		page, err := CurrentService().Load(context.Background(), pages.PageRef(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		switch inspectFormat {
		case "yaml":
			out, err := blueprint.Snapshot(page).Marshal()
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Print(string(out))
		case "json":
			out, err := json.MarshalIndent(pages.ProjectPage(page), "", "  ")
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Println(string(out))
		case "tree":
			printTree(page)
		default:
			fmt.Printf("Unknown format %q. Use tree, yaml, or json.\n", inspectFormat)
			os.Exit(1)
		}
	},
}

func printTree(page *canvas.Page) {
	title := page.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Println(pageTitleStyle.Render(title))
	fmt.Println(pageInfoStyle.Render(fmt.Sprintf("layout=%s comments_disabled=%t promoted=%d",
		page.Layout, page.CommentsDisabled, page.Promoted)))

	for _, section := range page.Sections {
		fmt.Println(sectionStyle.Render(fmt.Sprintf("Section %d", section.Order())))
		for _, column := range section.Columns {
			fmt.Println(columnStyle.Render(fmt.Sprintf("Column %d (factor %d)", column.Order(), column.Factor)))
			for _, control := range column.Controls {
				fmt.Println(controlStyle.Render(describeControl(control)))
			}
		}
	}
}

func describeControl(control canvas.Control) string {
	switch c := control.(type) {
	case *canvas.TextControl:
		return "text: " + summarize(richtext.PlainText(c.Text()), 60)
	case *canvas.WebPart:
		title := c.Title()
		if title == "" {
			title = "(unnamed)"
		}
		return fmt.Sprintf("web part: %s [%s]", title, c.ComponentID())
	default:
		return "unknown control"
	}
}

func summarize(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
