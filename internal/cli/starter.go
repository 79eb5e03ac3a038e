package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdelaney/contentpipe-go/internal/starter"
)

var (
	starterName    string
	starterEmail   string
	starterNiche   string
	starterAud     string
	starterFile    string
	starterFormat  string
	starterOutFile string
)

var starterCmd = &cobra.Command{
	Use:   "starter",
	Short: "Generate a 30-day LinkedIn content starter pack",
	Long: `Generate the Content Starter deliverable: 30 weekday LinkedIn posts
built from a customer's raw content, plus a posting schedule.

This is a one-shot product and does not touch the piece library.

Examples:
  contentpipe starter --name "Dana Smith" --content notes.md
  contentpipe starter --name "Dana Smith" --content notes.md --format html --out pack.html`,
	RunE: runStarter,
}

func init() {
	starterCmd.Flags().StringVar(&starterName, "name", "", "customer name (required)")
	starterCmd.Flags().StringVar(&starterEmail, "email", "", "customer email")
	starterCmd.Flags().StringVar(&starterNiche, "niche", "", "coaching niche")
	starterCmd.Flags().StringVar(&starterAud, "audience", "", "target audience")
	starterCmd.Flags().StringVar(&starterFile, "content", "", "file with the customer's raw content (required)")
	starterCmd.Flags().StringVar(&starterFormat, "format", "text", "output format (text, html, json)")
	starterCmd.Flags().StringVarP(&starterOutFile, "out", "o", "", "write output to a file instead of stdout")
	_ = starterCmd.MarkFlagRequired("name")
	_ = starterCmd.MarkFlagRequired("content")
}

func runStarter(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(starterFile)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	svc := newStarter()
	out, err := svc.Generate(cmd.Context(), &starter.Request{
		CustomerName:  starterName,
		CustomerEmail: starterEmail,
		Niche:         starterNiche,
		Audience:      starterAud,
		RawContent:    string(raw),
	})
	if err != nil {
		return fmt.Errorf("generate starter pack: %w", err)
	}

	var rendered string
	switch starterFormat {
	case "text":
		rendered = starter.FormatText(out)
	case "html":
		rendered, err = starter.FormatHTML(out)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	case "json":
		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		rendered = string(encoded)
	default:
		return fmt.Errorf("unknown format %q (text, html, json)", starterFormat)
	}

	if starterOutFile != "" {
		if err := os.WriteFile(starterOutFile, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Wrote %d posts to %s\n", len(out.Posts), starterOutFile)
		return nil
	}

	fmt.Println(rendered)
	return nil
}
