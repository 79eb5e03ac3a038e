package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdelaney/contentpipe-go/internal/ingest"
)

var ingestStdin bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Add content to the piece library",
	Long: `Ingest long-form content into the piece library.

Accepts .txt, .md, and .zip files. Zip archives are expanded and each
text entry becomes its own piece. Titles come from frontmatter, the
first heading, or the filename.

Examples:
  contentpipe ingest transcript.md
  contentpipe ingest episodes.zip --client client-a
  pbpaste | contentpipe ingest --stdin`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestStdin, "stdin", false, "read content from stdin instead of files")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc := newIngester()

	if ingestStdin {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result, err := svc.IngestText(ctx, string(content), "paste", clientID)
		if err != nil {
			return err
		}
		printIngestResult(*result)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("no files given (or use --stdin)")
	}

	var total int
	for _, path := range args {
		results, err := svc.IngestFile(ctx, path, clientID)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		for _, r := range results {
			printIngestResult(r)
		}
		total += len(results)
	}

	if total > 1 {
		fmt.Printf("\nIngested %d pieces.\n", total)
	}
	return nil
}

func printIngestResult(r ingest.Result) {
	fmt.Printf("Created piece: %s (%s, %d words)\n", r.Title, r.PieceID, r.WordCount)
}
