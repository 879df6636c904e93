package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimmywalsh/portfolio/internal/content"
)

var newTags []string

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Creates a draft article",
	Long: `The new command writes '<contentDir>/posts/<slug>.md' with draft front matter.
Preview it at /posts/drafts/<slug> with the serve command, then set status to
"released" and a publishedAt date to publish it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		path, err := content.NewDraft(appConfig.PostsDir(), title, newTags)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Draft created")
		fmt.Fprintf(cmd.OutOrStdout(), "Preview: /posts/drafts/%s\n", content.Slugify(title))
		return nil
	},
}

func init() {
	newCmd.Flags().StringSliceVarP(&newTags, "tags", "t", nil, "comma separated tags")
	rootCmd.AddCommand(newCmd)
}
