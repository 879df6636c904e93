package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jimmywalsh/portfolio/internal/builder"
	"github.com/jimmywalsh/portfolio/internal/config"
	"github.com/jimmywalsh/portfolio/internal/content"
	"github.com/jimmywalsh/portfolio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site into the output directory",
	Long: `The build command loads the articles from '<contentDir>/posts', renders every
page with the layouts (the built-in set unless '<layoutsDir>/base.html'
exists), copies static assets and writes the site to the output directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild(appConfig)
		return err
	},
}

func runBuild(cfg *config.Config) (*builder.Result, error) {
	s, err := content.NewLoader(cfg.PostsDir(), log).Load()
	if err != nil {
		return nil, err
	}

	layouts, custom := site.Layouts(cfg.LayoutsDir)
	log.Debug().Bool("custom", custom).Str("dir", cfg.LayoutsDir).Msg("Layouts selected")
	renderer, err := site.NewRenderer(cfg, layouts)
	if err != nil {
		return nil, err
	}

	return builder.New(cfg, renderer, log).Build(s)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
