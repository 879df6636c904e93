package cmd

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jimmywalsh/portfolio/internal/content"
	"github.com/jimmywalsh/portfolio/internal/meta"
	"github.com/jimmywalsh/portfolio/internal/model"
)

var showDrafts bool

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Lists the articles, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := content.NewLoader(appConfig.PostsDir(), log).Load()
		if err != nil {
			return err
		}
		posts := s.Released
		if showDrafts {
			posts = s.Posts
		}
		writePostsTable(cmd.OutOrStdout(), posts, appConfig.Content.DateFormat, appConfig.Content.WordsPerMinute)
		return nil
	},
}

func writePostsTable(w io.Writer, posts []*model.Post, dateFormat string, wpm int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Slug", "Title", "Status", "Published", "Read"})
	for _, p := range posts {
		published := "-"
		if p.PublishedAt != nil {
			published = meta.FormatTime(*p.PublishedAt, dateFormat)
		}
		t.AppendRow(table.Row{
			p.Slug,
			p.Title,
			string(p.Status),
			published,
			strconv.Itoa(meta.ReadMinutes(p.RawBody, wpm)) + " min",
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(posts)})
	t.Render()
}

func init() {
	postsCmd.Flags().BoolVar(&showDrafts, "drafts", false, "include drafts and archived posts")
	rootCmd.AddCommand(postsCmd)
}
