package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"usergrid/cmd/usergrid/ui"
	"usergrid/internal/gql"
	"usergrid/internal/posts"
	"usergrid/internal/query"
)

var (
	dumpSearch  string
	dumpPosts   bool
	dumpNoCache bool
)

// dumpCmd prints the grid once without the interactive UI
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the users grid once and exit",
	Long: `Fetches users and posts, prints the grid as plain text and exits.
With --posts, each user's posts are listed below the grid.`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpSearch, "search", "s", "", "Name filter")
	dumpCmd.Flags().BoolVarP(&dumpPosts, "posts", "p", false, "List each user's posts")
	dumpCmd.Flags().BoolVar(&dumpNoCache, "no-cache", false, "Bypass the response cache")
}

func runDump(cmd *cobra.Command, args []string) error {
	f, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	client, closeClient, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer closeClient()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetTimeout()+5*time.Second)
	defer cancel()

	policy := gql.CacheFirst
	if dumpNoCache {
		policy = gql.NetworkOnly
	}

	start := time.Now()
	res, err := query.Both(ctx, client, dumpSearch, policy)
	if err != nil {
		return err
	}
	logger.Debug("fetched",
		zap.String("endpoint", client.Endpoint()),
		zap.Int("users", len(res.Users)),
		zap.Int("posts", len(res.Posts)),
		zap.Duration("took", time.Since(start)))

	idx := posts.GroupByUser(res.Posts)
	cols := ui.UserColumns()
	headers := ui.Headers(cols)
	rows := make([][]string, len(res.Users))
	for i, u := range res.Users {
		rows[i] = ui.Cells(f, cols, u, len(idx.For(u.ID)))
	}

	grid := ui.NewGrid(headers, rows, ui.Footer(f, len(headers), len(res.Users), idx.TotalFor(res.Users)))
	styles := ui.PlainStyles()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, trimLines(grid.View(styles, nil)))

	if !dumpPosts {
		return nil
	}
	panel := ui.NewPostsPanel(f, styles, ui.LayoutConfig{}.PopoverContentWidth(), false)
	for _, u := range res.Users {
		userPosts := idx.For(u.ID)
		if len(userPosts) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s (%s)\n", f.Format(u.Name).Text, u.ID)
		fmt.Fprintln(out, panel.Render(userPosts, 0))
	}
	return nil
}

// trimLines drops trailing padding so piped output diffs cleanly.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
