package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"usergrid/internal/fixture"
	"usergrid/internal/logging"
)

var (
	fixtureData  string
	fixtureAddr  string
	fixtureWatch bool
)

// serveFixturesCmd runs the local GraphQL fixture endpoint
var serveFixturesCmd = &cobra.Command{
	Use:   "serve-fixtures",
	Short: "Serve users and posts from a YAML file over GraphQL",
	Long: `Starts a small GraphQL endpoint answering the GetUsers and GetPosts
operations from a YAML fixture file. Point usergrid at it with --endpoint.`,
	RunE: runServeFixtures,
}

func init() {
	serveFixturesCmd.Flags().StringVarP(&fixtureData, "data", "d", "fixtures.yaml", "Fixture file")
	serveFixturesCmd.Flags().StringVar(&fixtureAddr, "addr", ":8085", "Listen address")
	serveFixturesCmd.Flags().BoolVarP(&fixtureWatch, "watch", "w", false, "Reload the fixture file when it changes")
}

func runServeFixtures(cmd *cobra.Command, args []string) error {
	data, err := fixture.LoadFile(fixtureData)
	if err != nil {
		return err
	}
	store := fixture.NewStore(data)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := fixture.NewServer(store, logger.Named(string(logging.CategoryFixture)))
	logger.Info("serving fixtures",
		zap.String("addr", fixtureAddr),
		zap.String("data", fixtureData),
		zap.Int("users", len(data.Users)),
		zap.Int("posts", len(data.Posts)))
	fmt.Fprintf(cmd.OutOrStdout(), "GraphQL endpoint: http://localhost%s/graphql\n", fixtureAddr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, fixtureAddr)
	})
	if fixtureWatch {
		g.Go(func() error {
			return fixture.Watch(ctx, fixtureData, store, logger.Named("watch"))
		})
	}
	return g.Wait()
}
