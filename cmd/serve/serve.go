// Package serve handles the serve command
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/expense-report/cmd/root"
	"fjacquet/expense-report/internal/api"
	"fjacquet/expense-report/internal/config"
	"fjacquet/expense-report/internal/source"

	"github.com/spf13/cobra"
)

var port int

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve classification and reports over HTTP",
	Long: `Start an HTTP server exposing POST /transaction/classification,
POST /transaction/generateReport and GET /health. When transactions are read
from a local source, POST /graphql serves them as well.

With the http classification backend, the endpoint must not be this server's
own /transaction/classification route; serve classification locally with the
keyword or gemini backend instead.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: server.port from config)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	cfg := c.GetConfig()
	listenPort := cfg.Server.Port
	if port != 0 {
		listenPort = port
	}
	addr := fmt.Sprintf(":%d", listenPort)

	if cfg.Classification.Backend == config.BackendHTTP {
		if err := api.CheckClassificationEndpoint(cfg.Classification.Endpoint, addr); err != nil {
			return err
		}
	}

	var transactions source.TransactionSource
	if cfg.Source.Type != config.SourceGraphQL {
		transactions = c.GetSource()
	}

	server := api.NewServer(c.GetClient(), c.GetGenerator(), transactions, c.GetLogger())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx, addr)
}
